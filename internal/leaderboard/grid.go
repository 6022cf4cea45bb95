package leaderboard

// Cell is a styled table cell.
type Cell struct {
	Text  string `json:"text"`
	Style Style  `json:"style,omitempty"`
}

// Grid is an in-memory TableSource.
type Grid struct {
	Header []Cell   `json:"header"`
	Rows   [][]Cell `json:"rows"`
}

// NewGrid builds a grid from plain text.
func NewGrid(header []string, rows [][]string) *Grid {
	g := &Grid{
		Header: textCells(header),
		Rows:   make([][]Cell, 0, len(rows)),
	}
	for _, row := range rows {
		g.Rows = append(g.Rows, textCells(row))
	}
	return g
}

func textCells(texts []string) []Cell {
	cells := make([]Cell, len(texts))
	for i, t := range texts {
		cells[i] = Cell{Text: t}
	}
	return cells
}

func cellTexts(cells []Cell) []string {
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = c.Text
	}
	return texts
}

func (g *Grid) HeaderCells() []string {
	return cellTexts(g.Header)
}

func (g *Grid) DataRows() [][]string {
	rows := make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		rows[i] = cellTexts(row)
	}
	return rows
}

// InsertColumn inserts an empty cell at index in every row. Rows shorter than
// index are padded first.
func (g *Grid) InsertColumn(index int) {
	g.Header = insertCell(g.Header, index)
	for i := range g.Rows {
		g.Rows[i] = insertCell(g.Rows[i], index)
	}
}

func insertCell(cells []Cell, index int) []Cell {
	for len(cells) < index {
		cells = append(cells, Cell{})
	}
	cells = append(cells, Cell{})
	copy(cells[index+1:], cells[index:])
	cells[index] = Cell{}
	return cells
}

func (g *Grid) SetHeader(col int, text string, style Style) {
	if col < 0 || col >= len(g.Header) {
		return
	}
	g.Header[col] = Cell{Text: text, Style: style}
}

func (g *Grid) SetCell(row, col int, text string, style Style) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return
	}
	g.Rows[row][col] = Cell{Text: text, Style: style}
}

// Cell returns the cell at row, col or the zero Cell.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return Cell{}
	}
	return g.Rows[row][col]
}
