package page

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/porjo/srdiff/internal/leaderboard"
)

// CSS applied to written cells, keyed by style.
var cellCSS = map[leaderboard.Style]string{
	leaderboard.StyleHeader:   "font-weight: bold; color: rgba(255,255,255,0.7)",
	leaderboard.StyleBaseline: "color: gold",
	leaderboard.StyleBehind:   "color: red",
	leaderboard.StyleAhead:    "color: green",
}

const cellSelector = "td, th"

// Table is a leaderboard table inside a Document. Writes go straight into
// the DOM, so Document.HTML reflects them.
type Table struct {
	header *goquery.Selection
	rows   *goquery.Selection
}

func (t *Table) HeaderCells() []string {
	return cellTexts(t.header)
}

func (t *Table) DataRows() [][]string {
	rows := make([][]string, 0, t.rows.Length())
	t.rows.Each(func(i int, s *goquery.Selection) {
		rows = append(rows, cellTexts(s))
	})
	return rows
}

func cellTexts(row *goquery.Selection) []string {
	cells := row.ChildrenFiltered(cellSelector)
	texts := make([]string, 0, cells.Length())
	cells.Each(func(i int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts
}

// InsertColumn adds an empty <td> at index to the header and every row.
func (t *Table) InsertColumn(index int) {
	insertCell(t.header, index)
	t.rows.Each(func(i int, s *goquery.Selection) {
		insertCell(s, index)
	})
}

func insertCell(row *goquery.Selection, index int) {
	cells := row.ChildrenFiltered(cellSelector)
	if index < cells.Length() {
		cells.Eq(index).BeforeHtml("<td></td>")
		return
	}
	for i := cells.Length(); i <= index; i++ {
		row.AppendHtml("<td></td>")
	}
}

func (t *Table) SetHeader(col int, text string, style leaderboard.Style) {
	setCell(t.header, col, text, style)
}

func (t *Table) SetCell(row, col int, text string, style leaderboard.Style) {
	setCell(t.rows.Eq(row), col, text, style)
}

func setCell(row *goquery.Selection, col int, text string, style leaderboard.Style) {
	cell := row.ChildrenFiltered(cellSelector).Eq(col)
	if cell.Length() == 0 {
		return
	}

	cell.SetText(text)
	if css, ok := cellCSS[style]; ok {
		cell.SetAttr("style", css)
	} else {
		cell.RemoveAttr("style")
	}
}

// Grid copies the table's current text and the styles written so far.
func (t *Table) Grid() *leaderboard.Grid {
	g := &leaderboard.Grid{Header: styledCells(t.header)}
	t.rows.Each(func(i int, s *goquery.Selection) {
		g.Rows = append(g.Rows, styledCells(s))
	})
	return g
}

func styledCells(row *goquery.Selection) []leaderboard.Cell {
	var cells []leaderboard.Cell
	row.ChildrenFiltered(cellSelector).Each(func(i int, s *goquery.Selection) {
		cells = append(cells, leaderboard.Cell{
			Text:  s.Text(),
			Style: styleOf(s.AttrOr("style", "")),
		})
	})
	return cells
}

func styleOf(css string) leaderboard.Style {
	for style, c := range cellCSS {
		if c == css {
			return style
		}
	}
	return leaderboard.StyleNone
}
