// Package leaderboard finds the run time column of a leaderboard table and
// fills a derived "Difference" column relative to a baseline row.
//
// The table itself is owned by someone else and reached through TableSource.
package leaderboard

import "fmt"

// Style tags a written cell. Hosts map it onto whatever their toolkit uses
// (CSS colours, terminal colours).
type Style int

const (
	StyleNone Style = iota
	StyleHeader
	StyleBaseline
	StyleBehind
	StyleAhead
)

func (s Style) String() string {
	switch s {
	case StyleHeader:
		return "header"
	case StyleBaseline:
		return "baseline"
	case StyleBehind:
		return "behind"
	case StyleAhead:
		return "ahead"
	default:
		return "none"
	}
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(text []byte) error {
	for _, style := range []Style{StyleNone, StyleHeader, StyleBaseline, StyleBehind, StyleAhead} {
		if style.String() == string(text) {
			*s = style
			return nil
		}
	}
	return fmt.Errorf("unknown style %q", text)
}

// TableSource is a header row followed by data rows. Cell text is read as-is;
// the only mutations are inserting one column and writing cells into it.
type TableSource interface {
	HeaderCells() []string
	DataRows() [][]string
	InsertColumn(index int)
	SetHeader(col int, text string, style Style)
	SetCell(row, col int, text string, style Style)
}

// cellText returns the cell or "" for short rows.
func cellText(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
