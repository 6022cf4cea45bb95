package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"

	"github.com/porjo/srdiff/internal/leaderboard"
	"github.com/porjo/srdiff/internal/tui"
)

const (
	outputTable = "table"
	outputJSON  = "json"

	columnGap = "  "
)

func writeOutput(w io.Writer, format string, l *loaded, color bool) error {
	switch format {
	case outputJSON:
		return writeJSON(w, l)
	case outputTable, "":
		return writeTable(w, l.grid, color)
	default:
		return fmt.Errorf("unsupported output format %q (want table or json)", format)
	}
}

type jsonOutput struct {
	Link       string            `json:"link,omitempty"`
	TimeColumn int               `json:"timeColumn"`
	Baseline   int               `json:"baseline"`
	Table      *leaderboard.Grid `json:"table"`
}

func writeJSON(w io.Writer, l *loaded) error {
	data, err := sonic.ConfigDefault.MarshalIndent(jsonOutput{
		Link:       l.doc.Link,
		TimeColumn: l.board.TimeColumn(),
		Baseline:   l.board.Baseline(),
		Table:      l.grid,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeTable prints g as aligned columns. Cell text is trimmed since page
// cells usually carry layout whitespace.
func writeTable(w io.Writer, g *leaderboard.Grid, color bool) error {
	rows := append([][]leaderboard.Cell{g.Header}, g.Rows...)

	var widths []int
	for _, row := range rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(strings.TrimSpace(c.Text)))
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, c := range row {
			if i > 0 {
				b.WriteString(columnGap)
			}
			text := strings.TrimSpace(c.Text)
			if i < len(row)-1 {
				text = runewidth.FillRight(text, widths[i])
			}
			if color && c.Style != leaderboard.StyleNone {
				text = tui.StyleFor(c.Style).UnsetPadding().Render(text)
			}
			b.WriteString(text)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
