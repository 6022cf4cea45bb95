package leaderboard

import (
	"github.com/porjo/srdiff/internal/duration"
)

const (
	// DiffHeader titles the inserted column.
	DiffHeader = "Difference"

	// BaselineMarker fills the baseline row's difference cell.
	BaselineMarker = "-/+"
)

// RenderDiffs writes each row's difference to the baseline row into column
// timeCol+1. Rows where either time does not parse get an empty cell.
func RenderDiffs(src TableSource, timeCol, baseline int, withMillis bool) {
	diffCol := timeCol + 1
	rows := src.DataRows()

	var baseTime int64
	baseOK := false
	if baseline >= 0 && baseline < len(rows) {
		baseTime, baseOK = duration.Parse(cellText(rows[baseline], timeCol))
	}

	for i, row := range rows {
		if i == baseline {
			src.SetCell(i, diffCol, BaselineMarker, StyleBaseline)
			continue
		}

		rowTime, ok := duration.Parse(cellText(row, timeCol))
		if !ok || !baseOK {
			src.SetCell(i, diffCol, "", StyleNone)
			continue
		}

		text, style := Diff(rowTime, baseTime, withMillis)
		src.SetCell(i, diffCol, text, style)
	}
}

// Diff formats rowTime-baseTime with its sign and the style for that sign.
func Diff(rowTime, baseTime int64, withMillis bool) (string, Style) {
	diff := rowTime - baseTime
	if diff >= 0 {
		return "+" + duration.Format(diff, withMillis), StyleBehind
	}
	return "-" + duration.Format(-diff, withMillis), StyleAhead
}
