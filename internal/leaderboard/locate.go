package leaderboard

import (
	"strings"

	"github.com/porjo/srdiff/internal/duration"
)

const (
	timeHeaderKeyword = "time"
	playerHeader      = "Player"
)

// LocateTimeColumn picks, among headers containing "time", the column with
// the most non-empty data cells. Ties go to the leftmost column and a column
// with no data never wins.
func LocateTimeColumn(src TableSource) (int, bool) {
	rows := src.DataRows()

	index, max := -1, 0
	for col, name := range src.HeaderCells() {
		if !strings.Contains(strings.ToLower(name), timeHeaderKeyword) {
			continue
		}

		count := 0
		for _, row := range rows {
			if len(cellText(row, col)) > 0 {
				count++
			}
		}

		if count > max {
			max = count
			index = col
		}
	}

	return index, index >= 0
}

// LocatePlayerColumn returns the first column headed exactly "Player".
func LocatePlayerColumn(src TableSource) (int, bool) {
	for col, name := range src.HeaderCells() {
		if name == playerHeader {
			return col, true
		}
	}
	return -1, false
}

// SelectBaseline returns the row of userName's run, or the first row when
// there is no user, no player column or no matching row. A match on row 0 or
// a player column at index 0 counts like any other match.
func SelectBaseline(src TableSource, userName string) int {
	if userName == "" {
		return 0
	}

	playerCol, ok := LocatePlayerColumn(src)
	if !ok {
		return 0
	}

	for i, row := range src.DataRows() {
		if cellText(row, playerCol) == userName {
			return i
		}
	}
	return 0
}

// DetectMillisecondPrecision reports whether any run time in timeCol has a
// millisecond part. The answer applies to the whole column.
func DetectMillisecondPrecision(src TableSource, timeCol int) bool {
	for _, row := range src.DataRows() {
		if duration.HasMillis(cellText(row, timeCol)) {
			return true
		}
	}
	return false
}
