package leaderboard

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrNoTimeColumn  = errors.New("no time column found")
	ErrRowOutOfRange = errors.New("row out of range")
)

// Board is one augmentation of a table: the Difference column has been
// inserted and Activate moves the baseline. A replaced table needs a new
// Board.
type Board struct {
	src        TableSource
	timeCol    int
	withMillis bool
	baseline   int
}

// Attach inserts the Difference column into src and renders it against
// userName's row, or the first row when userName has no run.
func Attach(src TableSource, userName string) (*Board, error) {
	timeCol, ok := LocateTimeColumn(src)
	if !ok {
		return nil, ErrNoTimeColumn
	}

	b := &Board{
		src:        src,
		timeCol:    timeCol,
		withMillis: DetectMillisecondPrecision(src, timeCol),
		baseline:   SelectBaseline(src, userName),
	}

	src.InsertColumn(b.DiffColumn())
	src.SetHeader(b.DiffColumn(), DiffHeader, StyleHeader)

	slog.Debug("leaderboard attached",
		"time column", timeCol,
		"millis", b.withMillis,
		"baseline", b.baseline,
		"rows", len(src.DataRows()))

	RenderDiffs(src, b.timeCol, b.baseline, b.withMillis)
	return b, nil
}

// Activate makes row the baseline and re-renders every difference.
func (b *Board) Activate(row int) error {
	if n := len(b.src.DataRows()); row < 0 || row >= n {
		return fmt.Errorf("activate row %d of %d: %w", row, n, ErrRowOutOfRange)
	}
	b.baseline = row
	RenderDiffs(b.src, b.timeCol, b.baseline, b.withMillis)
	return nil
}

func (b *Board) Baseline() int    { return b.baseline }
func (b *Board) TimeColumn() int  { return b.timeCol }
func (b *Board) DiffColumn() int  { return b.timeCol + 1 }
func (b *Board) WithMillis() bool { return b.withMillis }
