package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porjo/srdiff/internal/leaderboard"
)

func newTestModel(t *testing.T) (*Model, *leaderboard.Grid) {
	t.Helper()
	g := leaderboard.NewGrid([]string{"Rank", "Player", "Time"}, [][]string{
		{"1", "alice", "1h 00m 00s"},
		{"2", "bob", "1h 00m 05s"},
		{"3", "carol", "1h 01m 00s"},
	})
	b, err := leaderboard.Attach(g, "bob")
	require.NoError(t, err)
	return New("Celeste", b, g), g
}

func press(m *Model, msg tea.KeyMsg) (*Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(*Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorActivatesBaseline(t *testing.T) {
	m, g := newTestModel(t)
	assert.Equal(t, 1, m.cursor)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, 2, m.board.Baseline())
	assert.Equal(t, leaderboard.Cell{Text: "-0h 00m 55s ", Style: leaderboard.StyleAhead}, g.Cell(1, 3))

	m, _ = press(m, runes("j"))
	assert.Equal(t, 2, m.cursor, "cursor stays on last row")

	m, _ = press(m, runes("g"))
	assert.Equal(t, 0, m.board.Baseline())
	assert.Equal(t, leaderboard.Cell{Text: "+0h 01m 00s ", Style: leaderboard.StyleBehind}, g.Cell(2, 3))

	m, _ = press(m, runes("k"))
	assert.Equal(t, 0, m.cursor)

	m, _ = press(m, runes("G"))
	assert.Equal(t, 2, m.board.Baseline())
}

func TestCopyTime(t *testing.T) {
	m, _ := newTestModel(t)

	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}

	m, _ = press(m, runes("y"))
	assert.Equal(t, "1h 00m 05s", copied)
	assert.Contains(t, m.View(), "copied 1h 00m 05s")

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	m, _ = press(m, runes("y"))
	assert.Contains(t, m.status, "no clipboard")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewScrolls(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, runes("g"))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: chromeHeight + 1})
	m = next.(*Model)

	view := m.View()
	assert.Contains(t, view, "alice")
	assert.NotContains(t, view, "carol")
	assert.Contains(t, view, "Difference")

	m, _ = press(m, runes("G"))
	view = m.View()
	assert.Contains(t, view, "carol")
	assert.NotContains(t, view, "alice")
	assert.Contains(t, view, "run 3 of 3")
}
