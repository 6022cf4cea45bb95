// Package tui is a terminal leaderboard viewer. The highlighted run is the
// baseline: moving the cursor re-renders every difference against it.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/porjo/srdiff/internal/leaderboard"
)

// rows taken by margins, header, status and help
const chromeHeight = 7

type Model struct {
	title string
	board *leaderboard.Board
	grid  *leaderboard.Grid

	cursor int
	offset int
	height int

	help   help.Model
	status string

	copyFn func(string) error
}

// New returns a viewer over grid, which board must already be attached to.
func New(title string, board *leaderboard.Board, grid *leaderboard.Grid) *Model {
	return &Model{
		title:  title,
		board:  board,
		grid:   grid,
		cursor: board.Baseline(),
		help:   help.New(),
		copyFn: clipboard.WriteAll,
	}
}

// Run blocks until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.activate(m.cursor - 1)
		case key.Matches(msg, keys.Down):
			m.activate(m.cursor + 1)
		case key.Matches(msg, keys.Top):
			m.activate(0)
		case key.Matches(msg, keys.Bottom):
			m.activate(len(m.grid.Rows) - 1)
		case key.Matches(msg, keys.Copy):
			m.copyTime()
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *Model) activate(row int) {
	if row < 0 || row >= len(m.grid.Rows) || row == m.cursor {
		return
	}
	if err := m.board.Activate(row); err != nil {
		slog.Error("activate row", "row", row, "err", err)
		return
	}
	m.cursor = row
	m.status = ""
	m.clampOffset()
}

// copyTime copies the highlighted run's time. The highlighted run is the
// baseline, so its own difference cell only holds the marker.
func (m *Model) copyTime() {
	text := strings.TrimSpace(m.grid.Cell(m.cursor, m.board.TimeColumn()).Text)
	if err := m.copyFn(text); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = "copied " + text
}

func (m *Model) visibleRows() int {
	if m.height <= chromeHeight {
		return len(m.grid.Rows)
	}
	return m.height - chromeHeight
}

func (m *Model) clampOffset() {
	n := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
}

func (m *Model) columnWidths() []int {
	var widths []int
	grow := func(cells []leaderboard.Cell) {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(strings.TrimSpace(c.Text)))
		}
	}
	grow(m.grid.Header)
	for _, row := range m.grid.Rows {
		grow(row)
	}
	return widths
}

func renderRow(cells []leaderboard.Cell, widths []int, base lipgloss.Style, selected bool) string {
	rendered := make([]string, 0, len(widths))
	for i, w := range widths {
		var c leaderboard.Cell
		if i < len(cells) {
			c = cells[i]
		}
		style := base
		if c.Style != leaderboard.StyleNone {
			style = StyleFor(c.Style)
		}
		if selected {
			style = style.Background(rowSelectedStyle.GetBackground())
		}
		rendered = append(rendered, style.Width(w+2).Render(strings.TrimSpace(c.Text)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) View() string {
	widths := m.columnWidths()

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(renderRow(m.grid.Header, widths, headerStyle, false))
	b.WriteString("\n")

	end := min(m.offset+m.visibleRows(), len(m.grid.Rows))
	for i := m.offset; i < end; i++ {
		b.WriteString(renderRow(m.grid.Rows[i], widths, cellStyle, i == m.cursor))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("run %d of %d", m.cursor+1, len(m.grid.Rows))
	if m.status != "" {
		status += " · " + m.status
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))

	return appStyle.Render(b.String())
}
