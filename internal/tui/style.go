package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/porjo/srdiff/internal/leaderboard"
)

const (
	rowTextFGColor     = "#c0c0c0"
	rowSelectedBGColor = "#3a3a3a"
)

var (
	appStyle    = lipgloss.NewStyle().Margin(1, 2)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(rowTextFGColor))
	headerStyle = cellStyle.Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	rowSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor))

	diffStyles = map[leaderboard.Style]lipgloss.Style{
		leaderboard.StyleHeader:   headerStyle.Foreground(lipgloss.Color("250")),
		leaderboard.StyleBaseline: cellStyle.Foreground(lipgloss.Color("3")),
		leaderboard.StyleBehind:   cellStyle.Foreground(lipgloss.Color("1")),
		leaderboard.StyleAhead:    cellStyle.Foreground(lipgloss.Color("2")),
	}
)

// StyleFor maps a cell style onto its terminal style.
func StyleFor(s leaderboard.Style) lipgloss.Style {
	if st, ok := diffStyles[s]; ok {
		return st
	}
	return cellStyle
}
