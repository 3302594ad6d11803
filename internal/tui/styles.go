package tui

import "github.com/charmbracelet/lipgloss"

// The accent matches the original tracker's lavender border color.
const accentColor = lipgloss.Color("#AFAFD7")

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Align(lipgloss.Center).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(accentColor)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#080808")).
			Background(accentColor)

	amountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	boxValueStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	balanceSeriesStyle = lipgloss.NewStyle().Foreground(accentColor)
	expenseSeriesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	savingsSeriesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)
