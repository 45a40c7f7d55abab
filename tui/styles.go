package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#FF7A59")
	muted  = lipgloss.Color("#8A8A8A")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(accent)

	cardTitleStyle     = lipgloss.NewStyle().Bold(true)
	cardMetaStyle      = lipgloss.NewStyle().Foreground(muted)
	cardMarker         = lipgloss.NewStyle().Foreground(muted).Render("│ ")
	selectedCardMarker = lipgloss.NewStyle().Foreground(accent).Render("▌ ")

	messageStyle = lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(1, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(muted).Width(12)
	linkStyle  = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#4EA1FF"))

	footerStyle = lipgloss.NewStyle().Foreground(muted)
	jumpStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
)
