// Package styles holds the color palette and lipgloss styles shared by the
// dashboard and the settings editor.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text
	White   = lipgloss.Color("#E2E2E2")
	Gray    = lipgloss.Color("#888888")
	Muted   = lipgloss.Color("#555555")
	DimGray = lipgloss.Color("#444444")

	// Accent
	Blue     = lipgloss.Color("#5FAFFF")
	DarkBlue = lipgloss.Color("#1A2F40")

	// Load outcomes
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")

	// Series is cycled across the bars of one chart.
	Series = []lipgloss.Color{
		Blue,
		Green,
		Yellow,
		Red,
		lipgloss.Color("#AF87FF"),
		lipgloss.Color("#87D7D7"),
	}
)
