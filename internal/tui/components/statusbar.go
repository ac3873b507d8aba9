package components

import (
	"strings"

	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the line between the content and the footer: message
// on the left, summary on the right. It is empty when both are.
func StatusBar(width int, message string, isError bool, summary string) string {
	if message == "" && summary == "" {
		return ""
	}

	style := styles.MutedText
	if isError {
		style = styles.ErrorText
	}
	left := style.Render(message)
	gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(summary), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(left + strings.Repeat(" ", gap) + summary)
}
