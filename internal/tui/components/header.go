// Package components provides render-only building blocks (not tea.Model)
// that the dashboard and settings editor compose into their views.
package components

import (
	"strings"

	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Header renders the top bar: the breadcrumb on the left and a context
// string, usually a path, on the right. A context that does not fit keeps
// its tail, since the end of a path is the part that identifies it.
//
//	sapmon > dashboard                     …/exports/2024-03
//	─────────────────────────────────────────────────────────
func Header(width int, breadcrumb string, context string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Blue).Render("sapmon")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	inner := width - 4
	room := inner - lipgloss.Width(left) - 2
	right := ""
	if context != "" && room > 3 {
		right = styles.Subtitle.Render(keepTail(context, room))
	}

	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}

// keepTail shortens s to n cells by dropping its start.
func keepTail(s string, n int) string {
	if ansi.StringWidth(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && ansi.StringWidth(string(r))+1 > n {
		r = r[1:]
	}
	return "…" + string(r)
}
