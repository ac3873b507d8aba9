package components

import (
	"strings"

	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one key hint in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key hints below a rule. Hints are listed in priority
// order; those that do not fit the width are left out rather than wrapped.
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	sep := styles.KeySepStyle.Render(" · ")
	room := width - 4
	var parts []string
	used := 0
	for _, b := range bindings {
		hint := styles.FormatKeyBinding(b.Key, b.Desc)
		w := lipgloss.Width(hint)
		if len(parts) > 0 {
			w += lipgloss.Width(sep)
		}
		if used+w > room {
			break
		}
		parts = append(parts, hint)
		used += w
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(strings.Join(parts, sep))
}
