package components

import (
	"nathanbeddoewebdev/sapmon/internal/analysis"
	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KPICards renders the headline figures as a row of cards, wrapping onto
// further rows when the terminal is narrow.
func KPICards(kpis []analysis.KPI, width int) string {
	if len(kpis) == 0 {
		return ""
	}
	const cardWidth = 24
	perRow := max(width/(cardWidth+4), 1)

	var rows []string
	var row []string
	for _, k := range kpis {
		value := styles.MutedText.Render("n/a")
		if k.Available {
			value = styles.KPIValue.Render(FormatValue(k.Value, k.Unit))
		}
		card := styles.KPICard.
			Width(cardWidth).
			Render(lipgloss.JoinVertical(lipgloss.Left, styles.Label.Render(k.Label), value))
		row = append(row, card)
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
