package components

import (
	"fmt"
	"math"

	"nathanbeddoewebdev/sapmon/internal/analysis"
	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// chartHeight is the fixed height for line charts.
const chartHeight = 8

// LineChart renders a time or bucket series as an ASCII line plot with a
// label header and a first/last caption.
func LineChart(c analysis.Chart, width int) string {
	header := styles.Label.Render(c.Title)
	if c.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left, header, emptyNote(c))
	}

	data := make([]float64, len(c.Points))
	for i, p := range c.Points {
		data[i] = p.Value
	}
	// asciigraph needs two points to draw a line.
	if len(data) == 1 {
		data = append(data, data[0])
	}

	// Reserve space for Y-axis labels (number + " ┤" ≈ 9 chars).
	plotWidth := max(width-9, 10)

	plot := asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(precisionFor(data)),
		asciigraph.SeriesColors(asciigraph.DodgerBlue),
		asciigraph.LabelColor(asciigraph.Default),
	)

	first, last := c.Points[0], c.Points[len(c.Points)-1]
	lo, hi := minMax(data)
	summary := styles.MutedText.Render(
		fmt.Sprintf("  %s → %s  min: %s  max: %s",
			first.Label, last.Label,
			FormatValue(lo, c.Unit),
			FormatValue(hi, c.Unit),
		),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, plot, summary)
}

// precisionFor picks axis decimals so small series do not collapse to 0.
func precisionFor(data []float64) uint {
	_, hi := minMax(data)
	if math.Abs(hi) < 10 {
		return 2
	}
	return 0
}

// minMax returns the minimum and maximum values from a slice.
func minMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// FormatValue renders a float with an optional unit, using human-readable
// scaling for large values.
func FormatValue(v float64, unit string) string {
	suffix := ""
	if unit != "" {
		suffix = " " + unit
	}
	a := math.Abs(v)
	switch {
	case a >= 1_000_000_000:
		return fmt.Sprintf("%.1fG%s", v/1_000_000_000, suffix)
	case a >= 1_000_000:
		return fmt.Sprintf("%.1fM%s", v/1_000_000, suffix)
	case a >= 10_000:
		return fmt.Sprintf("%.1fK%s", v/1_000, suffix)
	case v == math.Trunc(v):
		return fmt.Sprintf("%.0f%s", v, suffix)
	default:
		return fmt.Sprintf("%.2f%s", v, suffix)
	}
}

func emptyNote(c analysis.Chart) string {
	note := c.Note
	if note == "" {
		note = "no data"
	}
	return styles.Note.Render(note)
}
