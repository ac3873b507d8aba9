package components

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/analysis"
	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// labelWidth caps category labels in the legend.
	labelWidth = 28
	// maxBars bounds the bars drawn for one chart.
	maxBars = 12
)

// BarChart renders a categorical series as horizontal bars followed by a
// legend with exact values. Pie charts are drawn the same way with their
// share of the total appended.
func BarChart(c analysis.Chart, width int) string {
	header := styles.Label.Render(c.Title)
	if c.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left, header, emptyNote(c))
	}

	points := c.Points
	if len(points) > maxBars {
		points = points[:maxBars]
	}

	data := make([]barchart.BarData, len(points))
	for i, p := range points {
		data[i] = barchart.BarData{
			Label: fmt.Sprintf("%d", i+1),
			Values: []barchart.BarValue{{
				Name:  p.Label,
				Value: p.Value,
				Style: styles.Bar(i),
			}},
		}
	}

	chartWidth := max(width-labelWidth-16, 20)
	bc := barchart.New(chartWidth, len(points)*2,
		barchart.WithHorizontalBars(),
		barchart.WithDataSet(data),
		barchart.WithStyles(styles.ChartAxis, styles.ChartAxisLabel),
	)
	bc.Draw()

	legend := legendLines(c, points)
	body := lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legend)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// HistogramChart renders bucket counts as vertical bars with the bucket
// ranges in the legend.
func HistogramChart(c analysis.Chart, width int) string {
	header := styles.Label.Render(c.Title)
	if c.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left, header, emptyNote(c))
	}

	data := make([]barchart.BarData, len(c.Points))
	for i, p := range c.Points {
		data[i] = barchart.BarData{
			Label: fmt.Sprintf("%d", i+1),
			Values: []barchart.BarValue{{
				Name:  p.Label,
				Value: p.Value,
				Style: styles.Bar(0),
			}},
		}
	}

	bc := barchart.New(max(width-labelWidth-16, 20), chartHeight,
		barchart.WithDataSet(data),
		barchart.WithStyles(styles.ChartAxis, styles.ChartAxisLabel),
	)
	bc.Draw()

	body := lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legendLines(c, c.Points))
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func legendLines(c analysis.Chart, points []analysis.Point) string {
	var total float64
	for _, p := range c.Points {
		total += p.Value
	}

	lines := make([]string, len(points))
	for i, p := range points {
		label := ansi.Truncate(p.Label, labelWidth, "…")
		pad := strings.Repeat(" ", max(labelWidth-ansi.StringWidth(label), 0))
		value := FormatValue(p.Value, c.Unit)
		if c.Kind == analysis.ChartPie && total > 0 {
			value += fmt.Sprintf(" (%.1f%%)", p.Value/total*100)
		}
		idx := styles.Bar(i).Render(fmt.Sprintf("%2d", i+1))
		lines[i] = idx + " " + styles.Value.Render(label) + pad + "  " + styles.MutedText.Render(value)
	}
	return strings.Join(lines, "\n")
}

// Chart dispatches to the renderer for c's kind.
func Chart(c analysis.Chart, width int) string {
	switch c.Kind {
	case analysis.ChartLine:
		return LineChart(c, width)
	case analysis.ChartHistogram:
		return HistogramChart(c, width)
	default:
		return BarChart(c, width)
	}
}
