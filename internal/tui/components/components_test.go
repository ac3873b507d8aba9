package components

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/sapmon/internal/analysis"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{0, "", "0"},
		{12, "", "12"},
		{1.234, "s", "1.23 s"},
		{12_345, "", "12.3K"},
		{2_500_000, "MB", "2.5M MB"},
		{3_000_000_000, "", "3.0G"},
		{-20_000, "", "-20.0K"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.unit); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.v, tt.unit, got, tt.want)
		}
	}
}

func TestChart_EmptyShowsNote(t *testing.T) {
	for _, kind := range []analysis.ChartKind{analysis.ChartBar, analysis.ChartLine, analysis.ChartPie, analysis.ChartHistogram} {
		c := analysis.Chart{Title: "Restarts", Kind: kind, Note: "missing columns: WP_IRESTRT"}
		out := Chart(c, 80)
		if !strings.Contains(out, "Restarts") || !strings.Contains(out, "missing columns: WP_IRESTRT") {
			t.Errorf("%s: unexpected output:\n%s", kind, out)
		}
	}
}

func TestBarChart_LegendListsLabels(t *testing.T) {
	c := analysis.Chart{
		Title: "Top accounts",
		Kind:  analysis.ChartPie,
		Points: []analysis.Point{
			{Label: "ALICE", Value: 75},
			{Label: "BOB", Value: 25},
		},
	}
	out := BarChart(c, 100)
	for _, want := range []string{"Top accounts", "ALICE", "BOB", "75.0%", "25.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLineChart_Caption(t *testing.T) {
	c := analysis.Chart{
		Title: "Hourly mean response time",
		Kind:  analysis.ChartLine,
		Unit:  "s",
		Points: []analysis.Point{
			{Label: "2024-03-01 08:00", Value: 1.5},
			{Label: "2024-03-01 09:00", Value: 3},
		},
	}
	out := LineChart(c, 80)
	for _, want := range []string{"2024-03-01 08:00", "2024-03-01 09:00", "max: 3 s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestKPICards(t *testing.T) {
	out := KPICards([]analysis.KPI{
		{Label: "Mean memory use", Unit: "MB", Value: 36.25, Available: true},
		{Label: "Total SQL executions"},
	}, 120)
	for _, want := range []string{"Mean memory use", "36.25 MB", "n/a"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
