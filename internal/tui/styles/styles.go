package styles

import "github.com/charmbracelet/lipgloss"

// --- Text ---

var (
	// Title is used for section and panel headings.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle is used for the context shown on the right of the header.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for chart titles and setting names.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// Value is used for legend labels and setting values.
	Value = lipgloss.NewStyle().
		Foreground(White)

	// MutedText is for hints, legend figures and secondary info.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText marks the selected row.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	// ErrorText is for error messages.
	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// WarningText flags partial results, such as unavailable sources.
	WarningText = lipgloss.NewStyle().
			Foreground(Yellow)

	// Note is the italic line shown in place of a chart with no data.
	Note = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true).
		PaddingLeft(2)
)

// --- Load outcomes ---

// StatusStyle returns the style for a source load outcome.
func StatusStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "loaded":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "cached":
		return lipgloss.NewStyle().Foreground(Blue)
	case "unavailable":
		return lipgloss.NewStyle().Foreground(Red)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// StatusIndicator returns a colored dot followed by the outcome.
func StatusIndicator(outcome string) string {
	style := StatusStyle(outcome)
	return style.Render("●") + " " + style.Render(outcome)
}

// --- Charts and cards ---

var (
	// ChartAxis draws bar chart axes.
	ChartAxis = lipgloss.NewStyle().
			Foreground(DimGray)

	// ChartAxisLabel draws the bar numbers along the axis.
	ChartAxisLabel = lipgloss.NewStyle().
			Foreground(Muted)

	// KPICard frames one headline figure.
	KPICard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray).
		Padding(0, 1)

	// KPIValue is the figure inside a KPI card.
	KPIValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(Blue)

	// Card is a rounded panel, used by the settings editor.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray).
		Padding(1, 2)
)

// SeriesColor returns the palette color for the i-th bar of a chart.
func SeriesColor(i int) lipgloss.Color {
	return Series[i%len(Series)]
}

// Bar returns the fill style of the i-th bar.
func Bar(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeriesColor(i))
}

// --- Key hints ---

var (
	// KeyStyle is used for key labels in the footer (e.g. "q").
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	// KeyDescStyle is used for key descriptions in the footer (e.g. "quit").
	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// KeySepStyle is used for separators between key hints.
	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key hint for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

// --- Tables and tabs ---

var (
	// TableHeader is the style for the source status table header.
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gray).
			Padding(0, 1)

	// TableCell is the style for source status cells.
	TableCell = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)

	// TabActive is the selected section tab.
	TabActive = lipgloss.NewStyle().
			Foreground(White).
			Background(DarkBlue).
			Bold(true).
			Padding(0, 1)

	// TabInactive is every other section tab.
	TabInactive = lipgloss.NewStyle().
			Foreground(Gray).
			Padding(0, 1)
)
