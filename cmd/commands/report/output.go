package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/sapmon/internal/analysis"
	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/services/monitor"
	"nathanbeddoewebdev/sapmon/internal/sources"
	"nathanbeddoewebdev/sapmon/internal/tui/components"
)

// WriteText prints a report as plain aligned text: the active filters,
// the key indicators, then every chart of every section. top limits the
// points printed per chart; 0 prints all.
func WriteText(w io.Writer, rep monitor.Report, top int) {
	if !rep.Selection.IsEmpty() {
		fmt.Fprintln(w, "Filters:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, dim := range filter.Dimensions() {
			if vals := rep.Selection[dim]; len(vals) > 0 {
				fmt.Fprintf(tw, "  %s:\t%s\n", dim.Label(), strings.Join(vals, ", "))
			}
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if len(rep.KPIs) > 0 {
		fmt.Fprintln(w, "Key indicators")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, k := range rep.KPIs {
			value := "n/a"
			if k.Available {
				value = components.FormatValue(k.Value, k.Unit)
			}
			fmt.Fprintf(tw, "  %s:\t%s\n", k.Label, value)
		}
		tw.Flush()
	}

	for _, sec := range rep.Sections {
		fmt.Fprintf(w, "\n== %s ==\n", sec.Title)
		for _, c := range sec.Charts {
			writeChart(w, c, top)
		}
	}
}

func writeChart(w io.Writer, c analysis.Chart, top int) {
	fmt.Fprintf(w, "\n%s\n", c.Title)
	if c.Empty() {
		note := c.Note
		if note == "" {
			note = "no data"
		}
		fmt.Fprintf(w, "  (%s)\n", note)
		return
	}

	points := c.Points
	if top > 0 && len(points) > top {
		points = points[:top]
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, p := range points {
		fmt.Fprintf(tw, "  %s\t%s\t\n", p.Label, components.FormatValue(p.Value, c.Unit))
	}
	tw.Flush()
	if len(points) < len(c.Points) {
		fmt.Fprintf(w, "  ... %d more\n", len(c.Points)-len(points))
	}
}

// onlySection keeps the section of one source.
func onlySection(rep monitor.Report, key string) (monitor.Report, error) {
	src, err := sources.ParseSource(key)
	if err != nil {
		return rep, err
	}
	for _, sec := range rep.Sections {
		if sec.Source == src {
			rep.Sections = []analysis.Section{sec}
			return rep, nil
		}
	}
	rep.Sections = nil
	return rep, nil
}
