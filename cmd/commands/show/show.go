package show

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	"nathanbeddoewebdev/sapmon/internal/sources"
	"nathanbeddoewebdev/sapmon/internal/table"

	"github.com/spf13/cobra"
)

// NewCommand returns the "show" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <source>",
		Short: "Print the cleaned rows of one source",
		Long: `Load one monitoring export, clean it, and print the resulting rows.

Sources: ` + strings.Join(sources.Keys(), ", ") + `

Examples:
  sapmon show usertcode
  sapmon show memory --limit 0 -o csv > memory.csv
  sapmon show hitlist_db --columns ACCOUNT,RESPTI -o json`,
		Args:         cobra.ExactArgs(1),
		ValidArgs:    sources.Keys(),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or csv")
	cmd.Flags().Int("limit", 20, "Maximum rows to print (0 for all)")
	cmd.Flags().StringSlice("columns", nil, "Only print these columns")
	cliflags.AddFilterFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	src, err := sources.ParseSource(args[0])
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	columns, _ := cmd.Flags().GetStringSlice("columns")

	svc, err := cliflags.NewService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	ds := svc.Load(cmd.Context(), cmd.CommandPath(), src)
	if sel := cliflags.Selection(cmd); !sel.IsEmpty() {
		ds = ds.Filtered(sel)
	}
	st, _ := ds.Status(src)
	if !st.Available {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s unavailable: %s\n", src, st.Detail)
	}

	t := ds.Table(src)
	cols, err := selectColumns(t, columns)
	if err != nil {
		return err
	}
	rows := t.Len()
	if limit > 0 && limit < rows {
		rows = limit
	}

	out := cmd.OutOrStdout()
	switch output {
	case "json":
		return writeJSON(out, t, cols, rows)
	case "csv":
		return writeCSV(out, t, cols, rows)
	}

	if t.IsEmpty() {
		fmt.Fprintln(out, "No rows.")
		return nil
	}
	writeTable(out, t, cols, rows)
	if rows < t.Len() {
		fmt.Fprintf(cmd.ErrOrStderr(), "showing %d of %d rows (use --limit 0 for all)\n", rows, t.Len())
	}
	return nil
}

// selectColumns validates the requested columns. An empty request means
// every column in table order.
func selectColumns(t *table.Table, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return t.Columns, nil
	}
	cols := make([]string, 0, len(requested))
	for _, c := range requested {
		c = strings.ToUpper(strings.TrimSpace(c))
		if !t.Has(c) {
			return nil, fmt.Errorf("unknown column %q", c)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func writeTable(w io.Writer, t *table.Table, cols []string, rows int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	dashes := make([]string, len(cols))
	for i, c := range cols {
		dashes[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))
	for r := 0; r < rows; r++ {
		fmt.Fprintln(tw, strings.Join(rowText(t, r, cols), "\t"))
	}
	tw.Flush()
}

func writeCSV(w io.Writer, t *table.Table, cols []string, rows int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for r := 0; r < rows; r++ {
		if err := cw.Write(rowText(t, r, cols)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, t *table.Table, cols []string, rows int) error {
	records := make([]map[string]table.Value, rows)
	for r := 0; r < rows; r++ {
		rec := make(map[string]table.Value, len(cols))
		for _, c := range cols {
			rec[c] = t.Get(r, c)
		}
		records[r] = rec
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func rowText(t *table.Table, r int, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = t.Get(r, c).Text()
	}
	return out
}
