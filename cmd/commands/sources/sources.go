package sources

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	"nathanbeddoewebdev/sapmon/internal/pipeline"
	"nathanbeddoewebdev/sapmon/internal/sources"

	"github.com/spf13/cobra"
)

// NewCommand returns the "sources" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources [source...]",
		Short: "Load the exports and show what each source yielded",
		Long: `Load and clean every monitoring export and print one line per source:
whether it was available, how many rows were read and kept, and why a
source was treated as empty.

Sources: ` + strings.Join(sources.Keys(), ", ") + `

Examples:
  sapmon sources
  sapmon sources memory usr02
  sapmon sources --data-dir ./exports -o json`,
		RunE:         runSources,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runSources(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	srcs := make([]sources.Source, 0, len(args))
	for _, a := range args {
		src, err := sources.ParseSource(a)
		if err != nil {
			return err
		}
		srcs = append(srcs, src)
	}

	svc, err := cliflags.NewService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	ds := svc.Load(cmd.Context(), cmd.CommandPath(), srcs...)
	statuses := ds.Statuses()

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	printStatuses(cmd, statuses)
	return nil
}

func printStatuses(cmd *cobra.Command, statuses []pipeline.Status) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tSTATUS\tROWS IN\tROWS OUT\tDROPPED\tDURATION\tPATH\tDETAIL")
	fmt.Fprintln(w, "------\t------\t-------\t--------\t-------\t--------\t----\t------")
	for _, st := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			st.Source,
			st.Outcome(),
			st.Report.RowsIn,
			st.Report.RowsOut,
			st.Report.Dropped(),
			st.Duration.Round(time.Millisecond),
			st.Path,
			detail(st),
		)
	}
	w.Flush()
}

func detail(st pipeline.Status) string {
	switch {
	case st.Detail != "":
		return st.Detail
	case len(st.Report.MissingMandatory) > 0:
		return "mandatory columns absent: " + strings.Join(st.Report.MissingMandatory, ", ")
	case len(st.Report.MissingColumns) > 0:
		return fmt.Sprintf("%d declared columns absent", len(st.Report.MissingColumns))
	default:
		return "-"
	}
}
