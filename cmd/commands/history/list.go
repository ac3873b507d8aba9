package history

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/sapmon/internal/history"
	"nathanbeddoewebdev/sapmon/internal/sources"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent load entries",
		Long: `List recent load entries stored locally, newest first.

Examples:
  sapmon history list
  sapmon history list --limit 50
  sapmon history list --source usr02
  sapmon history list --run 3f2c9a1e-...
  sapmon history list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("source", "", "Only show entries of this source")
	cmd.Flags().String("run", "", "Only show entries of this run ID")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	source, _ := cmd.Flags().GetString("source")
	run, _ := cmd.Flags().GetString("run")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := history.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []history.Entry
	switch {
	case run != "":
		entries, err = repo.ListByRun(run)
	case source != "":
		src, perr := sources.ParseSource(source)
		if perr != nil {
			return perr
		}
		entries, err = repo.ListBySource(src.String(), limit)
	default:
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No load history found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tRUN\tCOMMAND\tSOURCE\tOUTCOME\tROWS\tDROPPED\tDURATION\tDETAIL")
	fmt.Fprintln(w, "----\t---\t-------\t------\t-------\t----\t-------\t--------\t------")
	for _, entry := range entries {
		timeStr := entry.Timestamp.Local().Format("2006-01-02 15:04:05")
		detail := entry.Detail
		if detail == "" {
			detail = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			timeStr,
			shortRun(entry.RunID),
			entry.Command,
			entry.Source,
			entry.Outcome,
			entry.RowsOut,
			entry.Dropped(),
			formatDuration(entry.DurationMs),
			detail,
		)
	}
	w.Flush()
	return nil
}

func shortRun(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
