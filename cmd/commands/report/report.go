package report

import (
	"encoding/json"
	"fmt"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	"nathanbeddoewebdev/sapmon/internal/services/monitor"

	"github.com/spf13/cobra"
)

// NewCommand returns the "report" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print key indicators and chart data for every source",
		Long: `Load and clean every monitoring export, then print the key indicators and
the data behind each analysis chart. Filter flags restrict every source that
has the matching column; sources without it are reported unfiltered.

Examples:
  sapmon report
  sapmon report --account ALICE,BOB --task-type DIALOG
  sapmon report --section memory --top 5
  sapmon report -o json > report.json`,
		Args:         cobra.NoArgs,
		RunE:         runReport,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.Flags().String("section", "", "Only print the section of this source")
	cmd.Flags().Int("top", 0, "Maximum points printed per chart in table output (0 for all)")
	cliflags.AddFilterFlags(cmd)

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}
	section, _ := cmd.Flags().GetString("section")
	top, _ := cmd.Flags().GetInt("top")
	if top < 0 {
		return fmt.Errorf("top must not be negative")
	}

	svc, err := cliflags.NewService(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	ds := svc.Load(cmd.Context(), cmd.CommandPath())
	rep := monitor.BuildReport(ds, cliflags.Selection(cmd))
	if section != "" {
		if rep, err = onlySection(rep, section); err != nil {
			return err
		}
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	WriteText(cmd.OutOrStdout(), rep, top)
	return nil
}
