package cmd

import (
	"os"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	cfgcmd "nathanbeddoewebdev/sapmon/cmd/commands/config"
	"nathanbeddoewebdev/sapmon/cmd/commands/dashboard"
	"nathanbeddoewebdev/sapmon/cmd/commands/history"
	"nathanbeddoewebdev/sapmon/cmd/commands/report"
	"nathanbeddoewebdev/sapmon/cmd/commands/show"
	sourcescmd "nathanbeddoewebdev/sapmon/cmd/commands/sources"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "sapmon",
		Short: "Clean and analyse ERP monitoring exports",
		Long: `sapmon loads the eight monitoring exports of an ERP system (memory, hitlist,
time buckets, task times, user transactions, work processes, SQL trace
summary and user master records), cleans them into canonical tables, and
turns them into key indicators and charts.

Missing or unreadable exports are reported and treated as empty; the rest
are still analysed.

Quick start:
  sapmon config set data-dir ./exports   # Where the exports live
  sapmon sources                          # What each export yielded
  sapmon report --account ALICE           # Indicators and chart data
  sapmon dashboard                        # Interactive section browser`,
		SilenceUsage: true,
	}

	cliflags.Register(cmd)

	cmd.AddCommand(sourcescmd.NewCommand())
	cmd.AddCommand(show.NewCommand())
	cmd.AddCommand(report.NewCommand())
	cmd.AddCommand(dashboard.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(history.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
