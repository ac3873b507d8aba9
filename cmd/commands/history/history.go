package history

import "github.com/spf13/cobra"

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage load history",
		Long: "View the outcome of past export loads and prune old entries.\n\n" +
			"Every load records one entry per source (rows read and kept, whether\n" +
			"the cache was used, why a source was unavailable). No cleaned data is\n" +
			"stored. History lives in ~/.config/sapmon/history.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
