package config

import (
	"nathanbeddoewebdev/sapmon/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sapmon configuration",
		Long: "View and modify persistent sapmon settings.\n\n" +
			"Configuration is stored at ~/.config/sapmon/config.json.\n" +
			"Command-line flags always take precedence over stored values.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
