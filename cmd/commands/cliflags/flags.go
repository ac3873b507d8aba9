// Package cliflags holds the persistent flags every data command shares and
// turns them into a monitor service.
package cliflags

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/config"
	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/logging"
	"nathanbeddoewebdev/sapmon/internal/services/monitor"
	"nathanbeddoewebdev/sapmon/internal/sources"

	"github.com/spf13/cobra"
)

const (
	DataDir   = "data-dir"
	Manifest  = "manifest"
	LogLevel  = "log-level"
	File      = "file"
	NoHistory = "no-history"
)

// Register adds the shared flags to cmd as persistent flags.
func Register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String(DataDir, "", "Directory holding the monitoring exports (default: config data-dir, then .)")
	f.String(Manifest, "", "YAML manifest mapping sources to export files")
	f.String(LogLevel, "", "Log level: debug, info, warn, error (default: config log-level, then warn)")
	f.StringToString(File, nil, "Export file for one source, e.g. --file usr02=users.csv\nSources: "+strings.Join(sources.Keys(), ", "))
	f.Bool(NoHistory, false, "Do not record load outcomes in the history database")
}

// Settings reads the shared flags and layers them over the persisted
// config. Flags that were never registered read as unset.
func Settings(cmd *cobra.Command) (monitor.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return monitor.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	var s monitor.Settings
	s.DataDir, _ = flags.GetString(DataDir)
	s.Manifest, _ = flags.GetString(Manifest)
	s.LogLevel, _ = flags.GetString(LogLevel)
	s.Files, _ = flags.GetStringToString(File)
	s.NoHistory, _ = flags.GetBool(NoHistory)

	if s.LogLevel == "" {
		if err := cfg.Validate(); err != nil {
			return monitor.Settings{}, fmt.Errorf("invalid config (fix it with \"sapmon config set\"): %w", err)
		}
	}

	resolved := monitor.Resolve(s, cfg)
	if _, err := logging.ParseLevel(resolved.LogLevel); err != nil {
		return monitor.Settings{}, err
	}
	return resolved, nil
}

// NewService builds a monitor service from the shared flags.
func NewService(cmd *cobra.Command, opts ...monitor.Option) (*monitor.Service, error) {
	s, err := Settings(cmd)
	if err != nil {
		return nil, err
	}
	return monitor.NewService(s, opts...)
}

// AddFilterFlags adds one repeatable flag per filter dimension.
func AddFilterFlags(cmd *cobra.Command) {
	for _, d := range filter.Dimensions() {
		cmd.Flags().StringSlice(filterFlag(d), nil, "Only include rows with this "+strings.ToLower(d.Label())+" (repeatable, comma-separated)")
	}
}

// Selection reads the filter flags added by AddFilterFlags.
func Selection(cmd *cobra.Command) filter.Selection {
	values := make(map[filter.Dimension][]string)
	for _, d := range filter.Dimensions() {
		if vals, err := cmd.Flags().GetStringSlice(filterFlag(d)); err == nil {
			values[d] = vals
		}
	}
	return monitor.ParseSelection(values)
}

// filterFlag names the flag of a dimension: --account, --report,
// --task-type, --wp-type.
func filterFlag(d filter.Dimension) string {
	if d == filter.WorkProcessType {
		return "wp-type"
	}
	return strings.ReplaceAll(strings.ToLower(d.Label()), " ", "-")
}
