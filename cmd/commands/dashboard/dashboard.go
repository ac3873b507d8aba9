package dashboard

import (
	"context"
	"errors"
	"os"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	"nathanbeddoewebdev/sapmon/cmd/commands/report"
	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/pipeline"
	"nathanbeddoewebdev/sapmon/internal/services/monitor"
	"nathanbeddoewebdev/sapmon/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCommand returns the "dashboard" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the analysis sections interactively",
		Long: `Load every monitoring export and open a full-screen browser with one tab
per source plus an overview of the key indicators and load status.

Inside the browser press f to pick filters, r to reload the exports from
disk (unchanged files are served from the in-memory cache) and q to quit.

When stdout is not a terminal the report is printed as text instead.

Examples:
  sapmon dashboard
  sapmon dashboard --data-dir ./exports --account ALICE`,
		Args:         cobra.NoArgs,
		RunE:         runDashboard,
		SilenceUsage: true,
	}

	cliflags.AddFilterFlags(cmd)

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	settings, err := cliflags.Settings(cmd)
	if err != nil {
		return err
	}
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive && !cmd.Flags().Changed(cliflags.LogLevel) {
		// Unavailable sources are listed on the overview tab; warnings on
		// stderr would only tear the alternate screen.
		settings.LogLevel = "error"
	}

	svc, err := monitor.NewService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	sel := cliflags.Selection(cmd)
	load := func(ctx context.Context) *pipeline.Dataset {
		return svc.Load(ctx, cmd.CommandPath())
	}

	if !interactive {
		report.WriteText(cmd.OutOrStdout(), monitor.BuildReport(load(cmd.Context()), sel), 10)
		return nil
	}

	ds, err := tui.LoadWithSpinner(cmd.Context(), "Loading monitoring exports...", load)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		return err
	}
	return browse(cmd.Context(), svc, ds, sel, load)
}

// browse reopens the section browser after every filter change or reload
// until the user quits.
func browse(ctx context.Context, svc *monitor.Service, ds *pipeline.Dataset, sel filter.Selection, load func(context.Context) *pipeline.Dataset) error {
	tab := 0
	for {
		rep := monitor.BuildReport(ds, sel)
		result, err := tui.RunDashboard(tui.Dashboard{
			Context:   svc.Manifest().DataDir,
			KPIs:      rep.KPIs,
			Sections:  rep.Sections,
			Statuses:  rep.Sources,
			Selection: sel,
		}, tab)
		if err != nil {
			return err
		}
		tab = result.Tab

		switch result.Action {
		case tui.DashboardFilter:
			next, err := tui.PickFilters(ds, sel)
			if errors.Is(err, tui.ErrAborted) {
				continue
			}
			if err != nil {
				return err
			}
			sel = next

		case tui.DashboardReload:
			next, err := tui.LoadWithSpinner(ctx, "Reloading monitoring exports...", load)
			if errors.Is(err, tui.ErrAborted) {
				continue
			}
			if err != nil {
				return err
			}
			ds = next

		default:
			return nil
		}
	}
}
