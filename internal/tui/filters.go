package tui

import (
	"context"
	"errors"
	"os"

	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// maxOptions bounds the choices offered per dimension; large accounts lists
// are not browsable in a terminal anyway.
const maxOptions = 200

// ChoiceLister lists the selectable values of a dimension.
// *pipeline.Dataset satisfies it.
type ChoiceLister interface {
	Choices(dim filter.Dimension) []string
}

// PickFilters runs a form with one multi-select per dimension that has
// values in the data. Current selections are preselected. Dimensions left
// empty are unconstrained.
func PickFilters(ds ChoiceLister, current filter.Selection) (filter.Selection, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	picked := make(map[filter.Dimension]*[]string)
	var groups []*huh.Group
	for _, dim := range filter.Dimensions() {
		choices := ds.Choices(dim)
		if len(choices) == 0 {
			continue
		}
		opts := buildFilterOptions(choices, current[dim])
		selected := append([]string(nil), current[dim]...)
		picked[dim] = &selected

		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(dim.Label()).
				Description("space to toggle, enter to continue; nothing selected means all").
				Options(opts...).
				Value(picked[dim]).
				Filterable(true).
				Height(min(len(opts)+2, 12)),
		))
	}

	if len(groups) == 0 {
		return current, nil
	}
	if err := runForm(accessible, groups...); err != nil {
		return nil, err
	}

	sel := make(filter.Selection, len(picked))
	for dim, vals := range picked {
		if len(*vals) > 0 {
			sel[dim] = *vals
		}
	}
	return sel, nil
}

// buildFilterOptions turns distinct values into options, keeping current
// selections even when they fall past the option limit.
func buildFilterOptions(choices, current []string) []huh.Option[string] {
	selected := make(map[string]bool, len(current))
	for _, c := range current {
		selected[c] = true
	}
	opts := make([]huh.Option[string], 0, min(len(choices), maxOptions))
	for i, c := range choices {
		if i >= maxOptions && !selected[c] {
			continue
		}
		opts = append(opts, huh.NewOption(c, c).Selected(selected[c]))
	}
	return opts
}

// LoadWithSpinner runs load behind a spinner on stderr.
func LoadWithSpinner(ctx context.Context, title string, load func(context.Context) *pipeline.Dataset) (*pipeline.Dataset, error) {
	var ds *pipeline.Dataset
	err := spinner.New().
		Title(title).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(os.Stderr).
		Context(ctx).
		ActionWithErr(func(ctx context.Context) error {
			ds = load(ctx)
			return ctx.Err()
		}).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return ds, nil
}

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
