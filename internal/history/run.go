package history

import (
	"context"

	"github.com/google/uuid"
)

// Run identifies one invocation of the pipeline so its per-source entries
// can be grouped.
type Run struct {
	ID      string
	Command string
}

type runKey struct{}

// NewRun returns a Run with a fresh random ID.
func NewRun(command string) Run {
	return Run{ID: uuid.NewString(), Command: command}
}

// WithRun attaches run metadata to a context. Empty fields keep the values
// already stored in ctx.
func WithRun(ctx context.Context, run Run) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(runKey{}).(Run)
	merged := Run{
		ID:      pick(run.ID, existing.ID),
		Command: pick(run.Command, existing.Command),
	}
	return context.WithValue(ctx, runKey{}, merged)
}

// RunFromContext returns the run stored in ctx, if any.
func RunFromContext(ctx context.Context) (Run, bool) {
	if ctx == nil {
		return Run{}, false
	}
	run, ok := ctx.Value(runKey{}).(Run)
	return run, ok
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
