package history

import (
	"context"
	"testing"
)

func TestWithRun_Merges(t *testing.T) {
	ctx := WithRun(context.Background(), Run{ID: "abc", Command: "sapmon report"})
	ctx = WithRun(ctx, Run{Command: "sapmon dashboard"})

	run, ok := RunFromContext(ctx)
	if !ok {
		t.Fatal("expected run in context")
	}
	if run.ID != "abc" {
		t.Errorf("ID = %q, want abc", run.ID)
	}
	if run.Command != "sapmon dashboard" {
		t.Errorf("Command = %q, want sapmon dashboard", run.Command)
	}
}

func TestRunFromContext_Missing(t *testing.T) {
	if _, ok := RunFromContext(context.Background()); ok {
		t.Error("expected no run in a bare context")
	}
}

func TestNewRun_UniqueIDs(t *testing.T) {
	a, b := NewRun("x"), NewRun("x")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q %q", a.ID, b.ID)
	}
}
