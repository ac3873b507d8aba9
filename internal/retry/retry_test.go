package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

var errLocked = errors.New("database is locked (5) (SQLITE_BUSY)")

func fast(attempts int) Policy {
	return Policy{Attempts: attempts, Retryable: IsBusy}
}

func TestDo_RetriesBusyUntilAttemptsRunOut(t *testing.T) {
	calls := 0
	err := fast(3).Do(context.Background(), func() error {
		calls++
		return errLocked
	})

	if !errors.Is(err, errLocked) {
		t.Fatalf("err = %v, want the last busy error", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDo_StopsOnOtherErrors(t *testing.T) {
	calls := 0
	err := fast(3).Do(context.Background(), func() error {
		calls++
		return errors.New("no such table: load_history")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestValue_ReturnsResultAfterRetry(t *testing.T) {
	calls := 0
	got, err := Value(context.Background(), fast(3), func() (int64, error) {
		calls++
		if calls == 1 {
			return 0, fmt.Errorf("insert: %w", errLocked)
		}
		return 42, nil
	})

	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if got != 42 || calls != 2 {
		t.Fatalf("got %d after %d calls, want 42 after 2", got, calls)
	}
}

func TestDo_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := fast(3).Do(ctx, func() error {
		calls++
		return errLocked
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Policy{}.Do(context.Background(), func() error {
		calls++
		return errLocked
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestBackoff(t *testing.T) {
	if d := (Policy{}).backoff(1); d != 0 {
		t.Errorf("backoff without base = %v, want 0", d)
	}

	p := Policy{Base: 10 * time.Millisecond, Max: 25 * time.Millisecond}
	for attempt := 1; attempt <= 6; attempt++ {
		if d := p.backoff(attempt); d < 0 || d > p.Max {
			t.Errorf("backoff(%d) = %v, want within [0, %v]", attempt, d, p.Max)
		}
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"locked", errLocked, true},
		{"wrapped locked", fmt.Errorf("save: %w", errLocked), true},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("no such table: load_history"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBusy(tt.err); got != tt.want {
				t.Errorf("IsBusy(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
