// Package retry re-runs history writes that lose the SQLite lock to another
// sapmon process.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Policy bounds how often and how long an operation is retried.
type Policy struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
	// Retryable selects the errors worth another attempt. Nil means IsBusy.
	Retryable func(error) bool
}

// SQLiteWrite is the policy for a single history insert or delete. The
// driver already waits out busy_timeout, so a few short extra attempts are
// enough.
var SQLiteWrite = Policy{
	Attempts:  4,
	Base:      50 * time.Millisecond,
	Max:       time.Second,
	Retryable: IsBusy,
}

// Do runs fn until it succeeds, returns a non-retryable error, runs out of
// attempts or ctx ends.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	_, err := Value(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Value is Do for operations that produce a result.
func Value[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	attempts := max(p.Attempts, 1)
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsBusy
	}

	var zero T
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if attempt >= attempts || !retryable(err) {
			return zero, err
		}
		if !wait(ctx, p.backoff(attempt)) {
			return zero, ctx.Err()
		}
	}
}

// IsBusy reports whether err is SQLite refusing a statement because another
// connection holds the lock.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// backoff doubles the base delay per attempt, caps it at Max and picks a
// uniformly random delay below that.
func (p Policy) backoff(attempt int) time.Duration {
	if p.Base <= 0 {
		return 0
	}
	d := p.Base << (attempt - 1)
	if d <= 0 || (p.Max > 0 && d > p.Max) {
		d = p.Max
	}
	return rand.N(d + 1)
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
