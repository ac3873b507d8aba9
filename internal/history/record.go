package history

import "time"

// Load outcomes.
const (
	// OutcomeLoaded means the export was read and cleaned.
	OutcomeLoaded = "loaded"
	// OutcomeCached means a cached cleaned table was reused.
	OutcomeCached = "cached"
	// OutcomeUnavailable means the export could not be read and the source
	// was treated as empty.
	OutcomeUnavailable = "unavailable"
)

// Entry records the outcome of loading one source in one run. It holds
// metadata about the run only, never cleaned rows.
type Entry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	RunID       string    `json:"run_id"`
	Command     string    `json:"command,omitempty"`
	Source      string    `json:"source"`
	Path        string    `json:"path"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	RowsIn      int       `json:"rows_in"`
	RowsOut     int       `json:"rows_out"`
	Outcome     string    `json:"outcome"`
	Detail      string    `json:"detail,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
}

// Dropped returns the number of rows removed by cleaning.
func (e Entry) Dropped() int { return e.RowsIn - e.RowsOut }
