package sources

import (
	"errors"
	"testing"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		in      string
		want    Source
		wantErr bool
	}{
		{"memory", Memory, false},
		{" HITLIST_DB ", HitlistDB, false},
		{"sql-trace-summary", SQLTraceSummary, false},
		{"usr02", Usr02, false},
		{"payroll", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSource(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSource) {
					t.Fatalf("ParseSource(%q) error = %v, want ErrUnknownSource", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSource(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAll_HasSchemaForEverySource(t *testing.T) {
	if len(All()) != 8 {
		t.Fatalf("All() returned %d sources, want 8", len(All()))
	}
	for _, s := range All() {
		schema := SchemaFor(s)
		if schema.Source != s {
			t.Errorf("SchemaFor(%s).Source = %s", s, schema.Source)
		}
		if s.Title() == string(s) {
			t.Errorf("%s has no title", s)
		}
	}
}

func TestSchemaFor_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SchemaFor did not panic for an unknown source")
		}
	}()
	SchemaFor(Source("bogus"))
}

func TestSchemas_NoDuplicateNumericColumns(t *testing.T) {
	for _, s := range All() {
		seen := map[string]bool{}
		for _, c := range SchemaFor(s).Numeric {
			if seen[c] {
				t.Errorf("%s declares %s twice", s, c)
			}
			seen[c] = true
		}
	}
}

func TestSchemas_SharedGroupsAgree(t *testing.T) {
	for _, s := range []Source{Times, TaskTimes, UserTcode} {
		numeric := map[string]bool{}
		for _, c := range SchemaFor(s).Numeric {
			numeric[c] = true
		}
		for _, c := range columns(responseTimes, readIO, changeIO) {
			if !numeric[c] {
				t.Errorf("%s is missing shared column %s", s, c)
			}
		}
	}
}
