package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"nathanbeddoewebdev/sapmon/internal/sources"
)

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest("/data")
	for _, src := range sources.All() {
		want := filepath.Join("/data", DefaultFiles[src])
		if got := m.Path(src); got != want {
			t.Errorf("Path(%s) = %q, want %q", src, got, want)
		}
	}
	if got := DefaultManifest("").Path(sources.Usr02); got != "usr02_data.xlsx" {
		t.Errorf("Path with empty data dir = %q", got)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	body := "data_dir: exports\nsources:\n  usr02: users.csv\n  sql-trace-summary: /abs/sql.xlsx\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path, "/ignored")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if got, want := m.Path(sources.Usr02), filepath.Join(dir, "exports", "users.csv"); got != want {
		t.Errorf("usr02 = %q, want %q", got, want)
	}
	if got := m.Path(sources.SQLTraceSummary); got != "/abs/sql.xlsx" {
		t.Errorf("sql_trace_summary = %q, want absolute path kept", got)
	}
	if got, want := m.Path(sources.Memory), filepath.Join(dir, "exports", DefaultFiles[sources.Memory]); got != want {
		t.Errorf("memory = %q, want default %q", got, want)
	}
}

func TestLoadManifest_UnknownSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  payroll: p.csv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(path, "")
	if !errors.Is(err, sources.ErrUnknownSource) {
		t.Errorf("error = %v, want ErrUnknownSource", err)
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"), ""); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestManifest_YAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := DefaultManifest(dir).With(sources.Times, "t.csv")
	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(dir, "m.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadManifest(path, "")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if got.Path(sources.Times) != filepath.Join(dir, "t.csv") {
		t.Errorf("times = %q", got.Path(sources.Times))
	}
}

func TestManifest_WithDoesNotMutate(t *testing.T) {
	base := DefaultManifest("d")
	_ = base.With(sources.Memory, "other.csv")
	if base.Paths[sources.Memory] != DefaultFiles[sources.Memory] {
		t.Error("With modified the receiver")
	}
}
