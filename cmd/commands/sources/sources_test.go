package sources

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	"nathanbeddoewebdev/sapmon/internal/config"
	"nathanbeddoewebdev/sapmon/internal/pipeline"

	"github.com/spf13/cobra"
)

const usertcodeCSV = "ENDDATE;ENDTIME;ACCOUNT;TASKTYPE;RESPTI;COUNT\n" +
	"20230615;093000;ALICE;DIALOG;1200;3\n" +
	"20230615;101500;;BATCH;50;1\n"

// setupExports writes a usertcode export to a temp data directory and
// isolates config from the user's real one.
func setupExports(t *testing.T) string {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "usertcode.csv"), []byte(usertcodeCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execSources(t *testing.T, dir string, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	root := &cobra.Command{Use: "sapmon"}
	cliflags.Register(root)
	root.AddCommand(NewCommand())
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(append([]string{"sources", "--data-dir", dir, "--file", "usertcode=usertcode.csv", "--no-history"}, args...))
	root.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSources_Table(t *testing.T) {
	dir := setupExports(t)

	stdout, stderr := execSources(t, dir)

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{"SOURCE", "usertcode", "loaded", "memory", "unavailable"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if lines := strings.Count(strings.TrimSpace(stdout), "\n") + 1; lines != 10 {
		t.Errorf("got %d lines, want header, rule and 8 sources:\n%s", lines, stdout)
	}
}

func TestSources_JSONSubset(t *testing.T) {
	dir := setupExports(t)

	stdout, _ := execSources(t, dir, "usertcode", "-o", "json")

	var statuses []pipeline.Status
	if err := json.Unmarshal([]byte(stdout), &statuses); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses, want 1", len(statuses))
	}
	st := statuses[0]
	if !st.Available || st.Report.RowsIn != 2 || st.Report.RowsOut != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestSources_UnknownSource(t *testing.T) {
	dir := setupExports(t)

	_, stderr := execSources(t, dir, "nope")

	if !strings.Contains(stderr, "unknown source") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}
