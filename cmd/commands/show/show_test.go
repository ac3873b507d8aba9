package show

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	"nathanbeddoewebdev/sapmon/internal/config"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

const usertcodeCSV = "ENDDATE;ENDTIME;ACCOUNT;TASKTYPE;RESPTI;COUNT\n" +
	"20230615;093000;ALICE;DIALOG;1 200;3\n" +
	"20230615;101500;BOB;BATCH;50;1\n" +
	"20230615;111500;CAROL;DIALOG;75;2\n"

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

func execShow(t *testing.T, dir string, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	root := &cobra.Command{Use: "sapmon"}
	cliflags.Register(root)
	root.AddCommand(NewCommand())
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(append([]string{"show", "--data-dir", dir, "--file", "usertcode=usertcode.csv", "--no-history"}, args...))
	root.Execute()
	return outBuf.String(), errBuf.String()
}

func TestShow_CSV(t *testing.T) {
	dir := setupExports(t)

	stdout, _ := execShow(t, dir, "usertcode", "-o", "csv", "--columns", "account,respti", "--limit", "0")

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v\n%s", err, stdout)
	}
	want := [][]string{
		{"ACCOUNT", "RESPTI"},
		{"ALICE", "1200"},
		{"BOB", "50"},
		{"CAROL", "75"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestShow_JSONFilteredAndLimited(t *testing.T) {
	dir := setupExports(t)

	stdout, _ := execShow(t, dir, "usertcode", "-o", "json", "--task-type", "DIALOG", "--limit", "1")

	var rows []map[string]any
	if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["ACCOUNT"] != "ALICE" || rows[0]["RESPTI"] != float64(1200) {
		t.Errorf("row = %v", rows[0])
	}
}

func TestShow_TableNotesTruncation(t *testing.T) {
	dir := setupExports(t)

	stdout, stderr := execShow(t, dir, "usertcode", "--limit", "2", "--columns", "ACCOUNT")

	if !strings.Contains(stdout, "ACCOUNT") || !strings.Contains(stdout, "BOB") || strings.Contains(stdout, "CAROL") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stderr, "showing 2 of 3 rows") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestShow_UnavailableSource(t *testing.T) {
	dir := setupExports(t)

	stdout, stderr := execShow(t, dir, "usr02")

	if !strings.Contains(stderr, "usr02 unavailable") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "No rows.") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestShow_Errors(t *testing.T) {
	dir := setupExports(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"bogus"}, "unknown source"},
		{[]string{"usertcode", "-o", "xml"}, "unsupported output format"},
		{[]string{"usertcode", "--columns", "NOPE"}, `unknown column "NOPE"`},
		{[]string{"usertcode", "--limit", "-1"}, "limit must not be negative"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, stderr := execShow(t, dir, tt.args...)
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}
