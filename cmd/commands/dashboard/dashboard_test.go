package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/sapmon/cmd/commands/cliflags"
	"nathanbeddoewebdev/sapmon/internal/config"

	"github.com/spf13/cobra"
)

// Under go test stdout is not a terminal, so the command prints the text
// report instead of opening the browser.
func TestDashboard_PlainOutputWithoutTerminal(t *testing.T) {
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	dir := t.TempDir()
	csv := "WP_NO,WP_TYP,WP_STATUS,WP_CPU\n1,DIA,Running,2:30\n2,BTC,Waiting,0:05\n"
	if err := os.WriteFile(filepath.Join(dir, "perf.csv"), []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	var outBuf, errBuf bytes.Buffer
	root := &cobra.Command{Use: "sapmon"}
	cliflags.Register(root)
	root.AddCommand(NewCommand())
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs([]string{"dashboard", "--data-dir", dir, "--file", "performance=perf.csv", "--no-history", "--wp-type", "DIA"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := outBuf.String()
	for _, want := range []string{"Key indicators", "Work process type:", "Work processes by type", "DIA"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
