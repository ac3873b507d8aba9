package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/history"
	"nathanbeddoewebdev/sapmon/internal/sources"
)

const usertcodeCSV = "ENDDATE;ENDTIME;ACCOUNT;TASKTYPE;RESPTI;COUNT\n" +
	"20230615;930;alice;DIALOG;1 200;3\n" +
	"20230615;101500;bob;BATCH;(50);1\n" +
	"20230615;101500;;BATCH;10;1\n"

const performanceCSV = "WP_NO,WP_TYP,WP_STATUS,WP_CPU,WP_IWAIT\n" +
	"1,DIA,Running,2:30,500\n" +
	"2,BTC,Waiting,0:05,\n"

func writeExports(t *testing.T) Manifest {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"usertcode.csv":   usertcodeCSV,
		"performance.csv": performanceCSV,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return DefaultManifest(dir).
		With(sources.UserTcode, "usertcode.csv").
		With(sources.Performance, "performance.csv")
}

func TestLoad_MissingFilesBecomeEmptyTables(t *testing.T) {
	m := writeExports(t)
	ds := New().Load(context.Background(), m)

	if diff := cmp.Diff(sources.All(), ds.Sources()); diff != "" {
		t.Errorf("sources (-want +got):\n%s", diff)
	}

	usertcode := ds.Table(sources.UserTcode)
	if usertcode.Len() != 2 {
		t.Fatalf("usertcode rows = %d, want 2", usertcode.Len())
	}
	if got := usertcode.Get(0, "RESPTI").Float(); got != 1200 {
		t.Errorf("RESPTI = %v, want 1200", got)
	}
	if got := usertcode.Get(1, "RESPTI").Float(); got != -50 {
		t.Errorf("RESPTI = %v, want -50", got)
	}

	perf := ds.Table(sources.Performance)
	if got := perf.Get(0, sources.ColWPCPUSeconds).Int64(); got != 150 {
		t.Errorf("WP_CPU_SECONDS = %d, want 150", got)
	}

	if diff := cmp.Diff(
		[]sources.Source{sources.Memory, sources.HitlistDB, sources.Times, sources.TaskTimes, sources.SQLTraceSummary, sources.Usr02},
		ds.Unavailable(),
	); diff != "" {
		t.Errorf("unavailable (-want +got):\n%s", diff)
	}
	st, ok := ds.Status(sources.Memory)
	if !ok || st.Available || st.Detail == "" {
		t.Errorf("memory status = %+v, want unavailable with detail", st)
	}
	if !ds.Table(sources.Memory).IsEmpty() {
		t.Error("unavailable source should yield an empty table")
	}
}

func TestLoad_SecondLoadHitsCache(t *testing.T) {
	m := writeExports(t)
	p := New()

	first := p.LoadSources(context.Background(), m, sources.UserTcode)
	second := p.LoadSources(context.Background(), m, sources.UserTcode)

	st1, _ := first.Status(sources.UserTcode)
	st2, _ := second.Status(sources.UserTcode)
	if st1.Cached || !st2.Cached {
		t.Errorf("cached flags = %v, %v; want false, true", st1.Cached, st2.Cached)
	}
	if st1.Fingerprint != st2.Fingerprint {
		t.Error("fingerprint changed between identical loads")
	}
	if second.Table(sources.UserTcode).Len() != 2 {
		t.Errorf("cached table rows = %d, want 2", second.Table(sources.UserTcode).Len())
	}
}

func TestLoad_ChangedFileIsRecleaned(t *testing.T) {
	m := writeExports(t)
	p := New()
	p.LoadSources(context.Background(), m, sources.Performance)

	path := m.Path(sources.Performance)
	if err := os.WriteFile(path, []byte(performanceCSV+"3,DIA,Running,1:00,0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	ds := p.LoadSources(context.Background(), m, sources.Performance)
	st, _ := ds.Status(sources.Performance)
	if st.Cached {
		t.Error("changed file served from cache")
	}
	if ds.Table(sources.Performance).Len() != 3 {
		t.Errorf("rows = %d, want 3", ds.Table(sources.Performance).Len())
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	m := writeExports(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := New().LoadSources(ctx, m, sources.UserTcode)
	if st, _ := ds.Status(sources.UserTcode); st.Available {
		t.Error("cancelled load reported the source as available")
	}
}

func TestLoad_RecordsHistory(t *testing.T) {
	repo, err := history.OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	m := writeExports(t)
	run := history.Run{ID: "run-1", Command: "sapmon report"}
	ctx := history.WithRun(context.Background(), run)

	New(WithHistory(repo)).LoadSources(ctx, m, sources.UserTcode, sources.Usr02)

	entries, err := repo.ListByRun("run-1")
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	got := map[string]string{}
	for _, e := range entries {
		got[e.Source] = e.Outcome
	}
	want := map[string]string{"usertcode": history.OutcomeLoaded, "usr02": history.OutcomeUnavailable}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outcomes (-want +got):\n%s", diff)
	}
	for _, e := range entries {
		if e.Source == "usertcode" && (e.RowsIn != 3 || e.RowsOut != 2) {
			t.Errorf("usertcode rows = %d -> %d, want 3 -> 2", e.RowsIn, e.RowsOut)
		}
	}
}

func TestDataset_Filtered(t *testing.T) {
	m := writeExports(t)
	ds := New().Load(context.Background(), m)

	sel := filter.Selection{filter.Account: {"alice"}, filter.WorkProcessType: {"BTC"}}
	view := ds.Filtered(sel)

	if view.Table(sources.UserTcode).Len() != 1 {
		t.Errorf("filtered usertcode rows = %d, want 1", view.Table(sources.UserTcode).Len())
	}
	if view.Table(sources.Performance).Len() != 1 {
		t.Errorf("filtered performance rows = %d, want 1", view.Table(sources.Performance).Len())
	}
	if ds.Table(sources.UserTcode).Len() != 2 || ds.Table(sources.Performance).Len() != 2 {
		t.Error("Filtered modified the original dataset")
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, ds.Choices(filter.Account)); diff != "" {
		t.Errorf("choices (-want +got):\n%s", diff)
	}
}
