package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nathanbeddoewebdev/sapmon/internal/table"
)

func accounts() *table.Table {
	return table.New([]string{"ACCOUNT", "TASKTYPE", "RESPTI"}, []table.Row{
		{table.String("alice"), table.String("DIALOG"), table.Number(1)},
		{table.String("bob"), table.String("BATCH"), table.Number(2)},
		{table.String("alice"), table.String("BATCH"), table.Number(3)},
		{table.Null(), table.String("RFC"), table.Number(4)},
	})
}

func texts(t *table.Table, col string) []string {
	var out []string
	for r := range t.Rows {
		out = append(out, t.Get(r, col).Text())
	}
	return out
}

func TestApply_EmptyIsNoOp(t *testing.T) {
	in := accounts()
	got := Apply(in, Account, nil)
	if diff := cmp.Diff(texts(in, "RESPTI"), texts(got, "RESPTI")); diff != "" {
		t.Errorf("empty filter changed rows (-want +got):\n%s", diff)
	}
	got.Rows[0][0] = table.String("changed")
	if in.Get(0, "ACCOUNT").Str() != "alice" {
		t.Error("Apply returned a table sharing rows with its input")
	}
}

func TestApply_Membership(t *testing.T) {
	got := Apply(accounts(), Account, []string{"alice"})
	if diff := cmp.Diff([]string{"1", "3"}, texts(got, "RESPTI")); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestApply_Idempotent(t *testing.T) {
	once := Apply(accounts(), TaskType, []string{"BATCH", "RFC"})
	twice := Apply(once, TaskType, []string{"BATCH", "RFC"})
	if diff := cmp.Diff(texts(once, "RESPTI"), texts(twice, "RESPTI")); diff != "" {
		t.Errorf("second application changed rows (-want +got):\n%s", diff)
	}
}

func TestApply_MissingColumnPassesThrough(t *testing.T) {
	got := Apply(accounts(), WorkProcessType, []string{"DIA"})
	if got.Len() != 4 {
		t.Errorf("rows = %d, want 4", got.Len())
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := accounts()
	Apply(in, Account, []string{"bob"})
	if in.Len() != 4 {
		t.Errorf("input rows = %d, want 4", in.Len())
	}
}

func TestApplyAll(t *testing.T) {
	wp := table.New([]string{"WP_TYP"}, []table.Row{{table.String("DIA")}, {table.String("BTC")}})
	tables := map[string]*table.Table{"usertcode": accounts(), "performance": wp}

	got := ApplyAll(tables, Selection{Account: {"bob"}, WorkProcessType: {"BTC"}})
	if got["usertcode"].Len() != 1 {
		t.Errorf("usertcode rows = %d, want 1", got["usertcode"].Len())
	}
	if diff := cmp.Diff([]string{"BTC"}, texts(got["performance"], "WP_TYP")); diff != "" {
		t.Errorf("performance rows (-want +got):\n%s", diff)
	}
	if tables["performance"].Len() != 2 {
		t.Error("ApplyAll modified its input")
	}
}

func TestChoices(t *testing.T) {
	other := table.New([]string{"ACCOUNT"}, []table.Row{{table.String("carol")}, {table.String("alice")}})
	tables := map[string]*table.Table{"a": accounts(), "b": other, "c": table.Empty()}
	if diff := cmp.Diff([]string{"alice", "bob", "carol"}, Choices(tables, Account)); diff != "" {
		t.Errorf("Choices (-want +got):\n%s", diff)
	}
	if got := Choices(tables, Report); len(got) != 0 {
		t.Errorf("Choices(Report) = %v, want none", got)
	}
}

func TestParseDimension(t *testing.T) {
	for in, want := range map[string]Dimension{
		"account":           Account,
		"WP_TYP":            WorkProcessType,
		"task type":         TaskType,
		"Work process type": WorkProcessType,
	} {
		got, err := ParseDimension(in)
		if err != nil || got != want {
			t.Errorf("ParseDimension(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDimension("mandt"); err == nil {
		t.Error("expected error for unknown dimension")
	}
}

func TestSelectionIsEmpty(t *testing.T) {
	if !(Selection{Account: nil}).IsEmpty() {
		t.Error("selection with only empty lists should be empty")
	}
	if (Selection{Report: {"X"}}).IsEmpty() {
		t.Error("selection with a value should not be empty")
	}
}
