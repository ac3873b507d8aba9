package table

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sample() *Table {
	return New([]string{"ACCOUNT", "COUNT", "ACCOUNT"}, []Row{
		{String("alice"), Number(3), String("shadow")},
		{String("bob"), Null()},
		{String("nan"), Number(1), String("x"), String("extra")},
	})
}

func TestNew_FitsRows(t *testing.T) {
	tbl := sample()
	for i, r := range tbl.Rows {
		if len(r) != len(tbl.Columns) {
			t.Errorf("row %d has %d cells, want %d", i, len(r), len(tbl.Columns))
		}
	}
	if !tbl.Get(1, "COUNT").IsNull() {
		t.Errorf("padded cell = %v, want null", tbl.Get(1, "COUNT").Text())
	}
}

func TestGet_FirstDuplicateWins(t *testing.T) {
	tbl := sample()
	if got := tbl.Get(0, "ACCOUNT").Str(); got != "alice" {
		t.Errorf("Get(ACCOUNT) = %q, want alice", got)
	}
	if got := tbl.Get(0, "MISSING"); !got.IsNull() {
		t.Errorf("Get(MISSING) = %v, want null", got.Text())
	}
	if got := tbl.Get(99, "ACCOUNT"); !got.IsNull() {
		t.Errorf("Get out of range = %v, want null", got.Text())
	}
}

func TestSetColumn(t *testing.T) {
	tbl := sample()
	tbl.SetColumn("NEW", []Value{Int(1), Int(2), Int(3)})
	if !tbl.Has("NEW") {
		t.Fatal("NEW column missing")
	}
	if got := tbl.Get(2, "NEW").Int64(); got != 3 {
		t.Errorf("Get(2, NEW) = %d, want 3", got)
	}

	tbl.SetColumn("COUNT", []Value{Number(9)})
	if got := tbl.Get(0, "COUNT").Float(); got != 9 {
		t.Errorf("replaced COUNT = %v, want 9", got)
	}
	if !tbl.Get(1, "COUNT").IsNull() {
		t.Error("short replacement should null the remaining rows")
	}
}

func TestWhere_DoesNotMutate(t *testing.T) {
	tbl := sample()
	out := tbl.Where(func(r int) bool { return r != 1 })
	if out.Len() != 2 || tbl.Len() != 3 {
		t.Fatalf("lens = %d/%d, want 2/3", out.Len(), tbl.Len())
	}
	out.Rows[0][0] = String("changed")
	if tbl.Get(0, "ACCOUNT").Str() != "alice" {
		t.Error("Where shares row storage with its source")
	}
}

func TestDropMissing(t *testing.T) {
	tbl := sample()
	got := tbl.DropMissing("ACCOUNT", "COUNT", "ABSENT")
	if got.Len() != 1 {
		t.Fatalf("DropMissing kept %d rows, want 1", got.Len())
	}
	if got.Get(0, "ACCOUNT").Str() != "alice" {
		t.Errorf("kept row = %q, want alice", got.Get(0, "ACCOUNT").Str())
	}
}

func TestDistinct(t *testing.T) {
	tbl := New([]string{"A"}, []Row{{String("b")}, {String("a")}, {Null()}, {String("b")}})
	if diff := cmp.Diff([]string{"a", "b"}, tbl.Distinct("A")); diff != "" {
		t.Errorf("Distinct mismatch (-want +got):\n%s", diff)
	}
	if tbl.Distinct("Z") != nil {
		t.Error("Distinct of missing column should be nil")
	}
}

func TestDropColumnAndRename(t *testing.T) {
	tbl := sample()
	tbl.DropColumn("ACCOUNT")
	if diff := cmp.Diff([]string{"COUNT"}, tbl.Columns); diff != "" {
		t.Errorf("columns after drop (-want +got):\n%s", diff)
	}
	tbl.Rename([]string{"N"})
	if got := tbl.Get(0, "N").Float(); got != 3 {
		t.Errorf("renamed column = %v, want 3", got)
	}
}

func TestNilAndEmpty(t *testing.T) {
	var nilTable *Table
	if !nilTable.IsEmpty() || nilTable.Has("x") {
		t.Error("nil table should be empty with no columns")
	}
	if !Empty().IsEmpty() {
		t.Error("Empty() should be empty")
	}
}

func TestValueText(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{Null(), ""},
		{String("x"), "x"},
		{Number(20230615), "20230615"},
		{Number(1.5), "1.5"},
		{Int(-4), "-4"},
		{Time(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), "2024-01-02"},
		{Time(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), "2024-01-02 03:04:05"},
	}
	for _, tt := range tests {
		if got := tt.in.Text(); got != tt.want {
			t.Errorf("%v.Text() = %q, want %q", tt.in.Kind(), got, tt.want)
		}
	}
}

func TestValueBlank(t *testing.T) {
	blank := []Value{Null(), String(""), String("  "), String("nan"), String("NaN")}
	for _, v := range blank {
		if !v.Blank() {
			t.Errorf("%q should be blank", v.Text())
		}
	}
	filled := []Value{String("0"), Number(0), Int(0), String("nano")}
	for _, v := range filled {
		if v.Blank() {
			t.Errorf("%q should not be blank", v.Text())
		}
	}
}
