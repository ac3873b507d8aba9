package clean

import (
	"math"
	"testing"

	"nathanbeddoewebdev/sapmon/internal/table"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		in   table.Value
		want int
	}{
		{"minutes seconds", table.String("2:30"), 150},
		{"zero padded", table.String("00:05"), 5},
		{"fractional seconds", table.String("1:30.9"), 90},
		{"bare seconds", table.String("45"), 45},
		{"bare fractional", table.String("45.7"), 45},
		{"spaces", table.String(" 3 : 10 "), 190},
		{"three parts", table.String("1:2:3"), 0},
		{"garbage", table.String("abc"), 0},
		{"empty", table.String(""), 0},
		{"nan", table.String("nan"), 0},
		{"null", table.Null(), 0},
		{"non string", table.Number(45), 0},
		{"beyond int32", table.String("1e10"), 10000000000},
		{"minutes beyond int32", table.String("50000000:00"), 3000000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.in); got != tt.want {
				t.Errorf("Duration(%q) = %d, want %d", tt.in.Text(), got, tt.want)
			}
		})
	}
}

func TestDurationColumn(t *testing.T) {
	got := DurationColumn([]table.Value{table.String("1:00"), table.Null()})
	if got[0].Int64() != 60 || got[0].Kind() != table.KindInt {
		t.Errorf("row 0 = %v (%v), want int 60", got[0].Text(), got[0].Kind())
	}
	if got[1].Int64() != 0 {
		t.Errorf("row 1 = %v, want 0", got[1].Text())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{12.9, 12},
		{-12.9, -12},
		{1e30, math.MaxInt},
		{-1e30, math.MinInt},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := truncate(tt.in); got != tt.want {
			t.Errorf("truncate(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
