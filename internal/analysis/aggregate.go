// Package analysis turns cleaned tables into KPIs and chart series.
//
// Every helper tolerates absent columns and empty tables: the result is an
// empty series, never an error.
package analysis

import (
	"math"
	"sort"
	"time"

	"nathanbeddoewebdev/sapmon/internal/table"
)

// Point is one labelled value in a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Agg selects how GroupBy folds the metric values of a group.
type Agg string

const (
	AggSum   Agg = "sum"
	AggMean  Agg = "mean"
	AggCount Agg = "count"
)

// GroupBy folds metric per distinct non-null value of key. Points come back
// ordered by label. With AggCount the metric column is ignored and may be
// empty.
func GroupBy(t *table.Table, key, metric string, agg Agg) []Point {
	ki, ok := t.Index(key)
	if !ok {
		return nil
	}
	mi, hasMetric := t.Index(metric)
	if agg != AggCount && !hasMetric {
		return nil
	}

	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[string]*acc)
	for _, row := range t.Rows {
		if row[ki].IsNull() {
			continue
		}
		label := row[ki].Text()
		g, ok := groups[label]
		if !ok {
			g = &acc{}
			groups[label] = g
		}
		g.n++
		if hasMetric {
			g.sum += row[mi].Float()
		}
	}

	out := make([]Point, 0, len(groups))
	for label, g := range groups {
		var v float64
		switch agg {
		case AggSum:
			v = g.sum
		case AggMean:
			v = g.sum / float64(g.n)
		case AggCount:
			v = float64(g.n)
		}
		out = append(out, Point{Label: label, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// TopN returns the n largest points, largest first. Ties keep label order.
// n <= 0 returns every point sorted.
func TopN(points []Point, n int) []Point {
	out := append([]Point(nil), points...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ValueCounts counts the rows per distinct non-null value of col, most
// frequent first.
func ValueCounts(t *table.Table, col string) []Point {
	return TopN(GroupBy(t, col, "", AggCount), 0)
}

// HourlyMean averages metric over one-hour buckets of the timestamp column
// ts. Hours without rows are omitted and points are in time order.
func HourlyMean(t *table.Table, ts, metric string) []Point {
	ti, ok := t.Index(ts)
	if !ok {
		return nil
	}
	mi, ok := t.Index(metric)
	if !ok {
		return nil
	}

	type acc struct {
		sum float64
		n   int
	}
	hours := make(map[time.Time]*acc)
	for _, row := range t.Rows {
		if row[ti].Kind() != table.KindTime {
			continue
		}
		h := row[ti].TimeVal().Truncate(time.Hour)
		a, ok := hours[h]
		if !ok {
			a = &acc{}
			hours[h] = a
		}
		a.sum += row[mi].Float()
		a.n++
	}

	keys := make([]time.Time, 0, len(hours))
	for h := range hours {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]Point, len(keys))
	for i, h := range keys {
		a := hours[h]
		out[i] = Point{Label: h.Format("2006-01-02 15:00"), Value: a.sum / float64(a.n)}
	}
	return out
}

// Sum adds up col. Absent columns sum to zero.
func Sum(t *table.Table, col string) float64 {
	var s float64
	for _, v := range t.Column(col) {
		s += v.Float()
	}
	return s
}

// Mean averages col over every row. ok is false when the column is absent
// or the table is empty.
func Mean(t *table.Table, col string) (mean float64, ok bool) {
	vals := t.Column(col)
	if len(vals) == 0 {
		return 0, false
	}
	return Sum(t, col) / float64(len(vals)), true
}

// Percentile returns the p-th quantile (0..1) of vals with linear
// interpolation between closest ranks. Empty input yields 0.
func Percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	p = math.Max(0, math.Min(1, p))

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Floats returns col as float64 values; absent columns yield nil.
func Floats(t *table.Table, col string) []float64 {
	vals := t.Column(col)
	if vals == nil {
		return nil
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v.Float()
	}
	return out
}

// Scale divides every value by d.
func Scale(points []Point, d float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Label: p.Label, Value: p.Value / d}
	}
	return out
}
