package analysis

import (
	"fmt"
	"math"

	"nathanbeddoewebdev/sapmon/internal/sources"
	"nathanbeddoewebdev/sapmon/internal/table"
)

// TimeBuckets is the display order of the time-of-day buckets in the times
// export.
var TimeBuckets = []string{
	"00--06", "06--07", "07--08", "08--09", "09--10", "10--11", "11--12", "12--13",
	"13--14", "14--15", "15--16", "16--17", "17--18", "18--19", "19--20", "20--21",
	"21--22", "22--23", "23--00",
}

// TransactionCounters are the per-type transaction count columns.
var TransactionCounters = []string{"COUNT", "DCOUNT", "UCOUNT", "BCOUNT", "ECOUNT", "SCOUNT"}

const (
	sqlLabelWidth   = 70
	histogramBins   = 10
	otherTaskTypes  = "Other task types"
	otherShareLimit = 0.01
)

// Sections builds one section per source, in display order.
func Sections(ds Tables) []Section {
	return []Section{
		MemorySection(ds.Table(sources.Memory)),
		UserTcodeSection(ds.Table(sources.UserTcode)),
		TimesSection(ds.Table(sources.Times)),
		TaskTimesSection(ds.Table(sources.TaskTimes)),
		HitlistSection(ds.Table(sources.HitlistDB)),
		PerformanceSection(ds.Table(sources.Performance)),
		SQLSection(ds.Table(sources.SQLTraceSummary)),
		Usr02Section(ds.Table(sources.Usr02)),
	}
}

// SectionFor builds the section for a single source.
func SectionFor(ds Tables, src sources.Source) Section {
	t := ds.Table(src)
	switch src {
	case sources.Memory:
		return MemorySection(t)
	case sources.UserTcode:
		return UserTcodeSection(t)
	case sources.Times:
		return TimesSection(t)
	case sources.TaskTimes:
		return TaskTimesSection(t)
	case sources.HitlistDB:
		return HitlistSection(t)
	case sources.Performance:
		return PerformanceSection(t)
	case sources.SQLTraceSummary:
		return SQLSection(t)
	default:
		return Usr02Section(t)
	}
}

// MemorySection charts memory use per account, per task type and per hour.
func MemorySection(t *table.Table) Section {
	known := t.Where(func(r int) bool {
		return t.Get(r, "ACCOUNT").Text() != sources.DefaultAccount
	})
	topAccounts := TopN(GroupBy(t, "ACCOUNT", "USEDBYTES", AggSum), 10)

	return Section{
		Source: sources.Memory,
		Title:  "Memory analysis",
		Charts: []Chart{
			chart(t, "Top 10 accounts by memory used", ChartBar, "MB", []string{"ACCOUNT", "USEDBYTES"}, func() []Point {
				return Scale(topAccounts, bytesPerMB)
			}),
			chart(t, "Peak memory of the top 10 accounts", ChartBar, "MB", []string{"ACCOUNT", "USEDBYTES", "MAXBYTES"}, func() []Point {
				return Scale(restrict(GroupBy(t, "ACCOUNT", "MAXBYTES", AggSum), labels(topAccounts)), bytesPerMB)
			}),
			chart(known, "Mean memory per account (6 most active)", ChartBar, "MB", []string{"ACCOUNT", "USEDBYTES"}, func() []Point {
				active := TopN(ValueCounts(known, "ACCOUNT"), 6)
				means := restrict(GroupBy(known, "ACCOUNT", "USEDBYTES", AggMean), labels(active))
				return TopN(Scale(means, bytesPerMB), 0)
			}),
			chart(t, "Hourly mean memory use", ChartLine, "MB", []string{sources.ColFullDatetime, "USEDBYTES"}, func() []Point {
				return Scale(HourlyMean(t, sources.ColFullDatetime, "USEDBYTES"), bytesPerMB)
			}),
			chart(t, "Top 3 task types by memory used", ChartPie, "MB", []string{"TASKTYPE", "USEDBYTES"}, func() []Point {
				return Scale(TopN(GroupBy(t, "TASKTYPE", "USEDBYTES", AggSum), 3), bytesPerMB)
			}),
		},
	}
}

// UserTcodeSection charts response times and slow transactions of the
// user transaction profile.
func UserTcodeSection(t *table.Table) Section {
	return Section{
		Source: sources.UserTcode,
		Title:  "User transactions",
		Charts: []Chart{
			chart(t, "Top 6 task types by mean response time", ChartBar, "s", []string{"TASKTYPE", "RESPTI"}, func() []Point {
				return Scale(TopN(GroupBy(t, "TASKTYPE", "RESPTI", AggMean), 6), 1000)
			}),
			chart(t, "Transactions by type", ChartBar, "", nil, func() []Point {
				var out []Point
				for _, col := range TransactionCounters {
					if t.Has(col) {
						out = append(out, Point{Label: col, Value: Sum(t, col)})
					}
				}
				return TopN(out, 0)
			}),
			chart(t, "Accounts with the most slow transactions (p90)", ChartBar, "", []string{"ACCOUNT", "RESPTI"}, func() []Point {
				return TopN(ValueCounts(slowRows(t), "ACCOUNT"), 10)
			}),
			chart(t, "Entries with the most slow transactions (p90)", ChartBar, "", []string{"ENTRY_ID", "RESPTI"}, func() []Point {
				return TopN(ValueCounts(slowRows(t), "ENTRY_ID"), 10)
			}),
			chart(t, "Hourly mean response time", ChartLine, "s", []string{sources.ColFullDatetime, "RESPTI"}, func() []Point {
				return Scale(HourlyMean(t, sources.ColFullDatetime, "RESPTI"), 1000)
			}),
			chart(t, "Physical reads by task type", ChartBar, "", []string{"TASKTYPE", "PHYREADCNT"}, func() []Point {
				return TopN(GroupBy(t, "TASKTYPE", "PHYREADCNT", AggSum), 10)
			}),
			chart(t, "DB SQL calls by task type", ChartBar, "", []string{"TASKTYPE", "DSQLCNT"}, func() []Point {
				return TopN(GroupBy(t, "TASKTYPE", "DSQLCNT", AggSum), 4)
			}),
		},
	}
}

// SlowThreshold is the 90th percentile of RESPTI in t.
func SlowThreshold(t *table.Table) float64 {
	return Percentile(Floats(t, "RESPTI"), 0.9)
}

func slowRows(t *table.Table) *table.Table {
	limit := SlowThreshold(t)
	return t.Where(func(r int) bool { return t.Get(r, "RESPTI").Float() > limit })
}

// TimesSection charts load per time bucket.
func TimesSection(t *table.Table) Section {
	charts := []Chart{
		chart(t, "Physical calls per time bucket", ChartLine, "", []string{"TIME", "PHYCALLS"}, func() []Point {
			return reindex(GroupBy(t, "TIME", "PHYCALLS", AggSum), TimeBuckets)
		}),
		chart(t, "Top 5 time buckets by I/O operations", ChartBar, "", []string{"TIME", "READDIRCNT", "READSEQCNT", "CHNGCNT"}, func() []Point {
			io := t.Clone()
			total := make([]table.Value, io.Len())
			for r := range total {
				total[r] = table.Number(io.Get(r, "READDIRCNT").Float() + io.Get(r, "READSEQCNT").Float() + io.Get(r, "CHNGCNT").Float())
			}
			io.SetColumn("TOTAL_IO", total)
			return TopN(GroupBy(io, "TIME", "TOTAL_IO", AggSum), 5)
		}),
	}
	for _, m := range []struct{ col, title string }{
		{"RESPTI", "Mean response time per time bucket"},
		{"CPUTI", "Mean CPU time per time bucket"},
		{"PROCTI", "Mean processing time per time bucket"},
	} {
		charts = append(charts, chart(t, m.title, ChartLine, "s", []string{"TIME", m.col}, func() []Point {
			return Scale(reindex(GroupBy(t, "TIME", m.col, AggMean), TimeBuckets), 1000)
		}))
	}
	return Section{Source: sources.Times, Title: "Time buckets", Charts: charts}
}

// TaskTimesSection breaks the workload down by task type.
func TaskTimesSection(t *table.Table) Section {
	slowest := TopN(GroupBy(t, "TASKTYPE", "RESPTI", AggMean), 10)
	return Section{
		Source: sources.TaskTimes,
		Title:  "Task breakdown",
		Charts: []Chart{
			chart(t, "Task type share", ChartPie, "", []string{"TASKTYPE", "COUNT"}, func() []Point {
				return foldSmall(TopN(GroupBy(t, "TASKTYPE", "COUNT", AggSum), 0), otherShareLimit, otherTaskTypes)
			}),
			chart(t, "Top 10 task types by mean response time", ChartBar, "s", []string{"TASKTYPE", "RESPTI"}, func() []Point {
				return Scale(slowest, 1000)
			}),
			chart(t, "Mean CPU time of the slowest task types", ChartBar, "s", []string{"TASKTYPE", "RESPTI", "CPUTI"}, func() []Point {
				return Scale(restrict(GroupBy(t, "TASKTYPE", "CPUTI", AggMean), labels(slowest)), 1000)
			}),
			chart(t, "Queue time by task type", ChartBar, "ms", []string{"TASKTYPE", "QUEUETI"}, func() []Point {
				return TopN(GroupBy(t, "TASKTYPE", "QUEUETI", AggSum), 10)
			}),
			chart(t, "Physical reads by task type", ChartBar, "", []string{"TASKTYPE", "PHYREADCNT"}, func() []Point {
				return TopN(GroupBy(t, "TASKTYPE", "PHYREADCNT", AggSum), 10)
			}),
		},
	}
}

// HitlistSection charts the hourly response and CPU times of the DB hitlist
// and the reports making the most DB calls.
func HitlistSection(t *table.Table) Section {
	return Section{
		Source: sources.HitlistDB,
		Title:  "Hitlist insights",
		Charts: []Chart{
			chart(t, "Hourly mean response time", ChartLine, "s", []string{sources.ColFullDatetime, "RESPTI"}, func() []Point {
				return Scale(HourlyMean(t, sources.ColFullDatetime, "RESPTI"), 1000)
			}),
			chart(t, "Hourly mean CPU time", ChartLine, "s", []string{sources.ColFullDatetime, "CPUTI"}, func() []Point {
				return Scale(HourlyMean(t, sources.ColFullDatetime, "CPUTI"), 1000)
			}),
			chart(t, "Top 10 reports by DB calls", ChartBar, "", []string{"REPORT", "DBCALLS"}, func() []Point {
				return TopN(GroupBy(t, "REPORT", "DBCALLS", AggSum), 10)
			}),
			chart(t, "Mean processing time of the 5 busiest task types", ChartBar, "s", []string{"TASKTYPE", "PROCTI"}, func() []Point {
				busiest := TopN(ValueCounts(t, "TASKTYPE"), 5)
				means := restrict(GroupBy(t, "TASKTYPE", "PROCTI", AggMean), labels(busiest))
				return TopN(Scale(means, 1000), 0)
			}),
		},
	}
}

// PerformanceSection charts work process CPU time, status, type and restarts.
func PerformanceSection(t *table.Table) Section {
	return Section{
		Source: sources.Performance,
		Title:  "Work process performance",
		Charts: []Chart{
			chart(t, "Work process CPU time distribution", ChartHistogram, "s", []string{sources.ColWPCPUSeconds}, func() []Point {
				return Histogram(Floats(t, sources.ColWPCPUSeconds), histogramBins)
			}),
			chart(t, "Work processes by status", ChartPie, "", []string{"WP_STATUS"}, func() []Point {
				return ValueCounts(t, "WP_STATUS")
			}),
			chart(t, "Work processes by type", ChartBar, "", []string{"WP_TYP"}, func() []Point {
				return ValueCounts(t, "WP_TYP")
			}),
			chart(t, "Mean CPU time by work process type", ChartBar, "s", []string{"WP_TYP", sources.ColWPCPUSeconds}, func() []Point {
				return GroupBy(t, "WP_TYP", sources.ColWPCPUSeconds, AggMean)
			}),
			chart(t, "Restarts by work process type", ChartBar, "", []string{"WP_TYP", "WP_IRESTRT"}, func() []Point {
				return TopN(GroupBy(t, "WP_TYP", "WP_IRESTRT", AggSum), 10)
			}),
		},
	}
}

// SQLSection ranks the traced statements by time, executions and records.
func SQLSection(t *table.Table) Section {
	top := func(metric string, agg Agg) func() []Point {
		return func() []Point {
			points := TopN(GroupBy(t, "SQLSTATEM", metric, agg), 10)
			for i := range points {
				points[i].Label = shorten(points[i].Label, sqlLabelWidth)
			}
			return points
		}
	}
	return Section{
		Source: sources.SQLTraceSummary,
		Title:  "SQL trace summary",
		Charts: []Chart{
			chart(t, "Top 10 statements by total execution time", ChartBar, "ms", []string{"SQLSTATEM", "EXECTIME"}, top("EXECTIME", AggSum)),
			chart(t, "Top 10 statements by executions", ChartBar, "", []string{"SQLSTATEM", "TOTALEXEC"}, top("TOTALEXEC", AggSum)),
			chart(t, "Top 10 statements by time per execution", ChartBar, "ms", []string{"SQLSTATEM", "TIMEPEREXE"}, top("TIMEPEREXE", AggMean)),
			chart(t, "Top 10 statements by records processed", ChartBar, "", []string{"SQLSTATEM", "RECPROCNUM"}, top("RECPROCNUM", AggSum)),
		},
	}
}

// Usr02Section summarizes user types and account validity.
func Usr02Section(t *table.Table) Section {
	return Section{
		Source: sources.Usr02,
		Title:  "User accounts",
		Charts: []Chart{
			chart(t, "Users by type", ChartBar, "", []string{"USTYP"}, func() []Point {
				return ValueCounts(t, "USTYP")
			}),
			// GroupBy orders by label, and date labels sort chronologically.
			chart(t, "Users per validity end date", ChartLine, "", []string{sources.ColGLTGBDate}, func() []Point {
				return GroupBy(t, sources.ColGLTGBDate, "", AggCount)
			}),
		},
	}
}

// Histogram spreads vals over bins equal-width buckets. A constant series
// yields a single bucket.
func Histogram(vals []float64, bins int) []Point {
	if len(vals) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []Point{{Label: formatBound(lo), Value: float64(len(vals))}}
	}

	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	out := make([]Point, bins)
	for i, c := range counts {
		from := lo + float64(i)*width
		out[i] = Point{Label: fmt.Sprintf("%s-%s", formatBound(from), formatBound(from+width)), Value: c}
	}
	return out
}

func formatBound(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// foldSmall merges points below share of the total into one labelled
// bucket appended at the end.
func foldSmall(points []Point, share float64, label string) []Point {
	var total float64
	for _, p := range points {
		total += p.Value
	}
	limit := total * share
	out := make([]Point, 0, len(points))
	var other float64
	for _, p := range points {
		if p.Value < limit {
			other += p.Value
			continue
		}
		out = append(out, p)
	}
	if other > 0 {
		out = append(out, Point{Label: label, Value: other})
	}
	return out
}

// reindex lays points out in order, filling absent labels with zero.
// Labels outside order are dropped.
func reindex(points []Point, order []string) []Point {
	byLabel := make(map[string]float64, len(points))
	for _, p := range points {
		byLabel[p.Label] = p.Value
	}
	out := make([]Point, len(order))
	for i, l := range order {
		out[i] = Point{Label: l, Value: byLabel[l]}
	}
	return out
}

// restrict keeps the points whose label is in keep, in keep's order.
func restrict(points []Point, keep []string) []Point {
	byLabel := make(map[string]Point, len(points))
	for _, p := range points {
		byLabel[p.Label] = p
	}
	out := make([]Point, 0, len(keep))
	for _, l := range keep {
		if p, ok := byLabel[l]; ok {
			out = append(out, p)
		}
	}
	return out
}

func labels(points []Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}

// Chart returns the chart with the given title.
func (s Section) Chart(title string) (Chart, bool) {
	for _, c := range s.Charts {
		if c.Title == title {
			return c, true
		}
	}
	return Chart{}, false
}
