package analysis

import (
	"nathanbeddoewebdev/sapmon/internal/sources"
	"nathanbeddoewebdev/sapmon/internal/table"
)

// Tables is anything that hands out cleaned tables per source.
// *pipeline.Dataset satisfies it.
type Tables interface {
	Table(src sources.Source) *table.Table
}

// KPI is one headline figure.
type KPI struct {
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Unit      string  `json:"unit,omitempty"`
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

const bytesPerMB = 1024 * 1024

// KPIs computes the headline figures. A KPI whose source table or column
// is missing reports Available=false and a zero value.
func KPIs(ds Tables) []KPI {
	hit := ds.Table(sources.HitlistDB)
	mem := ds.Table(sources.Memory)
	sql := ds.Table(sources.SQLTraceSummary)

	resp, respOK := Mean(hit, "RESPTI")
	used, usedOK := Mean(mem, "USEDBYTES")
	cpu, cpuOK := Mean(hit, "CPUTI")

	return []KPI{
		{Name: "response_time", Label: "Mean response time", Unit: "s", Value: resp / 1000, Available: respOK},
		{Name: "memory", Label: "Mean memory use", Unit: "MB", Value: used / bytesPerMB, Available: usedOK},
		{Name: "db_calls", Label: "Total DB calls", Value: Sum(hit, "DBCALLS"), Available: hit.Has("DBCALLS") && !hit.IsEmpty()},
		{Name: "sql_executions", Label: "Total SQL executions", Value: Sum(sql, "TOTALEXEC"), Available: sql.Has("TOTALEXEC") && !sql.IsEmpty()},
		{Name: "cpu_time", Label: "Mean CPU time", Unit: "s", Value: cpu / 1000, Available: cpuOK},
	}
}
