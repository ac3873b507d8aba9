package sources

import (
	"fmt"

	"nathanbeddoewebdev/sapmon/internal/clean"
	"nathanbeddoewebdev/sapmon/internal/table"
)

// Canonical names of the columns produced by cleaning.
const (
	ColFullDatetime   = "FULL_DATETIME"
	ColWPCPUSeconds   = "WP_CPU_SECONDS"
	ColWPIWaitSeconds = "WP_IWAIT_SECONDS"
	ColGLTGBDate      = "GLTGB_DATE"
)

// Default labels for text cells that are empty after sanitizing.
const (
	DefaultLabel           = "Undefined"
	DefaultAccount         = "Unknown account"
	DefaultClient          = "Unknown client"
	DefaultTaskType        = "Unknown task type"
	DefaultUnspecifiedTask = "Unspecified task type"
)

// NoExpirySentinel marks a user account validity date that was never set.
const NoExpirySentinel = "00000000"

// TextColumn is a free-text column and the label used when it is empty.
type TextColumn struct {
	Name    string
	Default string
}

// TimestampPair names the raw date and time columns merged into one
// timestamp column.
type TimestampPair struct {
	Date   string
	Time   string
	Target string
}

// Derivation computes a new column from an existing one, after the
// declared numeric and text columns have been cleaned.
type Derivation struct {
	Target string
	From   string
	// Convert maps one cell of From to one cell of Target.
	Convert func(table.Value) table.Value
	// WhenAbsent fills Target when From does not exist. Nil leaves Target
	// out of the table.
	WhenAbsent func() table.Value
}

// Schema is the static rule set for one source. Schemas are built once and
// must not be modified.
type Schema struct {
	Source    Source
	Numeric   []string
	Text      []TextColumn
	Timestamp *TimestampPair
	Derived   []Derivation
	// Mandatory columns may not hold a missing raw value in a kept row.
	// They are checked before cleaning, since the cleaners would turn a
	// missing number into 0.
	Mandatory []string
	// MandatoryCleaned columns are checked after cleaning and derivation,
	// so a blank text cell keeps its row with the column's default label.
	MandatoryCleaned []string
	// RequireTimestamp drops rows whose composite timestamp did not parse.
	RequireTimestamp bool
}

// TextDefault returns the default label for a declared text column.
func (s Schema) TextDefault(col string) (string, bool) {
	for _, tc := range s.Text {
		if tc.Name == col {
			return tc.Default, true
		}
	}
	return "", false
}

func undefined(names ...string) []TextColumn {
	out := make([]TextColumn, len(names))
	for i, n := range names {
		out[i] = TextColumn{Name: n, Default: DefaultLabel}
	}
	return out
}

var endTimestamp = &TimestampPair{Date: "ENDDATE", Time: "ENDTIME", Target: ColFullDatetime}

var schemas = map[Source]Schema{
	Memory: {
		Source:  Memory,
		Numeric: list("MEMSUM", "PRIVSUM", "USEDBYTES", "MAXBYTES", "MAXBYTESDI", "PRIVCOUNT", "RESTCOUNT", "COUNTER"),
		Text: []TextColumn{
			{Name: "ACCOUNT", Default: DefaultAccount},
			{Name: "MANDT", Default: DefaultClient},
			{Name: "TASKTYPE", Default: DefaultTaskType},
		},
		Timestamp:        endTimestamp,
		Mandatory:        list("USEDBYTES"),
		MandatoryCleaned: list("ACCOUNT"),
		RequireTimestamp: true,
	},
	HitlistDB: {
		Source: HitlistDB,
		Numeric: columns(
			loadTimes, responseTimes, guiColumns, dbProcedure, communication,
			tableCounters, readIO, physicalChanges,
			list("DBCALLS", "COMMITTI", "INPUTLEN", "OUTPUTLEN"),
			rollArea, memoryBytes, rfcColumns, vmcColumns,
		),
		Text:             undefined("WPID", "ACCOUNT", "REPORT", "ROLLKEY", "PRIVMODE", "WPRESTART", "TASKTYPE"),
		Timestamp:        endTimestamp,
		Mandatory:        list("RESPTI", "PROCTI", "CPUTI", "DBCALLS"),
		RequireTimestamp: true,
	},
	Times: {
		Source:    Times,
		Numeric:   columns(list("COUNT", "LUW_COUNT"), responseTimes, guiColumns, dbProcedure, readIO, changeIO, vmcColumns),
		Text:      undefined("TIME", "TASKTYPE", "ENTRY_ID"),
		Mandatory: list("RESPTI", "PHYCALLS", "COUNT"),
	},
	TaskTimes: {
		Source:  TaskTimes,
		Numeric: columns(list("COUNT"), responseTimes, guiColumns, dbProcedure, readIO, changeIO, taskCounters),
		Text: []TextColumn{
			{Name: "TASKTYPE", Default: DefaultUnspecifiedTask},
			{Name: "TIME", Default: DefaultLabel},
		},
		Mandatory: list("COUNT", "RESPTI", "CPUTI"),
	},
	UserTcode: {
		Source: UserTcode,
		Numeric: columns(
			transactionCounts, list("LUW_COUNT", "TMBYTESIN", "TMBYTESOUT"),
			responseTimes, guiColumns, dbProcedure, readIO, changeIO, communication, vmcColumns,
		),
		Text:             undefined("TASKTYPE", "ENTRY_ID", "ACCOUNT"),
		Timestamp:        endTimestamp,
		Mandatory:        list("RESPTI", "ACCOUNT", "COUNT"),
		RequireTimestamp: true,
	},
	Performance: {
		Source:  Performance,
		Numeric: list("WP_NO", "WP_IRESTRT", "WP_PID", "WP_INDEX", "WP_IWAIT"),
		Text:    undefined("WP_SEMSTAT", "WP_IACTION", "WP_ITYPE", "WP_RESTART", "WP_ISTATUS", "WP_TYP", "WP_STATUS"),
		Derived: []Derivation{
			{
				Target: ColWPCPUSeconds,
				From:   "WP_CPU",
				Convert: func(v table.Value) table.Value {
					return table.Int(int64(clean.Duration(v)))
				},
			},
			{
				Target: ColWPIWaitSeconds,
				From:   "WP_IWAIT",
				Convert: func(v table.Value) table.Value {
					return table.Number(v.Float() / 1000)
				},
				WhenAbsent: func() table.Value { return table.Number(0) },
			},
		},
		MandatoryCleaned: list(ColWPCPUSeconds, "WP_STATUS"),
	},
	SQLTraceSummary: {
		Source:    SQLTraceSummary,
		Numeric:   list("TOTALEXEC", "IDENTSEL", "EXECTIME", "RECPROCNUM", "TIMEPEREXE", "RECPEREXE", "AVGTPERREC", "MINTPERREC"),
		Text:      undefined("SQLSTATEM", "SERVERNAME", "TRANS_ID"),
		Mandatory:        list("EXECTIME", "TOTALEXEC"),
		MandatoryCleaned: list("SQLSTATEM"),
	},
	Usr02: {
		Source: Usr02,
		Text:   undefined("BNAME", "USTYP"),
		Derived: []Derivation{
			{
				Target: ColGLTGBDate,
				From:   "GLTGB",
				Convert: func(v table.Value) table.Value {
					if t, ok := clean.Date(v, NoExpirySentinel); ok {
						return table.Time(t)
					}
					return table.Null()
				},
				WhenAbsent: table.Null,
			},
		},
	},
}

// SchemaFor returns the rule set for src. It panics on a value outside the
// enumeration; use ParseSource to validate external input first.
func SchemaFor(src Source) Schema {
	switch src {
	case Memory, HitlistDB, Times, TaskTimes, UserTcode, Performance, SQLTraceSummary, Usr02:
		return schemas[src]
	default:
		panic(fmt.Sprintf("sources: no schema for %q", string(src)))
	}
}
