package sources

// Column groups shared by several sources. Schemas reference these instead
// of repeating the names, so related sources cannot drift apart.
var (
	responseTimes = []string{"RESPTI", "PROCTI", "CPUTI", "QUEUETI", "ROLLWAITTI"}

	guiColumns = []string{"GUITIME", "GUICNT", "GUINETTIME"}

	dbProcedure = []string{"DBP_COUNT", "DBP_TIME"}

	readIO = []string{
		"READDIRCNT", "READDIRTI", "READDIRBUF", "READDIRREC",
		"READSEQCNT", "READSEQTI", "READSEQBUF", "READSEQREC",
	}

	changeIO = []string{"CHNGCNT", "CHNGTI", "CHNGREC", "PHYREADCNT", "PHYCHNGREC", "PHYCALLS"}

	vmcColumns = []string{"VMC_CALL_COUNT", "VMC_CPU_TIME", "VMC_ELAP_TIME"}

	communication = []string{"DSQLCNT", "QUECNT", "CPICCNT", "SLI_CNT"}

	memoryBytes = []string{"PRIVSUM", "USEDBYTES", "MAXBYTES", "MAXBYTESDI"}

	transactionCounts = []string{"COUNT", "DCOUNT", "UCOUNT", "BCOUNT", "ECOUNT", "SCOUNT"}

	tableCounters = []string{
		"TAB1DIRCNT", "TAB1SEQCNT", "TAB1UPDCNT",
		"TAB2DIRCNT", "TAB2SEQCNT", "TAB2UPDCNT",
		"TAB3DIRCNT", "TAB3SEQCNT", "TAB3UPDCNT",
		"TAB4DIRCNT", "TAB4SEQCNT", "TAB4UPDCNT",
		"TAB5DIRCNT", "TAB5SEQCNT", "TAB5UPDCNT",
	}

	physicalChanges = []string{
		"PHYREADCNT",
		"INSCNT", "INSTI", "INSREC", "PHYINSCNT",
		"UPDCNT", "UPDTI", "UPDREC", "PHYUPDCNT",
		"DELCNT", "DELTI", "DELREC", "PHYDELCNT",
	}

	rollArea = []string{
		"MAXROLL", "MAXPAGE", "ROLLINCNT", "ROLLINTI", "ROLLOUTCNT", "ROLLOUTTI", "ROLLED_OUT",
	}

	rfcColumns = []string{"RFCRECEIVE", "RFCSEND", "RFCEXETIME", "RFCCALLTIM", "RFCCALLS"}

	loadTimes = []string{
		"GENERATETI", "REPLOADTI", "CUALOADTI", "DYNPLOADTI", "QUETI", "DDICTI", "CPICTI",
		"LOCKCNT", "LOCKTI", "BTCSTEPNR",
	}

	taskCounters = []string{
		"CNT001", "CNT002", "CNT003", "CNT004", "CNT005", "CNT006", "CNT007", "CNT008", "CNT009",
	}
)

// columns concatenates groups and literal names into a fresh slice, keeping
// the first occurrence of any repeated name.
func columns(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range groups {
		for _, c := range g {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func list(names ...string) []string { return names }
