package main

import (
	"github.com/joho/godotenv"
	"github.com/p7r0x7/hortex/internal/console"
	. "github.com/spf13/pflag"
	"os"
	"strconv"
)

var pMode, pVariant, pSeed, pLedger, pNoCodesDefault = "", "", "", "", false
var pJobs, pLo, pHi, pLimit = 0, uint64(0), uint64(0), uint64(0)
var pHelp, pNoCodes, pQuiet, pResume, pStrict bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

// env returns the named variable, or def when it is unset. Variables may come from a .env file in
// the working directory; real environment variables take precedence over it.
func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func init() {
	_ = godotenv.Load(".env")

	pNoCodes, pQuiet = console.Scan(os.Args[1:], pNoCodesDefault)
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}
	jobs, err := strconv.Atoi(env("HORTEX_JOBS", "1"))
	if err != nil {
		jobs = 1
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	Uint64Var(&pHi, "hi", 1<<32,
		purp+"end of the input range for scans, exclusive"+zero)

	IntVarP(&pJobs, "jobs", "j", jobs,
		purp+"run this many variants at once; each full scan holds"+zero+
			n+purp+"512 MiB"+zero+" ($HORTEX_JOBS; 0 uses every CPU)")

	StringVar(&pLedger, "ledger", env("HORTEX_LEDGER", ""),
		purp+"record findings in the LevelDB directory at this path"+zero+
			n+"($HORTEX_LEDGER)")

	Uint64Var(&pLimit, "limit", 1<<24,
		purp+"give up a search after this many draws"+zero+" (0 never does)")

	Uint64Var(&pLo, "lo", 0,
		purp+"start of the input range for scans"+zero)

	StringVarP(&pMode, "mode", "m", "bijective",
		purp+"one of bijective, count, search, diagnose, or ledger"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes"+zero)

	Bool("quiet", false,
		purp+"print ONLY the report table"+zero+" (enables --no-codes)")

	BoolVar(&pResume, "resume", false,
		purp+"skip variants whose results the ledger already holds"+zero)

	StringVar(&pSeed, "seed", env("HORTEX_SEED", "hortex"),
		purp+"seed string for search and diagnose"+zero+" ($HORTEX_SEED)")

	BoolVar(&pStrict, "strict", false,
		purp+"cause elmscan to panic on any error"+zero)

	StringVarP(&pVariant, "variant", "v", "mixers",
		purp+"comma-separated variants by ID or name, \"mixers\" for"+zero+
			n+purp+"the 16 distinct word mixers, or \"all\""+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
	Parse()
}
