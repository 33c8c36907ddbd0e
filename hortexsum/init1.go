package main

import (
	"github.com/p7r0x7/hortex/internal/console"
	. "github.com/spf13/pflag"
	"os"
)

var pVariant, pNoCodesDefault = "", false
var pHelp, pAll, pBase64, pBits, pNoCodes, pQuiet, pStrict, pString, pTime, pDebug bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	pNoCodes, pQuiet = console.Scan(os.Args[1:], pNoCodesDefault)
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	BoolVarP(&pAll, "all", "a", false,
		purp+"print one digest per variant for each message"+zero)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	BoolVar(&pBits, "bits", false,
		purp+"process arguments instead as strings of 0s and 1s, most"+zero+
			n+purp+"significant bit first, grouped by spaces or underscores"+zero)

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	Bool("quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	BoolVar(&pStrict, "strict", false,
		purp+"cause hortexsum to panic on any error"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and hash each message"+zero)

	StringVarP(&pVariant, "variant", "v", "reference",
		purp+"choose a parameterization by ID, by name, or as"+zero+
			n+purp+"mixing/interval/placement/arx"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
	Parse()
	pStrict = pStrict || pDebug
}
