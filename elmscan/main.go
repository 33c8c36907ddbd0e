package main

import (
	"errors"
	. "fmt"
	"github.com/google/uuid"
	"github.com/p7r0x7/hortex"
	"github.com/p7r0x7/hortex/analysis"
	"github.com/p7r0x7/hortex/internal/table"
	"github.com/p7r0x7/hortex/ledger"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var warnings = 0

func main() { os.Exit(program()) }

func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "elmscan" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", len([]rune(name))+3)
	Fprint(os.Stderr, yell, "Searches the ELM word mixer of Hortex for colliding inputs.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-m bijective|count] [-v VARIANTS] [-j JOBS] [--lo X] [--hi Y]"+n,
		spaces, "[-m search|diagnose] [-v VARIANTS] [-j JOBS] [--seed S] [--limit N]"+n,
		spaces, "-m ledger --ledger DIR"+n+n+
			"Options:"+n)
	PrintDefaults()
	Fprint(os.Stderr, n+"`bijective` scans every input of each variant and stops at the first repeated"+n+
		"output; `count` finishes the scan and counts every repeat. Each full scan holds"+n+
		"512 MiB of memory. `search` draws seeded random inputs until two collide and"+n+
		"`diagnose` also reports whether the quantized iterates already matched. Flag"+n+
		"defaults may be set in a .env file in the working directory."+n)
}

// variants resolves a comma-separated list of variant names.
func variants(list string) ([]hortex.Variant, error) {
	switch list {
	case "all":
		return hortex.Variants(), nil
	case "mixers", "":
		return hortex.MixerVariants(), nil
	}
	var out []hortex.Variant
	for _, s := range strings.Split(list, ",") {
		v, err := hortex.ParseVariant(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func program() int {
	if pHelp {
		help()
		return success
	}
	log.SetFlags(log.Ltime)
	if pQuiet {
		log.SetOutput(io.Discard)
	}

	list, err := variants(pVariant)
	if err != nil {
		Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}
	if pLo > pHi || pHi > analysis.Domain {
		Fprint(os.Stderr, purp, "--lo and --hi must satisfy lo <= hi <= 2^32.", zero, n)
		return invalid
	}

	var book *ledger.Ledger
	if pLedger != "" {
		if book, err = ledger.Open(pLedger); err != nil {
			Fprint(os.Stderr, purp, err, zero, n)
			return failure
		}
		defer book.Close()
	}

	run := ledger.Run{ID: uuid.New().String(), Command: strings.Join(os.Args, " "), Started: time.Now(), Jobs: pJobs}
	var t *table.Table
	switch pMode {
	case "bijective", "failfast", "count":
		mode := analysis.FailFast
		if pMode == "count" {
			mode = analysis.Count
		}
		t = scan(book, run, list, mode)
	case "search", "diagnose":
		t = search(book, run, list, pMode == "diagnose")
	case "ledger":
		if book == nil {
			Fprint(os.Stderr, purp, "-m ledger needs --ledger.", zero, n)
			return invalid
		}
		t = history(book)
	default:
		Fprint(os.Stderr, purp, "unknown mode ", strconv.Quote(pMode), zero, n)
		return invalid
	}

	if book != nil && pMode != "ledger" {
		if err = book.PutRun(run); err != nil {
			warn(err)
		}
	}
	if !pQuiet {
		Print(yell, "Run ", run.ID, zero, "  ", pMode, ", ", len(list), " variants, ",
			time.Since(run.Started).Truncate(time.Millisecond), n+n)
	}
	head, rule := t.Header()
	Print(und, strings.TrimSuffix(head, n), zero, n, rule, t.Body())

	if warnings > 0 {
		return failure
	}
	return success
}

func scan(book *ledger.Ledger, run ledger.Run, list []hortex.Variant, mode analysis.Mode) *table.Table {
	t := table.New("ID", "Variant", "Result", "Scanned", "Collisions", "First", "Output", "Fingerprint", "Time").
		AlignRight(0, 3, 4)
	whole := pLo == 0 && pHi == analysis.Domain

	type timed struct {
		r      analysis.Report
		took   time.Duration
		stored bool
		err    error /* From the ledger lookup; the scan still ran. */
	}
	results := analysis.Sweep(list, pJobs, func(w *analysis.Worker, v hortex.Variant) timed {
		var lookup error
		if book != nil && pResume && whole {
			e, err := book.Scan(v, mode)
			if err == nil {
				return timed{r: e.Report, stored: true}
			} else if !errors.Is(err, ledger.ErrNotFound) {
				lookup = err
			}
		}
		start := time.Now()
		r := analysis.Scan(w.Presence(), v, mode, pLo, pHi)
		return timed{r: r, took: time.Since(start), err: lookup}
	}, func(_ int, res timed) {
		if res.err != nil {
			warn(res.err)
		}
		log.Printf("[scan] %s: %d collisions in %d inputs (%s)", res.r.Variant, res.r.Collisions,
			res.r.Scanned, res.took.Truncate(time.Millisecond))
		if book != nil && !res.stored {
			if err := book.PutScan(run.ID, res.r); err != nil {
				warn(err)
			}
		}
	})

	for _, res := range results {
		r := res.r
		result, took := "partial", res.took.Truncate(time.Millisecond).String()
		switch {
		case r.Collisions > 0:
			result = "not bijective"
		case r.Bijective():
			result = "bijective"
		}
		if res.stored {
			took = "stored"
		}
		first, output, fingerprint := "", "", ""
		if r.Collisions > 0 {
			first, output = Sprintf("0x%08x", r.FirstInput), Sprintf("0x%08x", r.FirstOutput)
		}
		if r.Fingerprint != 0 {
			fingerprint = Sprintf("%016x", r.Fingerprint)
		}
		t.Row(strconv.Itoa(r.Variant.ID()), r.Variant.String(), result, strconv.FormatUint(r.Scanned, 10),
			strconv.FormatUint(r.Collisions, 10), first, output, fingerprint, took)
	}
	return t
}

func search(book *ledger.Ledger, run ledger.Run, list []hortex.Variant, diagnose bool) *table.Table {
	t := table.New("ID", "Variant", "Draws", "A", "B", "Output", "Cause").AlignRight(0, 2)
	type outcome struct {
		c     analysis.Collision
		found bool
		cause analysis.Cause
	}

	results := analysis.Sweep(list, pJobs, func(_ *analysis.Worker, v hortex.Variant) outcome {
		src := analysis.NewStream(pSeed + "/" + strconv.Itoa(v.ID()))
		if !diagnose {
			c, ok := analysis.Search(v, src, pLimit)
			return outcome{c: c, found: ok}
		}
		d, ok := analysis.Diagnose(v, src, pLimit)
		c := analysis.Collision{Variant: v, A: d.Prev.X, B: d.Curr.X, Output: d.Curr.Out, Draws: d.Draws}
		if ok {
			log.Printf("[diagnose] %s: %s", v, traces(d))
		}
		return outcome{c: c, found: ok, cause: d.Cause}
	}, func(_ int, o outcome) {
		log.Printf("[search] %s: found=%t after %d draws", o.c.Variant, o.found, o.c.Draws)
		if book != nil {
			if err := book.PutSearch(run.ID, pSeed, o.c, o.found, o.cause); err != nil {
				warn(err)
			}
		}
	})

	for _, o := range results {
		a, b, output, cause := "", "", "", ""
		if o.found {
			a, b, output = Sprintf("0x%08x", o.c.A), Sprintf("0x%08x", o.c.B), Sprintf("0x%08x", o.c.Output)
			if diagnose {
				cause = o.cause.String()
			}
		} else {
			cause = "none found"
		}
		t.Row(strconv.Itoa(o.c.Variant.ID()), o.c.Variant.String(), strconv.FormatUint(o.c.Draws, 10),
			a, b, output, cause)
	}
	return t
}

// traces renders both sides of a diagnosis on one line each.
func traces(d analysis.Diagnosis) string {
	var b strings.Builder
	for _, t := range [2]hortex.Trace{d.Prev, d.Curr} {
		Fprintf(&b, "%s  x=0x%08x l=%d m=%d r=%d gamma=%.17g eta=%.17g k=%.17g n=%d w1=0x%08x w2=0x%08x out=0x%08x",
			n, t.X, t.Left, t.Middle, t.Right, t.Gamma, t.Eta, t.K, t.N, t.W1, t.W2, t.Out)
	}
	return d.Cause.String() + b.String()
}

func history(book *ledger.Ledger) *table.Table {
	t := table.New("Kind", "ID", "Variant", "Mode/Seed", "Range/Draws", "Collisions", "Run").AlignRight(1, 5)
	scans, err := book.Scans()
	if err != nil {
		warn(err)
	}
	for _, e := range scans {
		r := e.Report
		t.Row("scan", strconv.Itoa(r.Variant.ID()), r.Variant.String(), r.Mode.String(),
			Sprintf("[%#x,%#x)", r.Lo, r.Hi), strconv.FormatUint(r.Collisions, 10), e.Run)
	}
	searches, err := book.Searches()
	if err != nil {
		warn(err)
	}
	for _, e := range searches {
		found := "0"
		if e.Found {
			found = "1"
		}
		kind := "search"
		if e.Cause != 0 {
			kind = e.Cause.String()
		}
		t.Row(kind, strconv.Itoa(e.Collision.Variant.ID()), e.Collision.Variant.String(), e.Seed,
			strconv.FormatUint(e.Collision.Draws, 10), found, e.Run)
	}
	return t
}

func warn(err ...interface{}) {
	if pStrict {
		panic(err)
	}
	Fprint(os.Stderr, purp, Sprint(err...), zero, n)
	warnings++
}
