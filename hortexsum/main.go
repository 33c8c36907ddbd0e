package main

import (
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	"github.com/p7r0x7/hortex"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu and quietly exits if no non-flag arguments are given. To consistently
// correctly render this menu in most terminal windows, its content should be no wider than 80
// columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "hortexsum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "The Hortex sponge over the ELM word mixer; not a cryptographic hash.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-abt] [-v <variant>] [--quiet|no-codes] [--strict] -|PATH..."+n,
		spaces, "[-abt] [-v <variant>] [--quiet|no-codes] [--strict] -s STRING..."+n,
		spaces, "[-abt] [-v <variant>] [--quiet|no-codes] [--strict] --bits BITS..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n+n+
		"Variants are numbered 0 to 31; `reference` (28) is the default and `baseline`"+n+
		"(12) drops the improved mixing. --all lists every variant by name."+n)
}

// This program is a command-line interface for hortex: It handles various flags and an unlimited
// number of arguments, processing files as required by the command-line operator.
func program() int {
	if pDebug {
		cf, err := os.Create("cpu.prof")
		if err != nil {
			panic(err)
		}
		_ = pprof.StartCPUProfile(cf)
		defer pprof.StopCPUProfile()
	}

	if pHelp || NArg() == 0 {
		help()
		return success
	}
	if pString && pBits {
		Fprint(os.Stderr, purp, "--string and --bits are mutually exclusive.", zero, n)
		return invalid
	}
	variant, err := hortex.ParseVariant(pVariant)
	if err != nil {
		Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}
	variants := []hortex.Variant{variant}
	if pAll {
		variants = hortex.Variants()
	}

	for _, target := range Args() {
		start, delta := time.Now(), ""
		msg, bits, err := read(target)
		if err != nil {
			warn(err)
			continue
		}

		for i, v := range variants {
			sum := hortex.SumBits(msg, bits, v)
			if pTime && i == 0 {
				d := time.Since(start)
				if d.Microseconds() > 99 {
					d = d.Truncate(10 * time.Microsecond)
				}
				delta = " (" + d.String() + ")"
			}
			report(sum, target, delta, v)
		}
	}

	if !pQuiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is a directory or could not otherwise be read.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are directories or could not otherwise be read.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// read returns the message named by target and its length in bits.
func read(target string) ([]byte, uint64, error) {
	var msg []byte
	var err error
	switch {
	case pString:
		msg = []byte(target)
	case pBits:
		return hortex.ParseBits(target)
	case target == "-" || target == os.Stdin.Name():
		msg, err = io.ReadAll(os.Stdin)
		go os.Stdin.Close() /* STDIN should not be reused. */
	default:
		msg, err = os.ReadFile(target)
	}
	return msg, uint64(len(msg)) * 8, err
}

func report(sum [hortex.Size]byte, target, delta string, v hortex.Variant) {
	var enc string
	if pBase64 {
		enc = base64.StdEncoding.EncodeToString(sum[:])
	} else {
		enc = hex.EncodeToString(sum[:])
	}

	if pQuiet {
		Print(enc, n)
		return
	}
	Print(yell, enc, zero)
	if pAll {
		Printf("  %s%2d %-38s%s", purp, v.ID(), v, zero)
	}
	if pString || pBits {
		Print(`  "`, target, `"`, delta, n)
	} else if pNoCodes {
		Print(`  `, filepath.Clean(target), delta, n)
	} else {
		Print(`  `, und, vainpath.Simplify(target), zero, delta, n)
	}
}

func warn(err ...interface{}) {
	if pStrict {
		panic(err)
	}
	if !pQuiet {
		Fprint(os.Stderr, purp, Sprint(err...), zero, n)
	}
	warnings++
}
