// Package console decides whether the programs may print ANSI formatting codes.
package console

import "sync"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var once sync.Once
var ansi bool

// ANSI reports whether standard output and standard error render ANSI codes. On Windows it first
// turns on virtual terminal processing; consoles older than Windows 10 refuse.
func ANSI() bool {
	once.Do(func() { ansi = enable() })
	return ansi
}

// Scan reads the formatting flags out of args ahead of flag parsing, which needs the codes already
// settled to color its usage text. noCodes is the default; --quiet implies --no-codes. Scanning
// stops at "--".
func Scan(args []string, noCodes bool) (bool, bool) {
	quiet := false
	for _, arg := range args {
		switch arg {
		case "--":
			return noCodes, quiet
		case "--no-codes=false":
			noCodes = false
		case "--quiet", "--quiet=true":
			noCodes, quiet = true, true
		case "--no-codes", "--no-codes=true":
			noCodes = true
		}
	}
	return noCodes, quiet
}
