package analysis

import (
	"fmt"

	"github.com/p7r0x7/hortex"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Mode decides whether a scan stops at the first repeated output.
type Mode uint8

const (
	FailFast Mode = iota
	Count
)

// Domain is the number of 32-bit inputs.
const Domain = 1 << 32

func (m Mode) String() string {
	switch m {
	case FailFast:
		return "failfast"
	case Count:
		return "count"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "failfast", "fail-fast":
		return FailFast, nil
	case "count", "counting":
		return Count, nil
	}
	return 0, fmt.Errorf("analysis: unknown scan mode %q", s)
}

// A Report summarizes one scan. Collisions counts inputs whose output had already been produced
// earlier in the scan; First names the earliest of them.
type Report struct {
	Variant     hortex.Variant
	Mode        Mode
	Lo, Hi      uint64 /* Scanned range; both zero for explicit input lists */
	Scanned     uint64
	Collisions  uint64
	FirstInput  uint32
	FirstOutput uint32
	Fingerprint uint64 /* Only for scans over the whole domain */
}

// Bijective reports whether r covers the whole domain without a single repeated output.
func (r Report) Bijective() bool {
	return r.Collisions == 0 && r.Lo == 0 && r.Hi == Domain && r.Scanned == Domain
}

// Bijectivity evaluates Mix(x, v) for every x with a private presence set.
func Bijectivity(v hortex.Variant, mode Mode) Report {
	return Scan(NewPresence(), v, mode, 0, Domain)
}

// Scan evaluates Mix(x, v) for x in [lo, hi), marking each output in p. p is not reset first, so
// consecutive scans over disjoint ranges compose into one.
func Scan(p *Presence, v hortex.Variant, mode Mode, lo, hi uint64) Report {
	if hi > Domain || lo > hi {
		panic(fmt.Sprintf("analysis: invalid range [%d, %d)", lo, hi))
	}
	r := Report{Variant: v, Mode: mode, Lo: lo, Hi: hi}
	for x := lo; x < hi; x++ {
		r.Scanned++
		if r.observe(p, uint32(x)) && mode == FailFast {
			break
		}
	}
	if lo == 0 && r.Scanned == Domain {
		r.Fingerprint = p.Fingerprint()
	}
	return r
}

// ScanInputs is Scan over an explicit list, repeats included.
func ScanInputs(p *Presence, v hortex.Variant, mode Mode, xs []uint32) Report {
	r := Report{Variant: v, Mode: mode}
	for _, x := range xs {
		r.Scanned++
		if r.observe(p, x) && mode == FailFast {
			break
		}
	}
	return r
}

func (r *Report) observe(p *Presence, x uint32) bool {
	y := hortex.Mix(x, r.Variant)
	if !p.Mark(y) {
		return false
	}
	if r.Collisions == 0 {
		r.FirstInput, r.FirstOutput = x, y
	}
	r.Collisions++
	return true
}
