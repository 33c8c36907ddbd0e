package hortex

import (
	"fmt"
	"strconv"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file enumerates the four independent readings of the ELM description that Hortex can be
// built with. Each reading is one axis of a Variant; all 32 combinations are valid.

// Interval selects how the integer bit-fields of a word are mapped onto the unit interval.
type Interval uint8

const (
	HalfOpenLow  Interval = iota // [0,1)
	HalfOpenHigh                 // (0,1]
	Open                         // (0,1)
	Closed                       // [0,1]
)

// Placement selects where the 1e10 scale factor is applied relative to binary32 rounding.
type Placement uint8

const (
	Inside  Placement = iota // round(gamma*1e10)
	Outside                  // round(gamma)*1e10 in binary32
)

// ARX selects which of the two published ARX networks closes the f-function.
type ARX uint8

const (
	Pseudocode ARX = iota
	Diagram
)

// A Variant is one complete parameterization of Hortex. The zero value is the baseline mixing
// over [0,1) with the inside placement and the pseudocode network.
type Variant struct {
	Improved  bool /* Keep only the fractional part of each map iterate. */
	Interval  Interval
	Placement Placement
	ARX       ARX
}

// Reference is the parameterization used by the published reference build; Baseline is the same
// without the improved mixing.
var (
	Reference = Variant{Improved: true, Interval: Closed, Placement: Inside, ARX: Pseudocode}
	Baseline  = Variant{Improved: false, Interval: Closed, Placement: Inside, ARX: Pseudocode}
)

// NumVariants is the number of distinct parameterizations.
const NumVariants = 32

var (
	intervalNames  = [...]string{"halfopenlow", "halfopenhigh", "open", "closed"}
	placementNames = [...]string{"inside", "outside"}
	arxNames       = [...]string{"pseudocode", "diagram"}
)

func (i Interval) String() string {
	if int(i) < len(intervalNames) {
		return intervalNames[i]
	}
	return "interval(" + strconv.Itoa(int(i)) + ")"
}

func (p Placement) String() string {
	if int(p) < len(placementNames) {
		return placementNames[p]
	}
	return "placement(" + strconv.Itoa(int(p)) + ")"
}

func (a ARX) String() string {
	if int(a) < len(arxNames) {
		return arxNames[a]
	}
	return "arx(" + strconv.Itoa(int(a)) + ")"
}

// ID numbers variants in the order (improved, interval, placement, arx), most significant axis
// first, so the baseline variants occupy 0..15 and the improved ones 16..31.
func (v Variant) ID() int {
	id := int(v.Interval)<<2 | int(v.Placement)<<1 | int(v.ARX)
	if v.Improved {
		id |= 16
	}
	return id
}

// Valid reports whether every axis of v holds one of its named values.
func (v Variant) Valid() bool {
	return v.Interval <= Closed && v.Placement <= Outside && v.ARX <= Diagram
}

func (v Variant) String() string {
	mixing := "baseline"
	if v.Improved {
		mixing = "improved"
	}
	return mixing + "/" + v.Interval.String() + "/" + v.Placement.String() + "/" + v.ARX.String()
}

// VariantOf is the inverse of Variant.ID.
func VariantOf(id int) (Variant, error) {
	if id < 0 || id >= NumVariants {
		return Variant{}, fmt.Errorf("hortex: variant id %d out of range [0,%d)", id, NumVariants)
	}
	return Variant{
		Improved:  id&16 != 0,
		Interval:  Interval(id >> 2 & 3),
		Placement: Placement(id >> 1 & 1),
		ARX:       ARX(id & 1),
	}, nil
}

// Variants returns all parameterizations in ID order.
func Variants() []Variant {
	list := make([]Variant, NumVariants)
	for i := range list {
		list[i], _ = VariantOf(i)
	}
	return list
}

// MixerVariants returns the 16 parameterizations that differ in word-mixer behavior; the ARX
// axis only affects the f-function and is fixed to Pseudocode.
func MixerVariants() []Variant {
	list := make([]Variant, 0, NumVariants/2)
	for _, v := range Variants() {
		if v.ARX == Pseudocode {
			list = append(list, v)
		}
	}
	return list
}

// ParseVariant accepts a decimal ID, "reference", "baseline", or the slash-separated form produced
// by Variant.String. Names are case-insensitive; "raw" is accepted in place of "baseline".
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if id, err := strconv.Atoi(s); err == nil {
		return VariantOf(id)
	}
	switch s {
	case "reference":
		return Reference, nil
	case "baseline", "raw":
		return Baseline, nil
	}

	fields := strings.Split(s, "/")
	if len(fields) != 4 {
		return Variant{}, fmt.Errorf("hortex: malformed variant %q", s)
	}
	var v Variant
	switch fields[0] {
	case "improved":
		v.Improved = true
	case "baseline", "raw":
	default:
		return Variant{}, fmt.Errorf("hortex: unknown mixing %q", fields[0])
	}
	i, ok := lookup(intervalNames[:], fields[1])
	if !ok {
		return Variant{}, fmt.Errorf("hortex: unknown interval %q", fields[1])
	}
	p, ok := lookup(placementNames[:], fields[2])
	if !ok {
		return Variant{}, fmt.Errorf("hortex: unknown placement %q", fields[2])
	}
	a, ok := lookup(arxNames[:], fields[3])
	if !ok {
		return Variant{}, fmt.Errorf("hortex: unknown arx network %q", fields[3])
	}
	v.Interval, v.Placement, v.ARX = Interval(i), Placement(p), ARX(a)
	return v, nil
}

func lookup(names []string, s string) (int, bool) {
	for i, name := range names {
		if name == s {
			return i, true
		}
	}
	return 0, false
}
