package analysis

import (
	"fmt"

	"github.com/p7r0x7/hortex"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// A Collision is two distinct inputs that mix to the same output.
type Collision struct {
	Variant hortex.Variant
	A, B    uint32 /* A was drawn first. */
	Output  uint32
	Draws   uint64
}

// Search draws inputs from src until two distinct ones share an output under v, or until limit
// draws have been made when limit is nonzero. Redrawing an input never counts as a collision.
func Search(v hortex.Variant, src Source, limit uint64) (Collision, bool) {
	seen := make(map[uint32]uint32, 1<<16)
	for draws := uint64(1); limit == 0 || draws <= limit; draws++ {
		x := src.Uint32()
		y := hortex.Mix(x, v)
		if prev, ok := seen[y]; ok && prev != x {
			return Collision{Variant: v, A: prev, B: x, Output: y, Draws: draws}, true
		}
		seen[y] = x
	}
	return Collision{Variant: v, Draws: limit}, false
}

// Cause locates where two colliding inputs first agreed.
type Cause uint8

const (
	// PreCombine means both quantized iterates already matched, so the final rotate-xor had
	// nothing left to separate.
	PreCombine Cause = iota + 1
	// PostCombine means the iterates differed and the rotate-xor folded them together.
	PostCombine
)

func (c Cause) String() string {
	switch c {
	case PreCombine:
		return "pre-combine"
	case PostCombine:
		return "post-combine"
	}
	return fmt.Sprintf("cause(%d)", uint8(c))
}

// Classify compares the traces of two colliding inputs.
func Classify(a, b hortex.Trace) Cause {
	if a.W1 == b.W1 && a.W2 == b.W2 {
		return PreCombine
	}
	return PostCombine
}

// A Diagnosis is a collision together with the full traces of both inputs.
type Diagnosis struct {
	Variant hortex.Variant
	Prev    hortex.Trace
	Curr    hortex.Trace
	Cause   Cause
	Draws   uint64
}

// Diagnose is Search keeping every trace, so the finding can be classified.
func Diagnose(v hortex.Variant, src Source, limit uint64) (Diagnosis, bool) {
	seen := make(map[uint32]hortex.Trace, 1<<16)
	for draws := uint64(1); limit == 0 || draws <= limit; draws++ {
		t := hortex.Inspect(src.Uint32(), v)
		prev, ok := seen[t.Out]
		if !ok {
			seen[t.Out] = t
			continue
		}
		if prev.X != t.X {
			return Diagnosis{Variant: v, Prev: prev, Curr: t, Cause: Classify(prev, t), Draws: draws}, true
		}
	}
	return Diagnosis{Variant: v, Draws: limit}, false
}
