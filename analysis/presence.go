// Package analysis searches Hortex's word mixer for the collisions that make it non-bijective:
// exhaustively over all 2^32 inputs, or by birthday search over random ones.
package analysis

import "github.com/zeebo/xxh3"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const presenceBytes = 1 << 29

// Presence is a bitmap over every 32-bit word; bit y%8 of byte y/8 counts from the most
// significant end. It holds 512 MiB and is not safe for concurrent use.
type Presence struct {
	bits   []byte
	lo, hi uint32 /* Bytes outside [lo, hi] are known to be zero. */
}

func NewPresence() *Presence { return &Presence{bits: make([]byte, presenceBytes), lo: 1} }

// Mark sets the bit for y and reports whether it was already set.
func (p *Presence) Mark(y uint32) bool {
	i, m := y>>3, byte(0x80)>>(y&7)
	if p.lo > p.hi {
		p.lo, p.hi = i, i
	} else if i < p.lo {
		p.lo = i
	} else if i > p.hi {
		p.hi = i
	}
	seen := p.bits[i]&m != 0
	p.bits[i] |= m
	return seen
}

func (p *Presence) Has(y uint32) bool { return p.bits[y>>3]&(byte(0x80)>>(y&7)) != 0 }

// Reset clears every bit so the set can serve another scan.
func (p *Presence) Reset() {
	if p.lo <= p.hi {
		clear(p.bits[p.lo : p.hi+1])
	}
	p.lo, p.hi = 1, 0
}

// Fingerprint condenses the bitmap to 64 bits; equal scans on different builds agree on it.
func (p *Presence) Fingerprint() uint64 { return xxh3.Hash(p.bits) }
