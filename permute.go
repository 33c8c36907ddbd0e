package hortex

import (
	"encoding/binary"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// State is the 256-bit sponge state as eight 32-bit lanes, the most significant lane first.
// Lanes 0 and 1 form the rate.
type State [8]uint32

// StateFromBytes reads a big-endian 256-bit value into a State.
func StateFromBytes(b [32]byte) (s State) {
	for i := range s {
		s[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return
}

// Bytes returns the big-endian encoding of s.
func (s State) Bytes() (b [32]byte) {
	for i, lane := range s {
		binary.BigEndian.PutUint32(b[i*4:], lane)
	}
	return
}

// Permute applies the f-function: a chain of eight ELM lanes, each keyed by the previous lane's
// output, followed by the ARX network selected by v.ARX.
func Permute(s State, v Variant) State {
	var v1, v2, v3, v4, v5, v6, v7, v8 uint32
	v2 = Mix(s[0]^v1, v)
	v3 = Mix(s[1]^v2, v)
	v4 = Mix(s[2]^v3, v)
	v5 = Mix(s[3]^v4, v)
	v6 = Mix(s[4]^v5, v)
	v7 = Mix(s[5]^v6, v)
	v8 = Mix(s[6]^v7, v)
	v1 = Mix(s[7]^v8, v)

	r3, r4 := bits.RotateLeft32(v3, 9), bits.RotateLeft32(v4, 17)
	v1 = bits.RotateLeft32(v1, 19) + r3
	v5 = bits.RotateLeft32(v5^r3, 7)
	if v.ARX == Pseudocode {
		v6 = bits.RotateLeft32(v6^r4, 13)
		v7 += v5
	} else {
		v6 = bits.RotateLeft32(v6+r4, 13)
		v7 ^= v5
	}
	v8 = bits.RotateLeft32(v8, 11) ^ v6
	v2 += v6
	v3 = r3 ^ v7
	v4 = r4 + v2

	return State{v1, v2, v3, v4, v5, v6, v7, v8}
}
