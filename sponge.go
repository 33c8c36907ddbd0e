package hortex

import (
	"encoding/binary"
	"fmt"
	"unicode"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Hortex is a plain sponge over the f-function: a 64-bit rate occupying the two most significant
// lanes and a 192-bit capacity. Messages are padded only when their length in bits is not
// already a multiple of the rate, so the empty message absorbs nothing at all.

const (
	Size      = 16  /* Digest bytes */
	BlockSize = 8   /* Rate bytes */
	Capacity  = 192 /* State bits the message never touches */
)

type sponge struct {
	s State
	v Variant
}

func (sp *sponge) absorb(block uint64) {
	sp.s[0] ^= uint32(block >> 32)
	sp.s[1] ^= uint32(block)
	sp.s = Permute(sp.s, sp.v)
}

func (sp *sponge) squeeze() (sum [Size]byte) {
	for i := 0; i < Size; i += 8 {
		sp.s = Permute(sp.s, sp.v)
		binary.BigEndian.PutUint32(sum[i:], sp.s[0])
		binary.BigEndian.PutUint32(sum[i+4:], sp.s[1])
	}
	return
}

// PadLength returns the number of padding bits appended to an n-bit message: zero when n is a
// multiple of 64, otherwise the least count of at least 2 that reaches the next multiple.
func PadLength(n uint64) uint64 {
	if n%64 == 0 {
		return 0
	}
	l := 64 - n%64
	if l < 2 {
		l += 64
	}
	return l
}

// Sum returns the Hortex digest of msg.
func Sum(msg []byte, v Variant) [Size]byte { return SumBits(msg, uint64(len(msg))*8, v) }

// SumBits returns the Hortex digest of the first n bits of msg, read most significant bit first.
func SumBits(msg []byte, n uint64, v Variant) [Size]byte {
	if n > uint64(len(msg))*8 {
		panic("hortex: bit length exceeds message")
	}
	sp := sponge{v: v}
	for ; n >= 64; n -= 64 {
		sp.absorb(binary.BigEndian.Uint64(msg))
		msg = msg[8:]
	}
	if n > 0 {
		sp.absorb(tail(msg, n))
		if PadLength(n) > 64 {
			sp.absorb(0)
		}
	}
	return sp.squeeze()
}

// tail packs the final n < 64 message bits into a block, followed by the padding's leading 1.
func tail(msg []byte, n uint64) uint64 {
	var buf [8]byte
	copy(buf[:], msg[:(n+7)/8])
	block := binary.BigEndian.Uint64(buf[:]) &^ (1<<(64-n) - 1)
	return block | 1<<(63-n)
}

// ParseBits packs a string of '0' and '1' runes into bytes, most significant bit first, for use
// with SumBits. Underscores and white space may group the digits; any other rune is an error.
func ParseBits(s string) ([]byte, uint64, error) {
	var msg []byte
	var n uint64
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsSpace(r):
			continue
		case r != '0' && r != '1':
			return nil, 0, fmt.Errorf("hortex: %q at offset %d of %q is not a binary digit", r, i, s)
		}
		if n%8 == 0 {
			msg = append(msg, 0)
		}
		if r == '1' {
			msg[len(msg)-1] |= 0x80 >> (n % 8)
		}
		n++
	}
	return msg, n, nil
}
