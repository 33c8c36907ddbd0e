package hortex

import (
	"encoding/binary"
	"hash"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains a Go-specific API implementing the standard hash.Hash interface.

// Digest is a streaming Hortex state over whole bytes. Its zero value is not usable; call New.
type Digest struct {
	sp    sponge
	carry [BlockSize]byte
	n     int /* Bytes held in carry */
}

var _ hash.Hash = (*Digest)(nil)

// New returns a Digest computing Hortex under v.
func New(v Variant) *Digest {
	if !v.Valid() {
		panic("hortex: invalid variant " + v.String())
	}
	return &Digest{sp: sponge{v: v}}
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

// Variant returns the parameterization d was created with.
func (d *Digest) Variant() Variant { return d.sp.v }

func (d *Digest) Write(buf []byte) (int, error) {
	count := len(buf)
	if d.n > 0 {
		c := copy(d.carry[d.n:], buf)
		d.n += c
		buf = buf[c:]
		if d.n < BlockSize {
			return count, nil
		}
		d.sp.absorb(binary.BigEndian.Uint64(d.carry[:]))
		d.n = 0
	}

	for len(buf) >= BlockSize {
		d.sp.absorb(binary.BigEndian.Uint64(buf))
		buf = buf[BlockSize:]
	}
	d.n = copy(d.carry[:], buf)
	return count, nil
}

// Sum appends the digest of everything written so far to buf. The running state is untouched,
// so writing may continue afterwards.
func (d *Digest) Sum(buf []byte) []byte {
	sp := d.sp /* Copy */
	if d.n > 0 {
		sp.absorb(tail(d.carry[:d.n], uint64(d.n)*8))
	}
	sum := sp.squeeze()
	return append(buf, sum[:]...)
}

func (d *Digest) Reset() {
	d.sp.s, d.carry, d.n = State{}, [BlockSize]byte{}, 0
}
