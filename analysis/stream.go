package analysis

import (
	"encoding/binary"

	"github.com/aead/chacha20/chacha"
	"github.com/zeebo/blake3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Source supplies candidate inputs to a collision search. *math/rand.Rand satisfies it.
type Source interface {
	Uint32() uint32
}

// Stream is a deterministic Source reading 32-bit words from a ChaCha20 keystream. The key and
// nonce are the first 40 bytes of BLAKE3's extendable output over the seed, so any string is a
// usable seed and equal seeds always repeat the same sequence.
type Stream struct {
	cipher *chacha.Cipher
	buf    [512]byte
	off    int
}

var _ Source = (*Stream)(nil)

func NewStream(seed string) *Stream {
	var material [40]byte
	h := blake3.New()
	h.Write([]byte(seed))
	h.Digest().Read(material[:])

	cipher, err := chacha.NewCipher(material[32:], material[:32], 20)
	if err != nil {
		panic(err) /* Only reachable with malformed key or nonce lengths. */
	}
	s := &Stream{cipher: cipher}
	s.off = len(s.buf)
	return s
}

func (s *Stream) Uint32() uint32 {
	if s.off == len(s.buf) {
		s.buf = [512]byte{}
		s.cipher.XORKeyStream(s.buf[:], s.buf[:])
		s.off = 0
	}
	w := binary.LittleEndian.Uint32(s.buf[s.off:])
	s.off += 4
	return w
}
