package hortex

import (
	"math"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The ELM word mixer iterates the exponential (enhanced) logistic map
//
//	gamma <- 2^(k - eta*gamma*(1-gamma))
//
// over parameters read out of a 32-bit word and quantizes two consecutive iterates into the
// output. Every intermediate below is rounded explicitly; the compiler may otherwise fuse the
// multiply-add pairs and the outputs would stop matching other builds.

// A Trace records the life of one word through the mixer.
type Trace struct {
	X                   uint32
	Left, Middle, Right uint32  /* 12-, 16-, and 4-bit fields of X */
	Gamma, Eta, K       float64 /* Initial map state */
	N                   int     /* floor(6*Gamma); N+2 iterations are run. */
	W1, W2, Out         uint32
}

// Mix returns ELM(x) under v.
func Mix(x uint32, v Variant) uint32 { return mix(x, v, nil) }

// Inspect runs Mix and returns every intermediate it observed.
func Inspect(x uint32, v Variant) Trace {
	var t Trace
	mix(x, v, &t)
	return t
}

func mix(x uint32, v Variant, t *Trace) uint32 {
	l, m, r := x>>20, x>>4&0xffff, x&0xf
	gamma, eta, k := params(float64(l), float64(m), float64(r), v.Interval)
	n := int(math.Floor(float64(6 * gamma)))
	if t != nil {
		*t = Trace{X: x, Left: l, Middle: m, Right: r, Gamma: gamma, Eta: eta, K: k, N: n}
	}

	var w1, w2 uint32
	for i := 0; i <= n+1; i++ {
		lm := float64(float64(eta*gamma) * float64(1-gamma))
		gamma = exp2(float64(k - lm))
		if v.Improved {
			gamma = fraction(gamma)
		}

		switch i {
		case n:
			if v.Placement == Inside {
				w1 = Binary32(float64(gamma * 1e10))
			} else {
				w1 = math.Float32bits(float32(float32(gamma) * float32(1e10)))
			}
		case n + 1:
			w2 = Binary32(gamma)
		}
	}

	out := bits.RotateLeft32(w1, 17) ^ w2
	if t != nil {
		t.W1, t.W2, t.Out = w1, w2, out
	}
	return out
}

// params maps the integer fields onto the initial map state for the requested interval. The
// divisions are multiplications by reciprocals as in the reference build; the results differ in
// the last place for some fields.
func params(l, m, r float64, i Interval) (gamma, eta, k float64) {
	switch i {
	case HalfOpenLow:
		gamma = float64(l * (1.0 / 4096))
		eta = float64(m*(2.0/65536)) + 2
		k = float64(r*(1.0/16)) + 10.01
	case HalfOpenHigh:
		gamma = float64((l + 1) * (1.0 / 4096))
		eta = float64((m+1)*(2.0/65536)) + 2
		k = float64((r+1)*(1.0/16)) + 10.01
	case Open:
		gamma = float64((l + 1) * (1.0 / 4097))
		eta = float64((m+1)*(2.0/65537)) + 2
		k = float64((r+1)*(1.0/17)) + 10.01
	case Closed:
		gamma = float64(l * (1.0 / 4095))
		eta = float64(m*(2.0/65535)) + 2
		k = float64(r*(1.0/15)) + 10.01
	default:
		panic("hortex: invalid interval " + i.String())
	}
	return
}
