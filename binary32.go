package hortex

import "math"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Binary32 narrows d to IEEE-754 binary32 with round-to-nearest-even and returns its bit
// pattern. Values beyond the binary32 range become infinities, values below its subnormal range
// become signed zeros, and NaN stays NaN (quiet, with the top payload bits kept).
func Binary32(d float64) uint32 { return math.Float32bits(float32(d)) }

// fraction is C's modf fractional part: unlike math.Modf, infinities yield a zero of the same
// sign rather than NaN.
func fraction(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.Copysign(0, v)
	}
	_, f := math.Modf(v)
	return f
}
