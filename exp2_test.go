package hortex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExp2Vectors(t *testing.T) {
	t.Parallel()
	/* Outputs of glibc 2.36's exp2. */
	for _, c := range []struct{ x, want float64 }{
		{0x1.4f9986bcc169bp+3, 0x1.66e9c4bf4341fp+10}, /* math.Exp2 gives ...41ep+10 */
		{0x1.4051eb851eb85p+3, 0x1.01c7d6c404f0bp+10},
		{0x1.6051eb851eb85p+3, 0x1.01c7d6c404f0bp+11},
		{0x1.50dfa43fe5c92p+3, 0x1.70f4692a7cd5dp+10},
		{0x1.03f35ba6e72c7p+3, 0x1.16df1bdb4fa22p+8},
		{-0x1.3333333333333p-2, 0x1.9fdf8bcce533ep-1},
		{0x1.6a0902de00d1bp-1, 0x1.a1ecc8039fa8fp+0},
		{0x1.b7cdfd9d7bdbbp-34, 0x1.000000004c366p+0},
		{-0x1.e000000000000p+1, 0x1.306fe0a31b715p-4},
		{0x1.ff33333333333p+5, 0x1.ddb680117ab0ap+63},
		{0x1.d0c0000000000p+9, 0x1.6a09e667f3bcdp+929},
		{0x1.ffe0000000000p+9, 0x1.ae89f995ad3adp+1023},
		{-0x1.ff40000000000p+9, 0x0.b504f333f9de6p-1022},
		{-0x1.0693333333333p+10, 0x0.0000000cfefc6p-1022},
		{-0x1.0c90000000000p+10, 0x0.0000000000001p-1022},
		{-0x1.5e10000000000p+9, 0x1.d5818dcfba487p-701},
	} {
		require.Equal(t, math.Float64bits(c.want), math.Float64bits(exp2(c.x)), "exp2(%x)", c.x)
	}
}

func TestExp2Special(t *testing.T) {
	t.Parallel()
	require.Equal(t, 1.0, exp2(0))
	require.Equal(t, 1.0, exp2(math.Copysign(0, -1)))
	require.Equal(t, 1.0, exp2(0x1p-60))
	require.Equal(t, math.Inf(1), exp2(math.Inf(1)))
	require.Equal(t, uint64(0), math.Float64bits(exp2(math.Inf(-1))))
	require.True(t, math.IsNaN(exp2(math.NaN())))
	require.Equal(t, math.Inf(1), exp2(1024))
	require.Equal(t, math.Inf(1), exp2(1e300))
	require.Equal(t, 0.0, exp2(-1075))
	require.Equal(t, 0.0, exp2(-1e300))
}

func TestExp2PowersOfTwo(t *testing.T) {
	t.Parallel()
	for k := -1074; k <= 1023; k++ {
		require.Equal(t, math.Ldexp(1, k), exp2(float64(k)), "k=%d", k)
	}
}

func TestExp2NearMathExp2(t *testing.T) {
	t.Parallel()
	for i := 0; i < 1<<14; i++ {
		x := -1000 + 2000*float64(i)/(1<<14) + float64(i%7)*0x1p-20
		got, want := exp2(x), math.Exp2(x)
		ulp := math.Nextafter(want, math.Inf(1)) - want
		require.LessOrEqual(t, math.Abs(got-want), ulp, "exp2(%x)", x)
	}
}

func BenchmarkExp2(b *testing.B) {
	var sink float64
	for i := 0; i < b.N; i++ {
		sink += exp2(10.01 + float64(i&1023)*0x1p-10)
	}
	_ = sink
}
