package hortex

import (
	"bytes"
	"hash"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	alternating32 = []byte{0xaa, 0xaa, 0xaa, 0xaa}
	alternating64 = []byte{0xaa, 0xaa, 0xaa, 0xaa, 0x80, 0, 0, 0} /* alternating32 padded by hand */
)

func TestPadLength(t *testing.T) {
	t.Parallel()
	for n, want := range map[uint64]uint64{
		0: 0, 1: 63, 8: 56, 32: 32, 62: 2, 63: 65, 64: 0, 65: 63, 127: 65, 128: 0, 200: 56,
	} {
		require.Equal(t, want, PadLength(n), "n=%d", n)
		require.Zero(t, (n+PadLength(n))%64)
	}
}

func TestTail(t *testing.T) {
	t.Parallel()
	require.Equal(t, uint64(0x8000000000000000|0x4000000000000000), tail([]byte{0xff}, 1))
	require.Equal(t, uint64(0x0080000000000000), tail([]byte{0x00}, 8))
	require.Equal(t, uint64(0xaaaaaaaa80000000), tail(alternating32, 32))
	require.Equal(t, uint64(0xfffffffffffffffe|1), tail(bytes.Repeat([]byte{0xff}, 8), 63))
	require.Equal(t, uint64(0xfffffffffffffffe|1), tail([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}, 63))
	require.Equal(t, uint64(0xa000000000000000), tail([]byte{0xbf}, 2), "bits past n are ignored")
}

func TestEmptyMessageAbsorbsNothing(t *testing.T) {
	t.Parallel()
	for _, v := range []Variant{Reference, Baseline, {Improved: true, ARX: Diagram}} {
		empty := Sum(nil, v)
		zeros := SumBits(make([]byte, 8), 64, v)
		require.Equal(t, empty[8:], zeros[:8], v.String())

		f1 := Permute(State{}, v)
		require.Equal(t, []uint32{f1[0], f1[1]}, []uint32{
			uint32(empty[0])<<24 | uint32(empty[1])<<16 | uint32(empty[2])<<8 | uint32(empty[3]),
			uint32(empty[4])<<24 | uint32(empty[5])<<16 | uint32(empty[6])<<8 | uint32(empty[7]),
		}, v.String())
		require.Equal(t, empty, SumBits([]byte{0xff}, 0, v))
	}
}

func TestPaddingCollision(t *testing.T) {
	t.Parallel()
	for _, v := range Variants() {
		require.Equal(t, SumBits(alternating32, 32, v), Sum(alternating64, v), v.String())
	}

	/* 63 bits need a second, all-zero padding block. */
	ones := bytes.Repeat([]byte{0xff}, 8)
	require.Equal(t, SumBits(ones, 63, Reference), SumBits(append(ones, make([]byte, 8)...), 128, Reference))
}

func TestParseBits(t *testing.T) {
	t.Parallel()
	msg, n, err := ParseBits("1010_1010 1010 1010 10101010 10101010")
	require.NoError(t, err)
	require.Equal(t, uint64(32), n)
	require.Equal(t, alternating32, msg)

	msg, n, err = ParseBits("101")
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)
	require.Equal(t, []byte{0xa0}, msg)

	msg, n, err = ParseBits("")
	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, msg)

	msg, n, err = ParseBits("1\t0\n1_1")
	require.NoError(t, err)
	require.Equal(t, uint64(4), n)
	require.Equal(t, []byte{0xb0}, msg)

	for _, bad := range []string{"two", "10201", "0b101", "1,0"} {
		_, _, err = ParseBits(bad)
		require.Error(t, err, bad)
	}

	/* 63 ones and its spelled-out padding agree. */
	ones, n, err := ParseBits(strings.Repeat("1", 63))
	require.NoError(t, err)
	padded, m, err := ParseBits(strings.Repeat("1", 64) + strings.Repeat("0", 64))
	require.NoError(t, err)
	require.Equal(t, SumBits(ones, n, Reference), SumBits(padded, m, Reference))
}

func TestSumBitsIgnoresTrailingBits(t *testing.T) {
	t.Parallel()
	msg := []byte("hortex sponge")
	n := uint64(len(msg))*8 - 5
	masked := append([]byte(nil), msg...)
	masked[len(masked)-1] &= 0xe0
	require.Equal(t, SumBits(masked, n, Reference), SumBits(msg, n, Reference))
	require.Equal(t, Sum(msg, Reference), SumBits(msg, uint64(len(msg))*8, Reference))
}

func TestSumBitsTooLong(t *testing.T) {
	t.Parallel()
	require.PanicsWithValue(t, "hortex: bit length exceeds message", func() {
		SumBits([]byte{0}, 9, Reference)
	})
}

func TestSumSensitivity(t *testing.T) {
	t.Parallel()
	seen := map[[Size]byte]string{}
	for _, msg := range []string{"", "a", "b", "abc", "abd", "hortex", "Hortex", "hortex!"} {
		sum := Sum([]byte(msg), Reference)
		prev, dup := seen[sum]
		require.False(t, dup, "%q and %q share a digest", msg, prev)
		seen[sum] = msg
	}
}

func TestSumBitFlips(t *testing.T) {
	t.Parallel()
	msg := []byte("hortex sponge bit flips!")
	seen := map[[Size]byte]int{Sum(msg, Reference): -1}
	for bit := 0; bit < len(msg)*8; bit++ {
		flipped := append([]byte(nil), msg...)
		flipped[bit/8] ^= 0x80 >> (bit % 8)
		sum := Sum(flipped, Reference)
		prev, dup := seen[sum]
		require.False(t, dup, "flipping bit %d repeats the digest of %d", bit, prev)
		seen[sum] = bit
	}
}

// Raw mixing saturates to +Inf for most words, so baseline variants often share a digest.
// Improved variants never do.
func TestSumAcrossVariants(t *testing.T) {
	t.Parallel()
	seq := make([]byte, 24)
	for i := range seq {
		seq[i] = byte(i)
	}
	for _, c := range []struct {
		msg  []byte
		same [][]int
	}{
		{nil, [][]int{{0, 2}, {1, 3, 13, 15}, {4, 6}, {5, 7}, {12, 14}}},
		{[]byte("abc"), [][]int{{0, 2}, {1, 3, 5, 7, 9, 11, 13, 15}}},
		{[]byte("hortex"), [][]int{{4, 6}}},
		{seq, [][]int{{1, 3, 5, 7, 9, 11, 13, 15}, {4, 6}}},
	} {
		var groups [][]int
		index := map[[Size]byte]int{}
		for _, v := range Variants() {
			sum := Sum(c.msg, v)
			if i, ok := index[sum]; ok {
				groups[i] = append(groups[i], v.ID())
				continue
			}
			index[sum] = len(groups)
			groups = append(groups, []int{v.ID()})
		}

		var same [][]int
		for _, g := range groups {
			if len(g) > 1 {
				same = append(same, g)
				for _, id := range g {
					require.Less(t, id, 16, "improved variant %d shares a digest of %q", id, c.msg)
				}
			}
		}
		require.Equal(t, c.same, same, "%q", c.msg)
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()
	msg := make([]byte, 100)
	for i := range msg {
		msg[i] = byte(i * 7)
	}

	for _, v := range []Variant{Reference, Baseline} {
		want := Sum(msg, v)
		for _, chunk := range []int{1, 3, 7, 8, 9, 64, 100} {
			d := New(v)
			var h hash.Hash = d
			for rem := msg; len(rem) > 0; {
				c := chunk
				if c > len(rem) {
					c = len(rem)
				}
				n, err := h.Write(rem[:c])
				require.NoError(t, err)
				require.Equal(t, c, n)
				rem = rem[c:]
			}
			require.Equal(t, want[:], h.Sum(nil), "chunk=%d", chunk)
			require.Equal(t, want[:], h.Sum(nil), "Sum must not disturb the state")
			require.Equal(t, append([]byte("prefix"), want[:]...), h.Sum([]byte("prefix")))

			h.Reset()
			empty := Sum(nil, v)
			require.Equal(t, empty[:], h.Sum(nil))
			require.Equal(t, v, d.Variant())
		}
	}

	d := New(Reference)
	require.Equal(t, Size, d.Size())
	require.Equal(t, BlockSize, d.BlockSize())
	require.Panics(t, func() { New(Variant{ARX: 2}) })
}

func TestDigestContinuesAfterSum(t *testing.T) {
	t.Parallel()
	d := New(Reference)
	d.Write([]byte("hor"))
	d.Sum(nil)
	d.Write([]byte("tex"))
	want := Sum([]byte("hortex"), Reference)
	require.Equal(t, want[:], d.Sum(nil))
}

func TestStateBytes(t *testing.T) {
	t.Parallel()
	var b [32]byte
	for i := range b {
		b[i] = byte(i)
	}
	s := StateFromBytes(b)
	require.Equal(t, uint32(0x00010203), s[0])
	require.Equal(t, uint32(0x1c1d1e1f), s[7])
	require.Equal(t, b, s.Bytes())
}

func TestStateGeometry(t *testing.T) {
	t.Parallel()
	require.Equal(t, len(State{})*32, BlockSize*8+Capacity)
	require.Equal(t, 2*BlockSize, Size, "two squeezes of one rate each")

	/* Absorbing touches only the rate lanes before permuting. */
	sp := sponge{v: Reference}
	sp.absorb(0x0123456789abcdef)
	want := Permute(State{0x01234567, 0x89abcdef}, Reference)
	require.Equal(t, want, sp.s)
}

func TestPermuteNetworks(t *testing.T) {
	t.Parallel()
	s := State{0x01234567, 0x89abcdef, 0xfedcba98, 0x76543210, 0, 0xffffffff, 0x55555555, 0xaaaaaaaa}
	for _, v := range MixerVariants() {
		p, d := v, v
		d.ARX = Diagram
		a, b := Permute(s, p), Permute(s, d)
		require.Equal(t, a, Permute(s, p), "deterministic")

		/* v1 and v5 are computed before the two networks diverge. */
		require.Equal(t, a[0], b[0], v.String())
		require.Equal(t, a[4], b[4], v.String())
	}
}

func BenchmarkSum(b *testing.B) {
	msg := make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum(msg, Reference)
	}
}
