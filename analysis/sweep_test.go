package analysis

import (
	"sync"
	"testing"

	"github.com/p7r0x7/hortex"
	"github.com/stretchr/testify/require"
)

func TestSweepOrder(t *testing.T) {
	t.Parallel()
	variants := hortex.Variants()
	var calls []int
	ids := Sweep(variants, 5, func(_ *Worker, v hortex.Variant) int { return v.ID() },
		func(dex, id int) {
			require.Equal(t, dex, id)
			calls = append(calls, dex)
		})
	require.Len(t, calls, len(variants))
	for i, id := range ids {
		require.Equal(t, i, id)
	}

	require.Empty(t, Sweep(nil, 3, func(*Worker, hortex.Variant) int { return 1 }, nil))
}

func TestSweepWorkersOwnPresence(t *testing.T) {
	variants := hortex.MixerVariants()[:4]
	var mu sync.Mutex
	sets := map[int]*Presence{}

	reports := Sweep(variants, 2, func(w *Worker, v hortex.Variant) Report {
		p := w.Presence()
		require.False(t, p.Has(hortex.Mix(1065341, v)), "presence sets start clear")
		mu.Lock()
		if prev, ok := sets[w.ID]; ok {
			require.Same(t, prev, p)
		}
		sets[w.ID] = p
		mu.Unlock()
		return ScanInputs(p, v, Count, []uint32{1065341, 1082266, 1065341})
	}, nil)

	require.LessOrEqual(t, len(sets), 2)
	for _, r := range reports {
		require.GreaterOrEqual(t, r.Collisions, uint64(1))
	}
}
