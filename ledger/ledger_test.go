package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/p7r0x7/hortex"
	"github.com/p7r0x7/hortex/analysis"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRunRoundTrip(t *testing.T) {
	l := openTemp(t)
	run := Run{ID: uuid.New().String(), Command: "elmscan -m count", Started: time.Unix(1700000000, 0), Jobs: 2}
	require.NoError(t, l.PutRun(run))

	got, err := l.Run(run.ID)
	require.NoError(t, err)
	require.Equal(t, run.ID, got.ID)
	require.Equal(t, run.Command, got.Command)
	require.Equal(t, run.Jobs, got.Jobs)
	require.True(t, run.Started.Equal(got.Started))

	_, err = l.Run(uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScanRoundTrip(t *testing.T) {
	l := openTemp(t)
	run := uuid.New().String()
	full := analysis.Report{
		Variant: hortex.Reference, Mode: analysis.Count, Lo: 0, Hi: analysis.Domain, Scanned: analysis.Domain,
		Collisions: 12345, FirstInput: 1082266, FirstOutput: 0x328d8a94, Fingerprint: 0xdeadbeefcafef00d,
	}
	partial := analysis.Report{Variant: hortex.Baseline, Mode: analysis.FailFast, Lo: 0, Hi: 1 << 20,
		Scanned: 17, Collisions: 1, FirstInput: 16, FirstOutput: 7}

	require.NoError(t, l.PutScan(run, partial))
	require.NoError(t, l.PutScan(run, full))

	e, err := l.Scan(hortex.Reference, analysis.Count)
	require.NoError(t, err)
	require.Equal(t, run, e.Run)
	require.Equal(t, full, e.Report)
	require.WithinDuration(t, time.Now(), e.Recorded, time.Minute)

	_, err = l.Scan(hortex.Reference, analysis.FailFast)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = l.Scan(hortex.Baseline, analysis.FailFast)
	require.ErrorIs(t, err, ErrNotFound, "only whole-domain scans are looked up by variant")

	all, err := l.Scans()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, partial, all[0].Report) /* Baseline's ID sorts first. */
	require.Equal(t, full, all[1].Report)

	/* A later report for the same key replaces the earlier one. */
	full.Collisions--
	require.NoError(t, l.PutScan(run, full))
	e, err = l.Scan(hortex.Reference, analysis.Count)
	require.NoError(t, err)
	require.Equal(t, uint64(12344), e.Report.Collisions)
}

func TestSearchRoundTrip(t *testing.T) {
	l := openTemp(t)
	run := uuid.New().String()
	c := analysis.Collision{Variant: hortex.Reference, A: 1065341, B: 1082266, Output: 0x328d8a94, Draws: 99}
	require.NoError(t, l.PutSearch(run, "alpha", c, true, analysis.PostCombine))

	miss := analysis.Collision{Variant: hortex.Reference, Draws: 1000}
	require.NoError(t, l.PutSearch(run, "beta", miss, false, 0))

	e, err := l.Search(hortex.Reference, "alpha")
	require.NoError(t, err)
	require.True(t, e.Found)
	require.Equal(t, c, e.Collision)
	require.Equal(t, analysis.PostCombine, e.Cause)
	require.Equal(t, "alpha", e.Seed)

	all, err := l.Searches()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.False(t, all[1].Found)
	require.Equal(t, analysis.Cause(0), all[1].Cause)
	require.Equal(t, miss, all[1].Collision)

	_, err = l.Search(hortex.Baseline, "alpha")
	require.ErrorIs(t, err, ErrNotFound)
}
