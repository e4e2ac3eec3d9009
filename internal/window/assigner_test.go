package window

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestFixedWindowAssignment matches spec.md scenario S4: a Fixed(length=10)
// window over a stream of timestamps.
func TestFixedWindowAssignment(t *testing.T) {
	t.Parallel()

	fw := FixedWindow{Length: 10, Offset: 0}

	cases := []struct {
		ts    float64
		start float64
		end   float64
	}{
		{ts: 0, start: 0, end: 10},
		{ts: 9.999, start: 0, end: 10},
		{ts: 10, start: 10, end: 20},
		{ts: 23, start: 20, end: 30},
		{ts: -1, start: -10, end: 0},
		{ts: -10, start: -10, end: 0},
	}

	for _, c := range cases {
		panes := fw.WindowsFor(c.ts, nil)
		require.Len(t, panes, 1)
		require.InDelta(t, c.start, panes[0].Start, 1e-9)
		require.InDelta(t, c.end, panes[0].End, 1e-9)
	}
}

// TestFixedWindowWithOffset checks that a nonzero offset shifts pane
// boundaries rather than the pane length.
func TestFixedWindowWithOffset(t *testing.T) {
	t.Parallel()

	fw := FixedWindow{Length: 10, Offset: 5}

	panes := fw.WindowsFor(12, nil)
	require.Len(t, panes, 1)
	require.InDelta(t, 5, panes[0].Start, 1e-9)
	require.InDelta(t, 15, panes[0].End, 1e-9)
}

// TestSlidingWindowAssignment matches spec.md scenario S5: a
// Sliding(frequency=5, length=10) window.
func TestSlidingWindowAssignment(t *testing.T) {
	t.Parallel()

	sw := SlidingWindow{Frequency: 5, Length: 10, Offset: 0}

	// spec.md S5: ts=7 is assigned to panes [0,10) and [5,15).
	panes := sw.WindowsFor(7, nil)

	want := []Pane{
		{Start: 5, End: 15},
		{Start: 0, End: 10},
	}
	require.Len(t, panes, len(want))
	for i, p := range want {
		require.InDelta(t, p.Start, panes[i].Start, 1e-9)
		require.InDelta(t, p.End, panes[i].End, 1e-9)
	}
}

// TestSlidingWindowNarrowerThanStep confirms that a sliding window whose
// length is shorter than its step frequency can leave a timestamp
// unassigned to any pane (spec.md §4.6 "Sliding" edge case).
func TestSlidingWindowNarrowerThanStep(t *testing.T) {
	t.Parallel()

	sw := SlidingWindow{Frequency: 10, Length: 4, Offset: 0}

	// Panes start every 10 and last 4: ..., [0,4), [10,14), ... The only
	// candidate start at or before 7 is 0, and [0,4) does not cover 7, so
	// no covering pane exists.
	panes := sw.WindowsFor(7, nil)
	require.Empty(t, panes)
}

// TestFixedWindowPartitionsRealLine is a property test: for any length,
// offset, and timestamp, FixedWindow assigns exactly one pane, and that
// pane always contains the timestamp in its half-open interval.
func TestFixedWindowPartitionsRealLine(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		length := rapid.Float64Range(0.01, 1000).Draw(t, "length")
		offset := rapid.Float64Range(-1000, 1000).Draw(t, "offset")
		ts := rapid.Float64Range(-10000, 10000).Draw(t, "ts")

		fw := FixedWindow{Length: length, Offset: offset}
		panes := fw.WindowsFor(ts, nil)

		require.Len(t, panes, 1)
		p := panes[0]
		require.InDelta(t, length, p.End-p.Start, 1e-6)
		require.GreaterOrEqual(t, ts, p.Start)
		require.Less(t, ts, p.End+1e-9)
	})
}

// TestFixedWindowAdjacentPanesDoNotOverlap checks that two timestamps one
// length apart fall into adjacent, non-overlapping panes.
func TestFixedWindowAdjacentPanesDoNotOverlap(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		length := rapid.Float64Range(0.01, 1000).Draw(t, "length")
		ts := rapid.Float64Range(-10000, 10000).Draw(t, "ts")

		fw := FixedWindow{Length: length, Offset: 0}
		first := fw.WindowsFor(ts, nil)[0]
		second := fw.WindowsFor(ts+length, nil)[0]

		require.InDelta(t, first.End, second.Start, 1e-6)
	})
}
