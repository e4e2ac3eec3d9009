// Package window implements the window component variant of spec.md §4.6:
// fixed and sliding time-based pane assignment, a pane store keyed by
// ((start,end), key), and the watermark-proxy trigger rule.
package window

import "math"

// Pane is a half-open time interval [Start, End) a value can be assigned
// to.
type Pane struct {
	Start float64
	End   float64
}

// Assigner maps an inbound (timestamp, value) pair onto the panes it
// belongs to (spec.md §4.6 "Assigners"). Timestamps and durations are
// real-valued seconds.
type Assigner interface {
	WindowsFor(timestamp float64, value any) []Pane
}

// floorMod returns a mod n with the sign of n (Euclidean-style modulo),
// matching the mathematical "mod" spec.md's assigner formulas use, as
// opposed to math.Mod's C-style remainder which can be negative for
// negative a.
func floorMod(a, n float64) float64 {
	return a - n*math.Floor(a/n)
}

// FixedWindow assigns every timestamp to exactly one pane of length L,
// offset by O (spec.md §4.6 "Fixed(length L, offset O)"):
//
//	start = timestamp - ((timestamp - offset) mod length)
type FixedWindow struct {
	Length float64
	Offset float64
}

// WindowsFor implements Assigner.
func (f FixedWindow) WindowsFor(timestamp float64, _ any) []Pane {
	start := timestamp - floorMod(timestamp-f.Offset, f.Length)

	return []Pane{{Start: start, End: start + f.Length}}
}

// SlidingWindow assigns a timestamp to every pane of length L that overlaps
// it, stepping panes every F seconds, offset by O (spec.md §4.6
// "Sliding(frequency F, length L, offset O)"). When Length == Frequency
// this degenerates to one pane per timestamp; Length > Frequency produces
// overlapping panes; Length < Frequency can produce no pane at all for a
// given timestamp, in which case that value is dropped from window
// processing entirely.
type SlidingWindow struct {
	Frequency float64
	Length    float64
	Offset    float64
}

// WindowsFor implements Assigner.
func (s SlidingWindow) WindowsFor(timestamp float64, _ any) []Pane {
	lastStart := timestamp - floorMod(timestamp-s.Offset, s.Frequency)

	var panes []Pane
	for w := lastStart; w > timestamp-s.Length; w -= s.Frequency {
		panes = append(panes, Pane{Start: w, End: w + s.Length})
	}

	return panes
}
