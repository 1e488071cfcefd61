// SPDX-License-Identifier: EPL-2.0

package editor

import "math"

// Selection is an optional time range in seconds. The bounds are stored as
// written, unordered and unclamped. Readers go through Normalized or
// Clamped.
type Selection struct {
	start, end       float64
	hasStart, hasEnd bool
}

// Range returns a selection spanning a and b.
func Range(a, b float64) Selection {
	var s Selection
	s.Begin(a)
	s.Extend(b)
	return s
}

// Begin starts a new selection at t. It is not valid until extended.
func (s *Selection) Begin(t float64) {
	s.start, s.end = t, t
	s.hasStart, s.hasEnd = true, true
}

// Extend moves the end of the selection to t.
func (s *Selection) Extend(t float64) {
	s.end = t
	s.hasEnd = true
}

func (s *Selection) Clear() {
	*s = Selection{}
}

// IsValid reports whether both bounds are set and differ.
func (s Selection) IsValid() bool {
	return s.hasStart && s.hasEnd && s.start != s.end &&
		!math.IsNaN(s.start) && !math.IsNaN(s.end)
}

// Normalized returns the bounds in ascending order. ok is false when the
// selection is not valid.
func (s Selection) Normalized() (a, b float64, ok bool) {
	if !s.IsValid() {
		return 0, 0, false
	}

	return min(s.start, s.end), max(s.start, s.end), true
}

// Clamped returns the normalized bounds limited to [0, duration]. ok is
// false when nothing of the selection lies inside the buffer.
func (s Selection) Clamped(duration float64) (a, b float64, ok bool) {
	a, b, ok = s.Normalized()
	if !ok {
		return 0, 0, false
	}

	a = clamp(a, 0, duration)
	b = clamp(b, 0, duration)
	if b <= a {
		return 0, 0, false
	}

	return a, b, true
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
