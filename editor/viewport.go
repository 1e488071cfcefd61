// SPDX-License-Identifier: EPL-2.0

package editor

import "math"

// Viewport maps between pixel columns and buffer time. It is a plain value
// rebuilt from session state whenever it is needed.
//
// The visible window is Duration/Zoom seconds wide and centered on Center.
// It is pinned to the buffer on both ends, so zooming in near the end of a
// file never shows blank space past it.
type Viewport struct {
	Duration float64 // buffer length in seconds
	Zoom     float64 // 1 shows the whole buffer
	Center   float64 // usually the current playback time
	Width    float64 // canvas width in pixels
}

func (v Viewport) zoom() float64 {
	if v.Zoom < 1 || math.IsNaN(v.Zoom) || math.IsInf(v.Zoom, 0) {
		return 1
	}
	return v.Zoom
}

func (v Viewport) degenerate() bool {
	return !(v.Duration > 0) || !(v.Width > 0)
}

// VisibleDuration is the length of the window in seconds.
func (v Viewport) VisibleDuration() float64 {
	if !(v.Duration > 0) {
		return 0
	}
	return v.Duration / v.zoom()
}

// Start is the time at the left edge of the window.
func (v Viewport) Start() float64 {
	visible := v.VisibleDuration()
	if visible == 0 || math.IsNaN(v.Center) {
		return 0
	}

	return clamp(v.Center-visible/2, 0, max(0, v.Duration-visible))
}

// PixelToTime returns the time under column x. x is clamped to the canvas.
func (v Viewport) PixelToTime(x float64) float64 {
	if v.degenerate() || math.IsNaN(x) {
		return v.Start()
	}

	return v.Start() + clamp(x, 0, v.Width)/v.Width*v.VisibleDuration()
}

// Ratio is the position of t inside the window, 0 at the left edge and 1 at
// the right. It is not clamped.
func (v Viewport) Ratio(t float64) float64 {
	visible := v.VisibleDuration()
	if visible == 0 {
		return 0
	}
	return (t - v.Start()) / visible
}

// TimeToPixel returns the column for t, clamped to [0, Width].
func (v Viewport) TimeToPixel(t float64) float64 {
	if v.degenerate() {
		return 0
	}
	x := v.Ratio(t) * v.Width
	if math.IsNaN(x) {
		return 0
	}
	return clamp(x, 0, v.Width)
}

// Span returns the pixel extent of the range [a, b] for drawing a selection
// overlay. ok is false when the range is entirely off screen.
func (v Viewport) Span(a, b float64) (left, right float64, ok bool) {
	if v.degenerate() {
		return 0, 0, false
	}
	if a > b {
		a, b = b, a
	}

	left = max(0, v.Ratio(a)*v.Width)
	right = min(v.Width, v.Ratio(b)*v.Width)
	if right <= 0 || left >= v.Width || right <= left {
		return 0, 0, false
	}

	return left, right, true
}
