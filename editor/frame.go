// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"context"
	"fmt"
	"math"
	"time"
)

// NoTime is shown in place of selection times when nothing is selected.
const NoTime = "--:--:---"

// FormatTime renders seconds as MM:SS:mmm. Negative and non-finite values
// render as zero. Minutes are not wrapped into hours.
func FormatTime(seconds float64) string {
	if !(seconds >= 0) || math.IsInf(seconds, 1) {
		seconds = 0
	}

	ms := int(math.Floor(math.Mod(seconds, 1) * 1000))
	s := int(math.Floor(seconds)) % 60
	m := int(math.Floor(seconds / 60))

	return fmt.Sprintf("%02d:%02d:%03d", m, s, ms)
}

// Frame is everything a display needs for one refresh.
type Frame struct {
	Loaded bool
	State  State
	Loop   bool
	Zoom   float64

	Time     float64
	Duration float64
	// Playhead is the canvas column of Time.
	Playhead float64

	TimeText     string
	DurationText string

	Selected      bool
	SelStart      float64
	SelEnd        float64
	SelStartText  string
	SelEndText    string
	SelLengthText string
	SelVisible    bool
	SelLeft       float64
	SelRight      float64
}

// Frame samples the session for display. It has no side effects.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := Frame{
		Loaded:        s.buf != nil,
		State:         s.transport.State(),
		Loop:          s.transport.Loop(),
		Zoom:          s.zoom,
		TimeText:      FormatTime(0),
		DurationText:  FormatTime(0),
		SelStartText:  NoTime,
		SelEndText:    NoTime,
		SelLengthText: NoTime,
	}
	if s.buf == nil {
		return f
	}

	vp := s.viewportLocked()
	f.Time = vp.Center
	f.Duration = vp.Duration
	f.Playhead = vp.TimeToPixel(f.Time)
	f.TimeText = FormatTime(f.Time)
	f.DurationText = FormatTime(f.Duration)

	if a, b, ok := s.sel.Normalized(); ok {
		f.Selected = true
		f.SelStart, f.SelEnd = a, b
		f.SelStartText = FormatTime(a)
		f.SelEndText = FormatTime(b)
		f.SelLengthText = FormatTime(b - a)
		f.SelLeft, f.SelRight, f.SelVisible = vp.Span(a, b)
	}

	return f
}

// Run calls fn with a fresh Frame right away and then every interval until
// ctx is done. It returns ctx.Err().
func (s *Session) Run(ctx context.Context, interval time.Duration, fn func(Frame)) error {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fn(s.Frame())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(s.Frame())
		}
	}
}
