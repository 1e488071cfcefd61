// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:000"},
		{0.0015, "00:00:001"},
		{1.25, "00:01:250"},
		{61.5, "01:01:500"},
		{3600, "60:00:000"},
		{-3, "00:00:000"},
		{math.NaN(), "00:00:000"},
		{math.Inf(1), "00:00:000"},
		{math.Inf(-1), "00:00:000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.in), "FormatTime(%v)", tt.in)
	}
}

func TestFrame_Empty(t *testing.T) {
	t.Parallel()

	f := New(&fakeEngine{}).Frame()

	assert.False(t, f.Loaded)
	assert.Equal(t, Stopped, f.State)
	assert.Equal(t, "00:00:000", f.TimeText)
	assert.Equal(t, "00:00:000", f.DurationText)
	assert.Equal(t, NoTime, f.SelStartText)
	assert.Equal(t, NoTime, f.SelEndText)
	assert.Equal(t, NoTime, f.SelLengthText)
	assert.False(t, f.Selected)
}

func TestFrame_Playing(t *testing.T) {
	t.Parallel()

	s, _, clock := newLoadedSession(t)
	s.SetLoop(true)
	require.NoError(t, s.Play())
	clock.Advance(2.5)

	f := s.Frame()
	assert.True(t, f.Loaded)
	assert.Equal(t, Playing, f.State)
	assert.True(t, f.Loop)
	assert.InDelta(t, 2.5, f.Time, 1e-9)
	assert.InDelta(t, 25, f.Playhead, 1e-6)
	assert.Equal(t, "00:02:500", f.TimeText)
	assert.Equal(t, "00:10:000", f.DurationText)
}

func TestFrame_Selection(t *testing.T) {
	t.Parallel()

	s, _, _ := newLoadedSession(t)
	s.SelectRange(7.25, 1.5)

	f := s.Frame()
	require.True(t, f.Selected)
	assert.Equal(t, 1.5, f.SelStart)
	assert.Equal(t, 7.25, f.SelEnd)
	assert.Equal(t, "00:01:500", f.SelStartText)
	assert.Equal(t, "00:07:250", f.SelEndText)
	assert.Equal(t, "00:05:750", f.SelLengthText)
	assert.True(t, f.SelVisible)
	assert.InDelta(t, 15, f.SelLeft, 1e-9)
	assert.InDelta(t, 72.5, f.SelRight, 1e-9)
}

func TestFrame_SelectionOffscreen(t *testing.T) {
	t.Parallel()

	s, _, _ := newLoadedSession(t)
	s.SetZoom(10) // one second around 0: [0, 1]
	s.SelectRange(4, 5)

	f := s.Frame()
	assert.True(t, f.Selected)
	assert.False(t, f.SelVisible)
}

func TestRun(t *testing.T) {
	t.Parallel()

	s, _, _ := newLoadedSession(t)
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, time.Millisecond, func(f Frame) {
			assert.True(t, f.Loaded)
			if calls.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestRun_ImmediateFrame(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := New(&fakeEngine{}).Run(ctx, time.Hour, func(Frame) { calls++ })

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
