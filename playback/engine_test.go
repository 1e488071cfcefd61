// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/editor"
	"github.com/ik5/wavedit/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ramp returns a mono buffer at rate whose sample i is i/frames.
func ramp(t *testing.T, rate, frames int) *audio.Buffer {
	t.Helper()

	data := make([]float32, frames)
	for i := range data {
		data[i] = float32(i) / float32(frames)
	}
	buf, err := audio.NewBuffer(rate, data)
	require.NoError(t, err)

	return buf
}

// pull calls Fill in blocks until n interleaved samples are collected.
func pull(e *Engine, n, block int) []float32 {
	out := make([]float32, 0, n)
	dst := make([]float32, block)
	for len(out) < n {
		e.Fill(dst)
		out = append(out, dst...)
	}

	return out[:n]
}

type endSignal chan struct{}

func (s endSignal) fn() func() { return func() { s <- struct{}{} } }

func (s endSignal) wait(t *testing.T) {
	t.Helper()

	select {
	case <-s:
	case <-time.After(5 * time.Second):
		t.Fatal("onEnded was not called")
	}
}

func (s endSignal) none(t *testing.T) {
	t.Helper()

	select {
	case <-s:
		t.Fatal("onEnded called unexpectedly")
	case <-time.After(50 * time.Millisecond):
	}
}

func newEngine(t *testing.T, rate, channels int) *Engine {
	t.Helper()

	e, err := NewEngine(rate, channels, nil)
	require.NoError(t, err)
	return e
}

func TestNewEngine_Invalid(t *testing.T) {
	t.Parallel()

	for _, f := range [][2]int{{0, 1}, {100, 0}, {-1, -1}} {
		_, err := NewEngine(f[0], f[1], nil)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	}
}

func TestEngine_WindowedRun(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	buf := ramp(t, 100, 1000)
	ended := make(endSignal, 1)

	_, err := e.Start(buf, 2, 3, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)
	require.Equal(t, 1, e.Active())

	got := pull(e, 300, 64)
	assert.Equal(t, buf.Channel(0)[200:500], got)

	// the run drained on the last block; the next fill reports the end
	ended.none(t)
	e.Fill(make([]float32, 64))
	ended.wait(t)
	assert.Zero(t, e.Active())

	tail := make([]float32, 16)
	e.Fill(tail)
	assert.Equal(t, make([]float32, 16), tail)
	ended.none(t)
}

func TestEngine_ToEnd(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	buf := ramp(t, 100, 250)
	ended := make(endSignal, 1)

	_, err := e.Start(buf, 1.5, editor.ToEnd, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	got := pull(e, 100, 100)
	assert.Equal(t, buf.Channel(0)[150:250], got)

	e.Fill(make([]float32, 10))
	ended.wait(t)
}

func TestEngine_EmptyWindowEndsOnSecondFill(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	ended := make(endSignal, 1)

	_, err := e.Start(ramp(t, 100, 100), 5, editor.ToEnd, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	e.Fill(make([]float32, 8))
	ended.none(t)
	assert.Equal(t, 1, e.Active())

	e.Fill(make([]float32, 8))
	ended.wait(t)
	assert.Zero(t, e.Active())
}

func TestEngine_StopSuppressesEnd(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	ended := make(endSignal, 1)

	run, err := e.Start(ramp(t, 100, 100), 0, 0.5, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	e.Fill(make([]float32, 10))
	run.Stop()
	run.Stop()
	assert.Zero(t, e.Active())

	out := pull(e, 100, 50)
	assert.Equal(t, make([]float32, 100), out)
	ended.none(t)
}

func TestEngine_Volume(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	buf, err := audio.NewBuffer(100, []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5})
	require.NoError(t, err)

	_, err = e.Start(buf, 0, editor.ToEnd, editor.DefaultParams(), nil)
	require.NoError(t, err)

	e.SetVolume(0.5)
	assert.Equal(t, 0.5, e.Volume())
	assert.Equal(t, []float32{0.25, 0.25, 0.25, 0.25}, pull(e, 4, 4))

	e.SetVolume(-3)
	assert.Zero(t, e.Volume())
	assert.Equal(t, []float32{0, 0}, pull(e, 2, 2))

	p := editor.DefaultParams()
	p.Volume = 2
	_, err = e.Start(buf, 0, editor.ToEnd, p, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, e.Volume())
}

func TestEngine_Speed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		speed  float64
		frames int
	}{
		{2, 150},
		{0.5, 600},
	}

	for _, tt := range tests {
		e := newEngine(t, 100, 1)
		ended := make(endSignal, 1)

		p := editor.DefaultParams()
		p.Speed = tt.speed
		_, err := e.Start(ramp(t, 100, 1000), 2, 3, p, ended.fn())
		require.NoError(t, err)

		// count frames until the run ends; a single block per fill
		produced := 0
		for e.Active() > 0 && produced < 10000 {
			e.Fill(make([]float32, 1))
			produced++
		}
		ended.wait(t)

		// one fill hits EOF without producing a frame, the next reports it
		assert.Equal(t, tt.frames, produced-2, "speed %v", tt.speed)
	}
}

func TestEngine_ChannelMapping(t *testing.T) {
	t.Parallel()

	mono, err := audio.NewBuffer(100, []float32{0.1, 0.2})
	require.NoError(t, err)
	stereo, err := audio.NewBuffer(100, []float32{0.2, 0.4}, []float32{0.6, 0.8})
	require.NoError(t, err)

	tests := []struct {
		name   string
		outCh  int
		buf    *audio.Buffer
		expect []float32
	}{
		{"mono to stereo", 2, mono, []float32{0.1, 0.1, 0.2, 0.2}},
		{"stereo to stereo", 2, stereo, []float32{0.2, 0.6, 0.4, 0.8}},
		{"stereo to mono", 1, stereo, []float32{0.4, 0.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEngine(t, 100, tt.outCh)
			_, err := e.Start(tt.buf, 0, editor.ToEnd, editor.DefaultParams(), nil)
			require.NoError(t, err)

			assert.InDeltaSlice(t, tt.expect, pull(e, len(tt.expect), len(tt.expect)), 1e-6)
		})
	}
}

func TestEngine_Mixes(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	a, _ := audio.NewBuffer(100, []float32{0.25, 0.25})
	b, _ := audio.NewBuffer(100, []float32{0.5, 0.5})

	_, err := e.Start(a, 0, editor.ToEnd, editor.DefaultParams(), nil)
	require.NoError(t, err)
	_, err = e.Start(b, 0, editor.ToEnd, editor.DefaultParams(), nil)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.75, 0.75}, pull(e, 2, 2))
}

func TestEngine_Resamples(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 200, 1)
	buf, err := audio.NewBuffer(100, audiotest.Sine(100, 100, 5, 0.5))
	require.NoError(t, err)
	ended := make(endSignal, 1)

	_, err = e.Start(buf, 0, editor.ToEnd, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	produced := 0
	for e.Active() > 0 && produced < 1000 {
		e.Fill(make([]float32, 1))
		produced++
	}
	ended.wait(t)
	assert.Equal(t, 200, produced-2)
}

func TestEngine_FilterTapIsLive(t *testing.T) {
	t.Parallel()

	const rate = 8000

	e := newEngine(t, rate, 1)
	buf, err := audio.NewBuffer(rate, audiotest.Sine(rate, 4*rate, 2000, 1))
	require.NoError(t, err)

	p := editor.DefaultParams()
	p.Filter = editor.FilterLowpass
	p.FilterFrequency = 3500
	run, err := e.Start(buf, 0, editor.ToEnd, p, nil)
	require.NoError(t, err)

	open := rms(pull(e, rate, 512))

	run.SetFilterTap(100, 0.707)
	closed := rms(pull(e, rate, 512))

	assert.Greater(t, open, 0.5)
	assert.Less(t, closed, 0.05)
}

func TestEngine_StartErrors(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)

	_, err := e.Start(nil, 0, editor.ToEnd, editor.DefaultParams(), nil)
	assert.ErrorIs(t, err, audio.ErrNoBuffer)

	bad := editor.DefaultParams()
	bad.Speed = 0
	_, err = e.Start(ramp(t, 100, 10), 0, editor.ToEnd, bad, nil)
	assert.ErrorIs(t, err, editor.ErrInvalidParams)

	require.NoError(t, e.Close())
	_, err = e.Start(ramp(t, 100, 10), 0, editor.ToEnd, editor.DefaultParams(), nil)
	assert.ErrorIs(t, err, ErrClosed)
}

type fakeOutput struct {
	mu       sync.Mutex
	rate     int
	channels int
	fill     func([]float32)
	closed   bool
	err      error
}

func (o *fakeOutput) Open(rate, channels int, fill func([]float32)) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.err != nil {
		return o.err
	}
	o.rate, o.channels, o.fill = rate, channels, fill
	return nil
}

func (o *fakeOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	return nil
}

func TestEngine_Output(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 2)
	out := &fakeOutput{}

	require.NoError(t, e.Open(out))
	assert.Equal(t, 100, out.rate)
	assert.Equal(t, 2, out.channels)
	assert.ErrorIs(t, e.Open(&fakeOutput{}), ErrAlreadyOpen)

	buf, _ := audio.NewBuffer(100, []float32{0.5})
	_, err := e.Start(buf, 0, editor.ToEnd, editor.DefaultParams(), nil)
	require.NoError(t, err)

	dst := make([]float32, 4)
	out.fill(dst)
	assert.Equal(t, []float32{0.5, 0.5, 0, 0}, dst)

	require.NoError(t, e.Close())
	assert.True(t, out.closed)
	assert.ErrorIs(t, e.Open(&fakeOutput{}), ErrClosed)
}

func TestEngine_OutputError(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	boom := errors.New("no device")

	err := e.Open(&fakeOutput{err: boom})
	require.ErrorIs(t, err, boom)

	// a failed open leaves the engine usable
	require.NoError(t, e.Open(&fakeOutput{}))
}

func TestEngine_CloseSilencesRuns(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	ended := make(endSignal, 1)
	_, err := e.Start(ramp(t, 100, 100), 0, editor.ToEnd, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	require.NoError(t, e.Close())
	assert.Zero(t, e.Active())
	e.Fill(make([]float32, 200))
	ended.none(t)
}

type delayedOutput struct {
	fakeOutput
	latency time.Duration
}

func (o *delayedOutput) Latency() time.Duration { return o.latency }

func TestEngine_EndWaitsForLatency(t *testing.T) {
	t.Parallel()

	const latency = 80 * time.Millisecond

	e := newEngine(t, 100, 1)
	out := &delayedOutput{latency: latency}
	require.NoError(t, e.Open(out))

	ended := make(endSignal, 1)
	_, err := e.Start(ramp(t, 100, 4), 0, editor.ToEnd, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	out.fill(make([]float32, 8))
	began := time.Now()
	out.fill(make([]float32, 8))
	assert.Zero(t, e.Active())

	ended.wait(t)
	assert.GreaterOrEqual(t, time.Since(began), latency)
}

func TestEngine_StopDuringLatencySuppressesEnd(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	out := &delayedOutput{latency: 30 * time.Millisecond}
	require.NoError(t, e.Open(out))

	ended := make(endSignal, 1)
	run, err := e.Start(ramp(t, 100, 4), 0, editor.ToEnd, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	out.fill(make([]float32, 8))
	out.fill(make([]float32, 8))
	run.Stop()

	ended.none(t)
}

func TestEngine_CloseDuringLatencySuppressesEnd(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 100, 1)
	out := &delayedOutput{latency: 30 * time.Millisecond}
	require.NoError(t, e.Open(out))

	ended := make(endSignal, 1)
	_, err := e.Start(ramp(t, 100, 4), 0, editor.ToEnd, editor.DefaultParams(), ended.fn())
	require.NoError(t, err)

	out.fill(make([]float32, 8))
	out.fill(make([]float32, 8))
	require.NoError(t, e.Close())

	ended.none(t)
}
