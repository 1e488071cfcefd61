// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"testing"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stereo(t *testing.T, rate, frames int) *audio.Buffer {
	t.Helper()

	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := range left {
		left[i], right[i] = 0.2, 0.6
	}

	buf, err := audio.NewBuffer(rate, left, right)
	require.NoError(t, err)
	return buf
}

func TestPassthrough(t *testing.T) {
	t.Parallel()

	buf := stereo(t, 8000, 100)
	out, err := Passthrough{}.Render(context.Background(), buf)
	require.NoError(t, err)
	assert.Same(t, buf, out)

	_, err = Passthrough{}.Render(context.Background(), nil)
	assert.ErrorIs(t, err, audio.ErrNoBuffer)
}

func TestNew_NoOptionsIsPassthrough(t *testing.T) {
	t.Parallel()

	assert.IsType(t, Passthrough{}, New(Options{}))
	assert.IsType(t, &Offline{}, New(Options{Mono: true}))
	assert.IsType(t, &Offline{}, New(Options{SampleRate: 16000}))
}

func TestOffline_Mono(t *testing.T) {
	t.Parallel()

	out, err := New(Options{Mono: true}).Render(context.Background(), stereo(t, 8000, 500))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, 500, out.Frames())
	assert.Equal(t, 8000, out.SampleRate())
	for _, v := range out.Channel(0) {
		assert.InDelta(t, 0.4, v, 1e-6)
	}
}

func TestOffline_Resample(t *testing.T) {
	t.Parallel()

	buf, err := audio.NewBuffer(44100, audiotest.Sine(44100, 44100, 440, 0.5))
	require.NoError(t, err)

	out, err := New(Options{SampleRate: 16000}).Render(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, 16000, out.SampleRate())
	assert.Equal(t, 16000, out.Frames())
	assert.InDelta(t, buf.Duration(), out.Duration(), 1e-9)
}

func TestOffline_MonoAndResample(t *testing.T) {
	t.Parallel()

	out, err := New(Options{SampleRate: 4000, Mono: true}).Render(context.Background(), stereo(t, 8000, 800))
	require.NoError(t, err)

	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, 400, out.Frames())
	assert.InDelta(t, 0.4, out.Channel(0)[200], 1e-5)
}

func TestOffline_SameLayoutSkipsWork(t *testing.T) {
	t.Parallel()

	mono, err := audio.NewBuffer(8000, make([]float32, 10))
	require.NoError(t, err)

	out, err := New(Options{SampleRate: 8000, Mono: true}).Render(context.Background(), mono)
	require.NoError(t, err)
	assert.Same(t, mono, out)
}

func TestOffline_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Mono: true}).Render(ctx, stereo(t, 8000, 100))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = New(Options{Mono: true}).Render(context.Background(), nil)
	assert.ErrorIs(t, err, audio.ErrNoBuffer)
}
