// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"testing"

	"github.com/ik5/wavedit/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeaks_Silence(t *testing.T) {
	t.Parallel()

	peaks := Peaks(make([]float32, 10000), 800, 1)
	require.NotEmpty(t, peaks)
	for _, p := range peaks {
		assert.Equal(t, Peak{}, p)
	}
}

func TestPeaks_LengthBound(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 7, 99, 100, 101, 1000, 44100} {
		for _, w := range []int{1, 3, 100, 800, 5000} {
			for _, z := range []float64{0.5, 1, 2, 8, 1000} {
				t.Run(fmt.Sprintf("n%d_w%d_z%v", n, w, z), func(t *testing.T) {
					peaks := Peaks(make([]float32, n), w, z)
					assert.LessOrEqual(t, len(peaks), w+1)
					assert.NotEmpty(t, peaks)
				})
			}
		}
	}
}

func TestPeaks_Empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Peaks(nil, 100, 1))
	assert.Nil(t, Peaks([]float32{}, 100, 1))
	assert.Nil(t, Peaks([]float32{1, 2}, 0, 1))
	assert.Nil(t, Peaks([]float32{1, 2}, -5, 1))
}

func TestPeaks_MinMax(t *testing.T) {
	t.Parallel()

	samples := []float32{0.1, -0.2, 0.3, 0.9, -0.7, 0.0, 0.5, 0.5}
	peaks := Peaks(samples, 4, 1)

	assert.Equal(t, []Peak{
		{Min: -0.2, Max: 0.1},
		{Min: 0.3, Max: 0.9},
		{Min: -0.7, Max: 0.0},
		{Min: 0.5, Max: 0.5},
	}, peaks)
}

func TestPeaks_ZoomedStopsAtData(t *testing.T) {
	t.Parallel()

	// spp = floor((1000/4)/10) = 25, so only the first 250 samples are shown
	samples := audiotest.Ramp(1000)
	peaks := Peaks(samples, 10, 4)

	require.Len(t, peaks, 10)
	assert.Equal(t, samples[0], peaks[0].Min)
	assert.Equal(t, samples[249], peaks[9].Max)
}

func TestPeaks_ShortData(t *testing.T) {
	t.Parallel()

	// fewer samples than columns: one sample per column until data runs out
	peaks := Peaks([]float32{0.5, -0.5, 0.25}, 100, 1)
	assert.Len(t, peaks, 3)
}

func TestPeaksAt_Offset(t *testing.T) {
	t.Parallel()

	samples := audiotest.Ramp(1000)
	peaks := PeaksAt(samples, 500, 10, 4)

	require.Len(t, peaks, 10)
	assert.Equal(t, samples[500], peaks[0].Min)
	assert.Equal(t, samples[749], peaks[9].Max)

	tail := PeaksAt(samples, 990, 10, 4)
	assert.Len(t, tail, 1)

	assert.Empty(t, PeaksAt(samples, 1000, 10, 4))
}

func TestSegments(t *testing.T) {
	t.Parallel()

	segs := Segments([]Peak{{Min: -1, Max: 1}, {Min: 0, Max: 0.5}}, 100)
	require.Len(t, segs, 2)

	assert.Equal(t, 0, segs[0].X)
	assert.InDelta(t, 5, segs[0].Y1, 1e-9)
	assert.InDelta(t, 95, segs[0].Y2, 1e-9)

	assert.Equal(t, 1, segs[1].X)
	assert.InDelta(t, 50, segs[1].Y1, 1e-9)
	assert.InDelta(t, 72.5, segs[1].Y2, 1e-9)

	assert.Nil(t, Segments(nil, 100))
}

type recordingSurface struct {
	w, h    int
	clears  int
	drawn   []Segment
	batches int
}

func (r *recordingSurface) Size() (int, int) { return r.w, r.h }
func (r *recordingSurface) Clear()           { r.clears++; r.drawn = nil }
func (r *recordingSurface) DrawSegments(s []Segment) {
	r.batches++
	r.drawn = append(r.drawn, s...)
}

func TestDraw(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{w: 50, h: 20}
	Draw(s, audiotest.Sine(8000, 8000, 5, 1), 0, 1)

	assert.Equal(t, 1, s.clears)
	assert.Equal(t, 1, s.batches)
	assert.Len(t, s.drawn, 50)

	Draw(s, nil, 0, 1)
	assert.Equal(t, 2, s.clears)
	assert.Equal(t, 1, s.batches, "empty input must not draw")
	assert.Empty(t, s.drawn)
}

func TestSamplesPerPixel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 441, SamplesPerPixel(44100, 100, 1))
	assert.Equal(t, 55, SamplesPerPixel(44100, 100, 8))
	assert.Equal(t, 1, SamplesPerPixel(10, 100, 1))
	assert.Equal(t, 441, SamplesPerPixel(44100, 100, 0), "zoom below 1 acts as 1")
	assert.Equal(t, 1, SamplesPerPixel(44100, 0, 1))
}

func BenchmarkPeaks(b *testing.B) {
	samples := audiotest.Sine(44100, 44100*60, 440, 1)

	b.ReportAllocs()
	for range b.N {
		_ = Peaks(samples, 1600, 1)
	}
}
