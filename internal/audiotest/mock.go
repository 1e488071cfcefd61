// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds generators shared by the tests of the audio,
// format and editor packages.
package audiotest

import (
	"errors"
	"io"
	"math"

	"github.com/ik5/wavedit/utils"
)

// ErrBroken is returned by a FailingSource once its budget is spent.
var ErrBroken = errors.New("audiotest: broken source")

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }
func (m *MockSource) Frames() int     { return m.totalSamples }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

// FailingSource yields silence for a number of reads and then fails.
type FailingSource struct {
	*MockSource
	reads int
}

func NewFailingSource(sampleRate, channels, okReads int) *FailingSource {
	return &FailingSource{
		MockSource: NewSilentSource(sampleRate, channels, math.MaxInt32),
		reads:      okReads,
	}
}

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	if f.reads <= 0 {
		return 0, ErrBroken
	}
	f.reads--

	return f.MockSource.ReadSamples(dst)
}

// Sine returns frames samples of a sine wave at the given amplitude.
func Sine(sampleRate, frames int, frequency float64, amplitude float32) []float32 {
	out := make([]float32, frames)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = amplitude * float32(math.Sin(2*math.Pi*frequency*t))
	}

	return out
}

// Ramp returns frames samples rising linearly from -1 towards 1.
func Ramp(frames int) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = -1 + 2*float32(i)/float32(max(frames, 1))
	}

	return out
}

// Quantized returns frames samples that sit exactly on the 16-bit PCM grid,
// cycling through the whole int16 range.
func Quantized(frames int, seed int) []float32 {
	out := make([]float32, frames)
	v := seed
	for i := range out {
		v = (v*7919 + 104729) % 65536
		out[i] = utils.Int16ToFloat32(int16(v - 32768))
	}

	return out
}
