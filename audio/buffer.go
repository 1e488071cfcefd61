// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Buffer is decoded audio held in memory, one float32 slice per channel.
//
// A Buffer is never modified after it is built. Trimming or rendering
// produces a new Buffer. Slices returned by Channel must be treated as
// read-only.
type Buffer struct {
	channels   [][]float32
	sampleRate int
	frames     int
}

// NewBuffer wraps per-channel sample slices without copying them. The
// caller hands over ownership of the slices.
func NewBuffer(sampleRate int, channels ...[]float32) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return nil, ErrChannelLength
		}
	}

	return &Buffer{
		channels:   channels,
		sampleRate: sampleRate,
		frames:     frames,
	}, nil
}

// NewSilence returns a zeroed buffer of the given shape.
func NewSilence(sampleRate, channels, frames int) (*Buffer, error) {
	if channels < 1 {
		return nil, ErrNoChannels
	}
	if frames < 0 {
		frames = 0
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return NewBuffer(sampleRate, data...)
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.channels) }
func (b *Buffer) Frames() int     { return b.frames }

// Channel returns the samples of channel c.
func (b *Buffer) Channel(c int) []float32 { return b.channels[c] }

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.frames) / float64(b.sampleRate)
}

// FrameAt converts a time in seconds to a frame index, flooring and
// clamping to [0, Frames()].
func (b *Buffer) FrameAt(seconds float64) int {
	f := seconds * float64(b.sampleRate)
	if f != f || f <= 0 {
		return 0
	}
	if f >= float64(b.frames) {
		return b.frames
	}

	return int(f)
}

// Source streams the buffer as interleaved samples.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b, end: b.frames}
}

// SourceRange streams frames [first, last) without copying them. Indices
// are clamped like Slice.
func (b *Buffer) SourceRange(first, last int) Source {
	first = min(max(first, 0), b.frames)
	last = min(max(last, first), b.frames)

	return &bufferSource{buf: b, pos: first, start: first, end: last}
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(channels=%d frames=%d rate=%d)", len(b.channels), b.frames, b.sampleRate)
}

type bufferSource struct {
	buf        *Buffer
	pos        int
	start, end int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.channels) }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }
func (s *bufferSource) Frames() int     { return s.end - s.start }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.buf.channels)
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= s.end {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, s.end-s.pos)
	for f := range frames {
		base := f * channels
		for c, data := range s.buf.channels {
			dst[base+c] = data[s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.end {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}

// ReadBuffer drains src into a new Buffer. A trailing partial frame is
// dropped. The source is not closed.
func ReadBuffer(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	capacity := 0
	if sized, ok := src.(Sized); ok && sized.Frames() > 0 {
		capacity = sized.Frames()
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, 0, capacity)
	}

	chunk := max(src.BufSize(), channels)
	chunk -= chunk % channels
	tmp := make([]float32, chunk)

	stalls := 0
	for {
		n, err := src.ReadSamples(tmp)
		frames := n / channels
		for f := range frames {
			base := f * channels
			for c := range channels {
				data[c] = append(data[c], tmp[base+c])
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			stalls++
			if stalls > 100 {
				return nil, io.ErrNoProgress
			}
			continue
		}
		stalls = 0
	}

	return NewBuffer(src.SampleRate(), data...)
}
