// SPDX-License-Identifier: EPL-2.0

package audio

// Trim returns a new buffer holding the frames of buf between start and end
// seconds. The frame range is [floor(start*rate), floor(end*rate)), clamped
// to the buffer, and samples are copied verbatim. buf is left untouched.
func Trim(buf *Buffer, start, end float64) (*Buffer, error) {
	if buf == nil {
		return nil, ErrNoBuffer
	}
	if start > end {
		start, end = end, start
	}

	first := buf.FrameAt(start)
	last := buf.FrameAt(end)
	if last <= first {
		return nil, ErrEmptyRange
	}

	return buf.Slice(first, last), nil
}

// Slice copies frames [first, last) into a new buffer. Indices are clamped
// to the buffer; an inverted range yields an empty buffer.
func (b *Buffer) Slice(first, last int) *Buffer {
	first = min(max(first, 0), b.frames)
	last = min(max(last, first), b.frames)

	data := make([][]float32, len(b.channels))
	for c, ch := range b.channels {
		data[c] = make([]float32, last-first)
		copy(data[c], ch[first:last])
	}

	return &Buffer{
		channels:   data,
		sampleRate: b.sampleRate,
		frames:     last - first,
	}
}
