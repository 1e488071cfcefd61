// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/utils"
)

// EncodedSize is the number of bytes Encode writes for buf.
func EncodedSize(buf *audio.Buffer) int64 {
	if buf == nil {
		return HeaderSize
	}

	return HeaderSize + int64(buf.Frames())*int64(buf.Channels())*2
}

// Encode writes buf as a 16-bit PCM WAV with a 44-byte header. Samples are
// interleaved frame by frame and converted with utils.Float32ToInt16, so
// negative values scale by 32768, positive ones by 32767, and the result
// truncates toward zero. Out of range input is clamped.
//
// Encode returns the number of bytes written.
func Encode(w io.Writer, buf *audio.Buffer) (int64, error) {
	if buf == nil {
		return 0, audio.ErrNoBuffer
	}

	channels := buf.Channels()
	dataSize, err := checkLayout(buf.SampleRate(), channels, int64(buf.Frames())*int64(channels))
	if err != nil {
		return 0, err
	}

	var written int64
	n, err := w.Write(header(buf.SampleRate(), channels, dataSize))
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("writing wav header: %w", err)
	}

	framesPerChunk := max(chunkSize/channels, 1)
	out := make([]byte, min(buf.Frames(), framesPerChunk)*channels*2)

	for first := 0; first < buf.Frames(); first += framesPerChunk {
		last := min(first+framesPerChunk, buf.Frames())
		out = out[:(last-first)*channels*2]

		for c := range channels {
			data := buf.Channel(c)
			for f := first; f < last; f++ {
				off := ((f-first)*channels + c) * 2
				binary.LittleEndian.PutUint16(out[off:off+2], uint16(utils.Float32ToInt16(data[f])))
			}
		}

		n, err := w.Write(out)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("writing wav samples: %w", err)
		}
	}

	return written, nil
}
