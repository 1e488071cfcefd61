// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// HeaderSize is the length of the canonical RIFF/WAVE header written here.
const HeaderSize = 44

// chunkSize is the number of samples converted per Write call.
const chunkSize = 8192

// header builds the 44-byte PCM 16-bit header for dataSize bytes of samples.
func header(sampleRate, channels int, dataSize uint32) []byte {
	const bitsPerSample = 16
	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	h := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(h[20:22], formatPCM)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

func checkLayout(sampleRate, channels int, samples int64) (uint32, error) {
	if channels < 1 || channels > math.MaxUint16 {
		return 0, ErrInvalidChannels
	}
	if sampleRate <= 0 || int64(sampleRate) > math.MaxUint32 {
		return 0, ErrInvalidRate
	}

	dataSize := samples * 2
	if dataSize > math.MaxUint32-36 {
		return 0, ErrTooLarge
	}

	return uint32(dataSize), nil
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file.
// len(samples) should be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	dataSize, err := checkLayout(sampleRate, channels, int64(len(samples)))
	if err != nil {
		return err
	}

	if _, err := w.Write(header(sampleRate, channels, dataSize)); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing wav samples: %w", err)
		}
	}

	return nil
}
