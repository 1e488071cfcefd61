// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// # Decoding
//
// Decoder accepts integer PCM files at 8, 16, 24 or 32 bits per sample,
// with any channel count and sample rate. Parsing is done by
// github.com/go-audio/wav, which needs to seek, so readers that are not
// io.ReadSeeker are buffered in memory first.
//
//	f, _ := os.Open("take.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadBuffer(src)
//
// Floating point WAV files are rejected with ErrUnsupportedCodec.
//
// # Encoding
//
// Encode writes an audio.Buffer as 16-bit PCM behind a fixed 44-byte
// header:
//
//	offset  size  field
//	0       4     "RIFF"
//	4       4     36 + data size
//	8       4     "WAVE"
//	12      4     "fmt "
//	16      4     16
//	20      2     1 (PCM)
//	22      2     channels
//	24      4     sample rate
//	28      4     byte rate = rate * channels * 2
//	32      2     block align = channels * 2
//	34      2     16
//	36      4     "data"
//	40      4     data size = frames * channels * 2
//
// Sample conversion is asymmetric. Negative samples are multiplied by 32768
// and positive ones by 32767, then truncated toward zero, so -1.0 maps to
// -32768 and 1.0 to 32767. Decoding a file written by Encode and encoding it
// again gives identical bytes.
//
// WriteWAV16 writes samples that are already 16-bit integers.
package wav
