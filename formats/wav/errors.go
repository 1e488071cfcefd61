// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile       = errors.New("not a WAV file")
	ErrUnsupportedCodec = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedDepth = errors.New("unsupported WAV bit depth")
	ErrInvalidChannels  = errors.New("WAV channel count must be positive")
	ErrInvalidRate      = errors.New("WAV sample rate must be positive")
	ErrTooLarge         = errors.New("audio too large for a WAV file")
)
