// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrNoChannels is returned when a buffer or source has no channels.
	ErrNoChannels = errors.New("audio has no channels")

	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")

	// ErrChannelLength is returned when channels differ in length.
	ErrChannelLength = errors.New("channels must have identical length")

	// ErrNoBuffer is returned when an operation needs a buffer and got nil.
	ErrNoBuffer = errors.New("no buffer")

	// ErrEmptyRange is returned when a trim range covers no frames.
	ErrEmptyRange = errors.New("range covers no frames")

	// ErrUnknownFormat is returned when no decoder is registered for a format.
	ErrUnknownFormat = errors.New("unknown audio format")
)
