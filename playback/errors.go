// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrInvalidFormat is returned for a non-positive rate or channel count.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrClosed is returned by Start and Open after Close.
	ErrClosed = errors.New("playback engine closed")

	// ErrAlreadyOpen is returned when an output is attached twice.
	ErrAlreadyOpen = errors.New("output already open")
)
