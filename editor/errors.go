// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams is returned when playback parameters are out of range.
	ErrInvalidParams = errors.New("invalid playback parameters")

	// ErrUnknownFilter is returned when parsing an unknown filter name.
	ErrUnknownFilter = errors.New("unknown filter type")

	// ErrSuperseded is returned by a load that finished after a newer load
	// was started. Nothing is installed.
	ErrSuperseded = errors.New("load superseded by a newer load")
)

// DecodeError reports that an input could not be turned into a buffer.
// The session state is unchanged when it is returned.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decoding audio: %v", e.Err)
	}
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
