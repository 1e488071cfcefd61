// SPDX-License-Identifier: EPL-2.0

package editor

import "time"

// Clock supplies the wall time the transport derives playback position from.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
