// SPDX-License-Identifier: EPL-2.0

package editor

import "github.com/ik5/wavedit/audio"

// ToEnd as a run duration plays to the end of the buffer.
const ToEnd = -1.0

// Engine produces sound for the transport.
type Engine interface {
	// Start plays buf from offset seconds for duration seconds of buffer
	// content, or to the end when duration is negative. Params are fixed
	// for the life of the run except for the filter taps.
	//
	// onEnded is called at most once, only when the run finishes on its
	// own, and never from inside Start or Run.Stop. It may be called from
	// any goroutine.
	Start(buf *audio.Buffer, offset, duration float64, p Params, onEnded func()) (Run, error)

	// SetVolume changes the output gain of every run, live.
	SetVolume(v float64)
}

// Run is one playback started by an Engine.
type Run interface {
	// Stop halts the run. It does not wait for onEnded and suppresses it.
	Stop()

	// SetFilterTap retunes the run's filter without restarting it.
	SetFilterTap(frequency, q float64)
}
