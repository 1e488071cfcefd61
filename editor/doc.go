// SPDX-License-Identifier: EPL-2.0

// Package editor is the waveform editor core: selection, viewport, transport
// and the Session that ties them to a working buffer.
//
// # Session
//
// A Session owns one working buffer at a time. Loading goes through an
// audio.Decoder, and the newest load always wins:
//
//	s := editor.New(engine, editor.WithWidth(800))
//	if err := s.LoadFile(ctx, registry, "take.wav"); err != nil {
//	    var decErr *editor.DecodeError
//	    if errors.As(err, &decErr) {
//	        // the file could not be decoded; the session is unchanged
//	    }
//	}
//
// Pointer input is given in canvas pixels and mapped through the Viewport:
//
//	s.BeginSelection(120)
//	s.ExtendSelection(340)
//	s.Play()        // plays the selection
//	s.Trim()        // keeps only the selection
//	s.Export(ctx, w)
//
// Operations on a session with nothing loaded do nothing and return no
// error.
//
// # Transport
//
// The transport has three states:
//
//	Stopped --Play--> Playing --Pause--> Paused --Play--> Playing
//	Playing, Paused --Stop--> Stopped
//	Playing --end of run--> Stopped, or Playing again at the loop start
//
// The playback position is computed, never accumulated. Seeking, or
// changing speed or filter type while playing, restarts the engine run at
// the current position.
//
// # Viewport
//
// The visible window is Duration/Zoom seconds wide, centered on the
// playback position and kept inside the buffer. Frame collects everything a
// display needs per refresh, and Run delivers frames on a ticker.
package editor
