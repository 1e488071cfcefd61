// SPDX-License-Identifier: EPL-2.0

// Package playback is a software implementation of editor.Engine.
//
// Each run reads a window of an audio.Buffer, changes speed through
// audio.NewVarispeed, converts to the engine rate with audio.NewResampler
// when needed, passes through an optional Biquad and is mixed into the
// output with the engine volume. Sound is pulled: an Output such as the
// PortAudio device in package device calls Engine.Fill from its own
// callback.
//
// A run that reaches its end is removed by the Fill after the one that
// handed out its last frame. Its onEnded callback then runs on another
// goroutine, after the output latency when the Output implements Delayed,
// so callers may lock their own state from it. Stopped runs never signal.
package playback
