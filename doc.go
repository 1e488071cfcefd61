// SPDX-License-Identifier: EPL-2.0

// Package wavedit is the core of a waveform editor: load an audio file,
// draw it, select a range, play or loop it at another speed through a
// filter, trim it and export the result as 16-bit PCM WAV.
//
// This package wires the format decoders together and opens sessions.
// The work happens in the subpackages:
//
//   - audio: Buffer, Source, Trim, Resampler, MonoMixer and the decoder
//     Registry
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders;
//     formats/wav also writes WAV
//   - editor: Session, Selection, Viewport and the Transport state machine
//   - waveform: min/max peaks per pixel column
//   - render: offline rendering before export
//   - playback: a software editor.Engine
//   - device: a PortAudio output for the playback engine
//
// # Quick Start
//
//	engine, _ := playback.NewEngine(44100, 2, nil)
//	s, err := wavedit.OpenSession(ctx, engine, "take.wav")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.SelectRange(1.5, 4)
//	s.Trim()
//
//	out, _ := os.Create("trimmed.wav")
//	defer out.Close()
//	s.Export(ctx, out)
//
// # Supported Formats
//
// Reading: WAV (PCM 8/16/24/32 bit, extensible), MP3, Ogg Vorbis and AIFF.
// Writing: WAV, 16-bit PCM only.
//
// # Sample Conversion
//
// Samples are float32 in [-1, 1]. On export negative values are scaled by
// 32768 and the rest by 32767, truncating toward zero, so -1 and 1 map to
// the int16 limits and a decoded 16-bit file is written back unchanged.
package wavedit
