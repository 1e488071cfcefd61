// SPDX-License-Identifier: EPL-2.0

// Package audio holds decoded audio and the streaming primitives the editor
// is built on.
//
// It contains:
//   - Source, the streaming interface every decoder returns
//   - Buffer, an immutable in-memory copy of a decoded file
//   - Trim, which copies a time range of a Buffer into a new one
//   - Resampler and the varispeed variant used for playback speed
//   - MonoMixer for folding channels together on export
//   - Registry, mapping file extensions to decoders
//
// # Sources and Buffers
//
// Decoders stream interleaved float32 samples through Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// The editor needs random access, so a Source is normally drained once into
// a Buffer:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf, err := audio.ReadBuffer(src)
//
// A Buffer stores one slice per channel and never changes after it is built,
// so it can be shared freely between the waveform renderer, the playback
// engine and the exporter. Buffer.Source streams it back out interleaved.
//
// Sources that know their length up front implement Sized, which lets
// ReadBuffer allocate once.
//
// # Trimming
//
// Trim maps seconds to frames with floor(t*rate) on both ends and copies
// the half-open range:
//
//	clip, err := audio.Trim(buf, 1.5, 3.0)
//
// # Resampling
//
// The Resampler changes the sample rate using cubic interpolation:
//
//	r := audio.NewResampler(buf.Source(), 16000)
//
// NewVarispeed uses the same interpolation to play a source faster or
// slower while still reporting the original rate. Pitch follows speed.
//
//	fast := audio.NewVarispeed(buf.Source(), 1.5)
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0]. Conversions to and from
// integer PCM live in the utils package.
//
// # Error Handling
//
// ReadSamples returns io.EOF when the stream is done. It may return the
// last samples together with io.EOF:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
