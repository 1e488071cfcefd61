// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo, so sources from this package report
// two channels even for mono files. Samples are normalized with
// utils.Int16ToFloat32, which keeps them on the same grid as WAV input.
//
//	f, _ := os.Open("song.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadBuffer(src)
//
// When the input is an io.Seeker go-mp3 knows the stream length up front
// and the source reports it through audio.Sized.
package mp3
