// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to float natively, so samples pass through unchanged. The
// channel count and rate come from the stream header.
//
//	f, _ := os.Open("voice.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadBuffer(src)
package vorbis
