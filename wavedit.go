// SPDX-License-Identifier: EPL-2.0

package wavedit

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/editor"
	"github.com/ik5/wavedit/formats/aiff"
	"github.com/ik5/wavedit/formats/mp3"
	"github.com/ik5/wavedit/formats/vorbis"
	"github.com/ik5/wavedit/formats/wav"
)

// NewRegistry returns a registry holding every decoder in this module,
// keyed by the file extensions they accept.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

// DefaultRegistry is used by DecodeFile and OpenSession.
var DefaultRegistry = NewRegistry()

// Decode reads all of r through dec into memory.
func Decode(dec audio.Decoder, r io.Reader) (*audio.Buffer, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return audio.ReadBuffer(src)
}

// DecodeFile decodes path with the decoder registered for its extension.
func DecodeFile(path string) (*audio.Buffer, error) {
	dec, err := DefaultRegistry.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	buf, err := Decode(dec, f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return buf, nil
}

// OpenSession creates an editor session playing through engine and loads
// path into it.
func OpenSession(ctx context.Context, engine editor.Engine, path string, opts ...editor.Option) (*editor.Session, error) {
	s := editor.New(engine, opts...)
	if err := s.LoadFile(ctx, DefaultRegistry, path); err != nil {
		return nil, err
	}

	return s, nil
}
