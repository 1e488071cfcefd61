// SPDX-License-Identifier: EPL-2.0

// Package render produces the final buffer handed to the encoder on export.
package render

import (
	"context"
	"fmt"

	"github.com/ik5/wavedit/audio"
)

// Renderer turns an edited buffer into the buffer that gets written out.
type Renderer interface {
	Render(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error)
}

// Passthrough renders a buffer as is.
type Passthrough struct{}

func (Passthrough) Render(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return buf, nil
}

// Options controls an Offline render.
type Options struct {
	// SampleRate of the output. Zero keeps the input rate.
	SampleRate int
	// Mono folds all channels into one.
	Mono bool
}

// Offline converts rate and channel layout by streaming the buffer through
// the audio package's MonoMixer and Resampler.
type Offline struct {
	opts Options
}

// New returns an Offline renderer, or Passthrough when opts change nothing.
func New(opts Options) Renderer {
	if opts.SampleRate <= 0 && !opts.Mono {
		return Passthrough{}
	}

	return &Offline{opts: opts}
}

func (o *Offline) Render(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}

	mono := o.opts.Mono && buf.Channels() > 1
	resample := o.opts.SampleRate > 0 && o.opts.SampleRate != buf.SampleRate()
	if !mono && !resample {
		return Passthrough{}.Render(ctx, buf)
	}

	var src audio.Source = buf.Source()
	if mono {
		src = audio.NewMonoMixer(src)
	}
	if resample {
		src = audio.NewResampler(src, o.opts.SampleRate)
	}

	out, err := audio.ReadBuffer(&ctxSource{Source: src, ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("rendering %v: %w", buf, err)
	}

	return out, nil
}

// ctxSource stops a stream once ctx is done.
type ctxSource struct {
	audio.Source
	ctx context.Context
}

func (s *ctxSource) ReadSamples(dst []float32) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.Source.ReadSamples(dst)
}

// Frames forwards the length hint so ReadBuffer can allocate once.
func (s *ctxSource) Frames() int {
	if sized, ok := s.Source.(audio.Sized); ok {
		return sized.Frames()
	}
	return 0
}
