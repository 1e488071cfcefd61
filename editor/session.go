// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/formats/wav"
	"github.com/ik5/wavedit/render"
	"github.com/ik5/wavedit/waveform"
)

// DefaultWidth is the canvas width used until SetWidth is called.
const DefaultWidth = 100

// Session is one open editor: the working buffer, the selection, the view
// and the transport. Every operation on an empty session is a no-op.
//
// Session is safe for concurrent use. It locks itself before the
// transport, never the other way around.
type Session struct {
	mu        sync.Mutex
	transport *Transport
	renderer  render.Renderer
	logger    *slog.Logger

	buf   *audio.Buffer
	sel   Selection
	zoom  float64
	width float64

	// bumped by every Load; only the newest load may install its buffer
	generation uint64
}

type options struct {
	clock    Clock
	logger   *slog.Logger
	width    int
	params   *Params
	renderer render.Renderer
}

// Option configures a Session.
type Option func(*options)

func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWidth sets the initial canvas width in pixels.
func WithWidth(w int) Option {
	return func(o *options) { o.width = w }
}

// WithParams sets the initial playback parameters. Invalid params are
// ignored in favor of DefaultParams.
func WithParams(p Params) Option {
	return func(o *options) { o.params = &p }
}

// WithRenderer sets the renderer used by Export. The default passes the
// buffer through unchanged.
func WithRenderer(r render.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// New returns an empty session playing through engine.
func New(engine Engine, opts ...Option) *Session {
	o := options{
		clock:    SystemClock{},
		logger:   slog.Default(),
		width:    DefaultWidth,
		renderer: render.Passthrough{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		transport: NewTransport(engine, o.clock, o.logger),
		renderer:  o.renderer,
		logger:    o.logger,
		zoom:      1,
		width:     float64(max(o.width, 1)),
	}
	if o.params != nil {
		if err := s.transport.SetParams(*o.params); err != nil {
			s.logger.Warn("ignoring initial playback params", "error", err)
		}
	}

	return s
}

// Transport exposes the session's transport.
func (s *Session) Transport() *Transport { return s.transport }

// Load decodes r and makes the result the working buffer, clearing the
// selection, zoom and transport.
//
// Decoding runs without holding the session. If another Load starts before
// this one finishes, this one returns ErrSuperseded and installs nothing.
// A decode failure is returned as a *DecodeError and leaves the session as
// it was.
func (s *Session) Load(ctx context.Context, dec audio.Decoder, r io.Reader) error {
	return s.load(ctx, dec, r, "")
}

// LoadFile opens path and loads it with the decoder registered for its
// extension.
func (s *Session) LoadFile(ctx context.Context, reg *audio.Registry, path string) error {
	dec, err := reg.ForPath(path)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return s.load(ctx, dec, f, path)
}

func (s *Session) load(ctx context.Context, dec audio.Decoder, r io.Reader, path string) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	buf, err := decode(ctx, dec, r)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		s.logger.Warn("load failed", "path", path, "error", err)
		return &DecodeError{Path: path, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("discarding superseded load", "path", path, "generation", gen)
		return ErrSuperseded
	}

	s.buf = buf
	s.sel.Clear()
	s.zoom = 1
	s.transport.Load(buf)

	s.logger.Info("loaded audio", "path", path,
		"channels", buf.Channels(), "rate", buf.SampleRate(),
		"frames", buf.Frames(), "duration", buf.Duration())

	return nil
}

func decode(ctx context.Context, dec audio.Decoder, r io.Reader) (*audio.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return buf, nil
}

// Unload drops the working buffer.
func (s *Session) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.buf = nil
	s.sel.Clear()
	s.zoom = 1
	s.transport.Load(nil)
}

// Buffer returns the working buffer, nil when nothing is loaded.
func (s *Session) Buffer() *audio.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf
}

func (s *Session) HasBuffer() bool {
	return s.Buffer() != nil
}

// Duration of the working buffer in seconds.
func (s *Session) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.durationLocked()
}

func (s *Session) durationLocked() float64 {
	if s.buf == nil {
		return 0
	}
	return s.buf.Duration()
}

// Viewport is the current mapping between canvas pixels and time.
func (s *Session) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewportLocked()
}

func (s *Session) viewportLocked() Viewport {
	return Viewport{
		Duration: s.durationLocked(),
		Zoom:     s.zoom,
		Center:   s.transport.CurrentTime(),
		Width:    s.width,
	}
}

// SetZoom sets the zoom factor. Values below 1 or not finite become 1.
func (s *Session) SetZoom(z float64) {
	if z < 1 || math.IsNaN(z) || math.IsInf(z, 0) {
		z = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.zoom = z
}

func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.zoom
}

// SetWidth records the canvas width in pixels.
func (s *Session) SetWidth(w int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = float64(max(w, 1))
}

// BeginSelection starts a selection at canvas column x.
func (s *Session) BeginSelection(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return
	}
	s.sel.Begin(s.viewportLocked().PixelToTime(x))
	s.transport.SetSelection(s.sel)
}

// ExtendSelection drags the selection end to canvas column x.
func (s *Session) ExtendSelection(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return
	}
	s.sel.Extend(s.viewportLocked().PixelToTime(x))
	s.transport.SetSelection(s.sel)
}

// SelectRange selects [a, b] in seconds.
func (s *Session) SelectRange(a, b float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return
	}
	s.sel = Range(a, b)
	s.transport.SetSelection(s.sel)
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sel.Clear()
	s.transport.SetSelection(s.sel)
}

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sel
}

// Click seeks to the time under canvas column x.
func (s *Session) Click(x float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return nil
	}
	return s.transport.Seek(s.viewportLocked().PixelToTime(x))
}

func (s *Session) Play() error           { return s.transport.Play() }
func (s *Session) Pause()                { s.transport.Pause() }
func (s *Session) Stop()                 { s.transport.Stop() }
func (s *Session) Toggle() error         { return s.transport.Toggle() }
func (s *Session) Seek(t float64) error  { return s.transport.Seek(t) }
func (s *Session) Nudge(d float64) error { return s.transport.Nudge(d) }
func (s *Session) SetLoop(on bool)       { s.transport.SetLoop(on) }
func (s *Session) ToggleLoop() bool      { return s.transport.ToggleLoop() }
func (s *Session) Loop() bool            { return s.transport.Loop() }
func (s *Session) Params() Params        { return s.transport.Params() }
func (s *Session) State() State          { return s.transport.State() }
func (s *Session) CurrentTime() float64  { return s.transport.CurrentTime() }

func (s *Session) SetParams(p Params) error { return s.transport.SetParams(p) }

// Trim replaces the working buffer with the selected range, clears the
// selection and stops playback at 0. It reports false and changes nothing
// when there is no buffer or no usable selection.
func (s *Session) Trim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return false
	}
	a, b, ok := s.sel.Clamped(s.buf.Duration())
	if !ok {
		return false
	}

	trimmed, err := audio.Trim(s.buf, a, b)
	if err != nil {
		s.logger.Debug("trim skipped", "start", a, "end", b, "error", err)
		return false
	}

	s.buf = trimmed
	s.sel.Clear()
	s.transport.Load(trimmed)

	s.logger.Info("trimmed", "start", a, "end", b, "frames", trimmed.Frames())
	return true
}

// Selected returns a copy of the selected range, or the whole buffer when
// there is no usable selection. ok is false when nothing is loaded.
func (s *Session) Selected() (*audio.Buffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return selected(s.buf, s.sel)
}

func selected(buf *audio.Buffer, sel Selection) (*audio.Buffer, bool) {
	if buf == nil {
		return nil, false
	}

	a, b, ok := sel.Clamped(buf.Duration())
	if !ok {
		return buf, true
	}

	return buf.Slice(buf.FrameAt(a), buf.FrameAt(b)), true
}

// Export renders the selected range, or everything, and writes it to w as
// WAV. The buffer and selection are captured when Export is called, so
// edits made while it runs do not affect the output. It writes nothing
// when no buffer is loaded.
func (s *Session) Export(ctx context.Context, w io.Writer) (int64, error) {
	s.mu.Lock()
	buf, ok := selected(s.buf, s.sel)
	renderer := s.renderer
	s.mu.Unlock()

	if !ok {
		return 0, nil
	}

	out, err := renderer.Render(ctx, buf)
	if err != nil {
		return 0, fmt.Errorf("rendering export: %w", err)
	}

	n, err := wav.Encode(w, out)
	if err != nil {
		return n, fmt.Errorf("encoding export: %w", err)
	}

	s.logger.Info("exported", "frames", out.Frames(), "channels", out.Channels(),
		"rate", out.SampleRate(), "bytes", n)
	return n, nil
}

// Draw renders the visible part of channel 0 onto surface.
func (s *Session) Draw(surface waveform.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		surface.Clear()
		return
	}

	offset := s.buf.FrameAt(s.viewportLocked().Start())
	waveform.Draw(surface, s.buf.Channel(0), offset, s.zoom)
}

// Close stops playback.
func (s *Session) Close() error {
	s.transport.Stop()
	return nil
}
