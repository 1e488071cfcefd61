// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/editor"
)

// Output is a device that pulls audio from a fill callback. fill receives
// interleaved float32 samples to overwrite and may be called from any
// goroutine until Close returns.
type Output interface {
	Open(sampleRate, channels int, fill func(out []float32)) error
	Close() error
}

// Delayed is implemented by outputs that queue audio before it is heard.
// Latency is the time between a fill returning and its first frame playing.
type Delayed interface {
	Latency() time.Duration
}

// Engine mixes playback runs into a fixed output format. It implements
// editor.Engine. Audio is produced only when Fill is called, either by an
// attached Output or directly.
type Engine struct {
	mu       sync.Mutex
	rate     int
	channels int
	volume   float64
	voices   []*voice
	out      Output
	latency  time.Duration
	closed   bool
	logger   *slog.Logger
}

var _ editor.Engine = (*Engine)(nil)

// NewEngine returns an engine producing sampleRate Hz with channels
// interleaved channels. A nil logger means slog.Default().
func NewEngine(sampleRate, channels int, logger *slog.Logger) (*Engine, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, sampleRate, channels)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		rate:     sampleRate,
		channels: channels,
		volume:   1,
		logger:   logger,
	}, nil
}

func (e *Engine) SampleRate() int { return e.rate }
func (e *Engine) Channels() int   { return e.channels }

// Open attaches out and starts it pulling from Fill.
func (e *Engine) Open(out Output) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.out != nil {
		return ErrAlreadyOpen
	}

	if err := out.Open(e.rate, e.channels, e.Fill); err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	e.out = out
	if d, ok := out.(Delayed); ok {
		e.latency = max(d.Latency(), 0)
	}

	e.logger.Debug("output opened", "rate", e.rate, "channels", e.channels, "latency", e.latency)
	return nil
}

// Close drops every run without signalling them and closes the output.
func (e *Engine) Close() error {
	e.mu.Lock()
	out := e.out
	voices := e.voices
	e.out = nil
	e.latency = 0
	e.voices = nil
	e.closed = true
	e.mu.Unlock()

	for _, v := range voices {
		v.stopped.Store(true)
		v.src.Close()
	}

	// closing may wait for a fill in progress, so it runs unlocked
	if out != nil {
		if err := out.Close(); err != nil {
			return fmt.Errorf("closing output: %w", err)
		}
	}

	return nil
}

// SetVolume sets the gain applied to every run. Negative and NaN values
// become 0.
func (e *Engine) SetVolume(v float64) {
	if !(v >= 0) || math.IsInf(v, 1) {
		v = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.volume = v
}

func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.volume
}

// Active is the number of runs still producing sound.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.voices)
}

// Start implements editor.Engine. The run reads buf directly; buffers are
// never modified so no copy is made. p.Volume becomes the engine volume.
func (e *Engine) Start(buf *audio.Buffer, offset, duration float64, p editor.Params, onEnded func()) (editor.Run, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	first := buf.FrameAt(offset)
	last := buf.Frames()
	if duration >= 0 {
		last = buf.FrameAt(offset + duration)
	}

	var src audio.Source = buf.SourceRange(first, last)
	if p.Speed != 1 {
		src = audio.NewVarispeed(src, p.Speed)
	}
	if src.SampleRate() != e.rate {
		src = audio.NewResampler(src, e.rate)
	}

	v := &voice{
		engine:   e,
		src:      src,
		channels: src.Channels(),
		onEnded:  onEnded,
	}
	if p.Filter != editor.FilterNone {
		v.filter = NewBiquad(p.Filter, e.rate, v.channels, p.FilterFrequency, p.FilterQ, 0)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}
	e.volume = p.Volume
	e.voices = append(e.voices, v)

	e.logger.Debug("run started", "offset", offset, "duration", duration,
		"frames", last-first, "speed", p.Speed, "filter", p.Filter)
	return v, nil
}

// Fill overwrites dst with the mix of every active run. A run whose source
// ran dry during one fill is removed on the next, once its last block has
// been handed out, and its onEnded is called after the output latency on
// another goroutine.
func (e *Engine) Fill(dst []float32) {
	clear(dst)

	e.mu.Lock()
	defer e.mu.Unlock()

	frames := len(dst) / e.channels
	if frames == 0 {
		return
	}
	out := dst[:frames*e.channels]
	gain := float32(e.volume)

	live := e.voices[:0]
	for _, v := range e.voices {
		if v.drained {
			v.finish(e.latency)
			continue
		}
		if err := v.mix(out, e.channels, gain); err != nil {
			if !errors.Is(err, io.EOF) {
				e.logger.Warn("run failed", "error", err)
			}
			v.drained = true
		}
		live = append(live, v)
	}
	clear(e.voices[len(live):])
	e.voices = live
}

func (e *Engine) remove(v *voice) bool {
	for i, cur := range e.voices {
		if cur == v {
			e.voices = append(e.voices[:i], e.voices[i+1:]...)
			return true
		}
	}

	return false
}

// voice is one run inside the engine.
type voice struct {
	engine   *Engine
	src      audio.Source
	channels int
	filter   *Biquad
	onEnded  func()
	tmp      []float32
	drained  bool

	stopped atomic.Bool
}

// Stop implements editor.Run.
func (v *voice) Stop() {
	if v.stopped.Swap(true) {
		return
	}

	e := v.engine
	e.mu.Lock()
	removed := e.remove(v)
	e.mu.Unlock()

	if removed {
		v.src.Close()
	}
}

// SetFilterTap implements editor.Run.
func (v *voice) SetFilterTap(freq, q float64) {
	e := v.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if v.filter != nil {
		v.filter.SetTap(freq, q)
	}
}

// mix adds up to len(out)/outCh frames of the run to out. It returns
// io.EOF once the run has nothing left.
func (v *voice) mix(out []float32, outCh int, gain float32) error {
	frames := len(out) / outCh
	need := frames * v.channels
	if cap(v.tmp) < need {
		v.tmp = make([]float32, need)
	}
	tmp := v.tmp[:need]

	got := 0
	var err error
	for got < need && err == nil {
		var n int
		n, err = v.src.ReadSamples(tmp[got:])
		got += n - n%v.channels
		if n == 0 && err == nil {
			break
		}
	}
	tmp = tmp[:got]

	if v.filter != nil {
		v.filter.Process(tmp)
	}

	for f := range got / v.channels {
		in := tmp[f*v.channels : (f+1)*v.channels]
		o := out[f*outCh : (f+1)*outCh]

		if outCh == 1 && v.channels > 1 {
			var sum float32
			for _, s := range in {
				sum += s
			}
			o[0] += sum / float32(v.channels) * gain
			continue
		}
		for c := range o {
			o[c] += in[c%v.channels] * gain
		}
	}

	return err
}

// finish closes the source and reports a natural end after delay unless
// the run is stopped or the engine closed first. Called with the engine
// locked; the report itself locks it again.
func (v *voice) finish(delay time.Duration) {
	v.src.Close()
	if v.onEnded == nil {
		v.stopped.Store(true)
		return
	}

	fire := func() {
		v.engine.mu.Lock()
		closed := v.engine.closed
		v.engine.mu.Unlock()

		if !closed && !v.stopped.Swap(true) {
			v.onEnded()
		}
	}
	if delay <= 0 {
		go fire()
		return
	}
	time.AfterFunc(delay, fire)
}
