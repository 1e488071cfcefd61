// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ik5/wavedit/audio"
)

// State of the transport.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// loopEpsilon absorbs timer granularity when deciding whether a finished
// run reached the loop point.
const loopEpsilon = 0.01

// Transport is the play/pause/stop/seek state machine.
//
// Position is never counted. While playing it is derived from the wall
// clock: the offset the run started at plus elapsed wall time scaled by the
// playback speed. Any operation that changes speed or offset starts a new
// run with a fresh anchor, so the formula never references a stale start.
//
// Transport is safe for concurrent use. Engines report natural ends from
// their own goroutines.
type Transport struct {
	mu     sync.Mutex
	engine Engine
	clock  Clock
	logger *slog.Logger

	buf    *audio.Buffer
	sel    Selection
	params Params
	loop   bool

	state       State
	pauseOffset float64

	// valid while Playing
	run          Run
	runID        uint64
	anchorWall   time.Time
	anchorOffset float64
}

// NewTransport returns a stopped transport with no buffer. A nil clock
// means SystemClock and a nil logger means slog.Default().
func NewTransport(engine Engine, clock Clock, logger *slog.Logger) *Transport {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Transport{
		engine: engine,
		clock:  clock,
		logger: logger,
		params: DefaultParams(),
	}
}

func (t *Transport) duration() float64 {
	if t.buf == nil {
		return 0
	}
	return t.buf.Duration()
}

// Load installs buf and resets to Stopped at 0 with no selection. A nil
// buf unloads.
func (t *Transport) Load(buf *audio.Buffer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopRunLocked()
	t.buf = buf
	t.sel.Clear()
	t.pauseOffset = 0
	t.setStateLocked(Stopped)
}

func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

func (t *Transport) PauseOffset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.pauseOffset
}

// CurrentTime is the playback position in seconds, within [0, duration].
func (t *Transport) CurrentTime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.currentLocked()
}

func (t *Transport) currentLocked() float64 {
	if t.buf == nil {
		return 0
	}
	if t.state != Playing {
		return t.pauseOffset
	}

	elapsed := t.clock.Now().Sub(t.anchorWall).Seconds()
	return clamp(t.anchorOffset+elapsed*t.params.Speed, 0, t.duration())
}

func (t *Transport) SetSelection(sel Selection) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sel = sel
}

func (t *Transport) Params() Params {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.params
}

func (t *Transport) Loop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.loop
}

func (t *Transport) SetLoop(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loop = on
}

// ToggleLoop flips looping and returns the new setting.
func (t *Transport) ToggleLoop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loop = !t.loop
	return t.loop
}

// Play starts playback from the pause offset. With a valid selection,
// playback starts no earlier than the selection start and ends at the
// selection end. It does nothing when already playing or nothing is loaded.
func (t *Transport) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.playLocked()
}

func (t *Transport) playLocked() error {
	if t.buf == nil || t.state == Playing {
		return nil
	}

	startAt := t.pauseOffset
	duration := ToEnd
	if a, b, ok := t.sel.Clamped(t.duration()); ok {
		if t.pauseOffset < a {
			startAt = a
			t.pauseOffset = a
		}
		duration = max(b-startAt, 0)
	}

	t.runID++
	id := t.runID
	run, err := t.engine.Start(t.buf, startAt, duration, t.params, func() { t.ended(id) })
	if err != nil {
		return fmt.Errorf("starting playback at %.3fs: %w", startAt, err)
	}

	t.run = run
	t.anchorWall = t.clock.Now()
	t.anchorOffset = startAt
	t.setStateLocked(Playing)

	return nil
}

// Pause keeps the current position for a later Play.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Playing {
		return
	}

	t.pauseOffset = t.currentLocked()
	t.stopRunLocked()
	t.setStateLocked(Paused)
}

// Stop halts playback and rewinds to the selection start, or 0.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
}

func (t *Transport) stopLocked() {
	t.stopRunLocked()
	t.pauseOffset = 0
	if a, _, ok := t.sel.Clamped(t.duration()); ok {
		t.pauseOffset = a
	}
	t.setStateLocked(Stopped)
}

// Toggle pauses when playing and plays otherwise.
func (t *Transport) Toggle() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == Playing {
		t.pauseOffset = t.currentLocked()
		t.stopRunLocked()
		t.setStateLocked(Paused)
		return nil
	}

	return t.playLocked()
}

// Seek moves the position to pos, clamped to the buffer. While playing the
// run is restarted at the new position.
func (t *Transport) Seek(pos float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.seekLocked(pos)
}

// Nudge seeks relative to the current position.
func (t *Transport) Nudge(delta float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.seekLocked(t.currentLocked() + delta)
}

func (t *Transport) seekLocked(pos float64) error {
	if t.buf == nil {
		return nil
	}
	if math.IsNaN(pos) {
		pos = 0
	}

	t.pauseOffset = clamp(pos, 0, t.duration())
	if t.state != Playing {
		return nil
	}

	return t.restartLocked()
}

// restartLocked replaces the running playback with a new one starting at
// pauseOffset.
func (t *Transport) restartLocked() error {
	t.stopRunLocked()
	t.state = Stopped
	if err := t.playLocked(); err != nil {
		t.setStateLocked(Stopped)
		return err
	}

	return nil
}

// SetParams applies new playback parameters. A speed or filter type change
// restarts a running playback at its current position; volume and filter
// taps are applied to it live.
func (t *Transport) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.params
	if t.state != Playing {
		t.params = p
		return nil
	}

	if prev.needsRestart(p) {
		// sample the position at the old speed before switching
		t.pauseOffset = t.currentLocked()
		t.params = p
		t.logger.Debug("restarting playback for new params",
			"speed", p.Speed, "filter", p.Filter, "at", t.pauseOffset)
		return t.restartLocked()
	}

	t.params = p
	if prev.Volume != p.Volume {
		t.engine.SetVolume(p.Volume)
	}
	if prev.FilterFrequency != p.FilterFrequency || prev.FilterQ != p.FilterQ {
		t.run.SetFilterTap(p.FilterFrequency, p.FilterQ)
	}

	return nil
}

// ended handles a natural end of run id.
func (t *Transport) ended(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Playing || id != t.runID {
		t.logger.Debug("ignoring stale end of playback", "run", id, "current", t.runID)
		return
	}

	loopStart, endT := 0.0, t.duration()
	if a, b, ok := t.sel.Clamped(t.duration()); ok {
		loopStart, endT = a, b
	}

	if t.loop && t.currentLocked() >= endT-loopEpsilon {
		t.pauseOffset = loopStart
		if err := t.restartLocked(); err != nil {
			t.logger.Warn("loop restart failed", "error", err)
			t.pauseOffset = endT
		}
		return
	}

	t.run = nil
	t.pauseOffset = endT
	t.setStateLocked(Stopped)
}

func (t *Transport) stopRunLocked() {
	if t.run == nil {
		return
	}

	t.run.Stop()
	t.run = nil
	// invalidate the end signal of the run just stopped
	t.runID++
}

func (t *Transport) setStateLocked(s State) {
	if t.state == s {
		return
	}

	t.logger.Debug("transport", "from", t.state, "to", s, "at", t.pauseOffset)
	t.state = s
}
