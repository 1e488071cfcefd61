// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"sync"
	"testing"
	"time"

	"github.com/ik5/wavedit/audio"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Duration(seconds * float64(time.Second)))
}

type fakeRun struct {
	offset   float64
	duration float64
	params   Params
	onEnded  func()

	mu      sync.Mutex
	stopped bool
	freq, q float64
}

func (r *fakeRun) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

func (r *fakeRun) Stopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

func (r *fakeRun) SetFilterTap(freq, q float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.freq, r.q = freq, q
}

// End simulates the engine reaching the end of the run.
func (r *fakeRun) End() { r.onEnded() }

type fakeEngine struct {
	mu     sync.Mutex
	runs   []*fakeRun
	volume float64
	err    error
}

func (e *fakeEngine) Start(_ *audio.Buffer, offset, duration float64, p Params, onEnded func()) (Run, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		return nil, e.err
	}
	r := &fakeRun{offset: offset, duration: duration, params: p, onEnded: onEnded}
	e.runs = append(e.runs, r)
	return r, nil
}

func (e *fakeEngine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = v
}

func (e *fakeEngine) Runs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.runs)
}

func (e *fakeEngine) Last(t *testing.T) *fakeRun {
	t.Helper()

	e.mu.Lock()
	defer e.mu.Unlock()
	require.NotEmpty(t, e.runs, "no run started")
	return e.runs[len(e.runs)-1]
}

// silence returns a mono buffer of the given length at 100 Hz, so one
// second is 100 frames.
func silence(t *testing.T, seconds float64) *audio.Buffer {
	t.Helper()

	buf, err := audio.NewSilence(100, 1, int(seconds*100))
	require.NoError(t, err)
	return buf
}
