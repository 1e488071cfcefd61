// SPDX-License-Identifier: EPL-2.0

// Package device plays audio through the default PortAudio output device.
// It satisfies playback.Output.
package device

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

var (
	// ErrNotOpen is returned by Close when no stream is running.
	ErrNotOpen = errors.New("device: output not open")

	ErrAlreadyOpen = errors.New("device: output already open")
)

// Output is a PortAudio stream on the default output device. The zero value
// uses PortAudio's preferred buffer size.
type Output struct {
	// FramesPerBuffer is the callback block size; 0 lets PortAudio choose.
	FramesPerBuffer int

	mu     sync.Mutex
	stream *portaudio.Stream
}

// Open initializes PortAudio and starts a float32 interleaved stream that
// calls fill for every block.
func (o *Output) Open(sampleRate, channels int, fill func(out []float32)) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stream != nil {
		return ErrAlreadyOpen
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), o.FramesPerBuffer, fill)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening output stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting output stream: %w", err)
	}

	o.stream = stream
	return nil
}

// Close stops the stream and releases PortAudio.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stream == nil {
		return ErrNotOpen
	}
	stream := o.stream
	o.stream = nil

	var errs []error
	if err := stream.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stopping output stream: %w", err))
	}
	if err := stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing output stream: %w", err))
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("terminating portaudio: %w", err))
	}

	return errors.Join(errs...)
}

// Latency is the output latency reported by the open stream, or 0 when no
// stream is open.
func (o *Output) Latency() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stream == nil {
		return 0
	}

	return o.stream.Info().OutputLatency
}

// DefaultSampleRate reports the preferred rate of the default output
// device.
func DefaultSampleRate() (int, error) {
	if err := portaudio.Initialize(); err != nil {
		return 0, fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return 0, fmt.Errorf("default output device: %w", err)
	}

	return int(dev.DefaultSampleRate), nil
}
