// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/internal/audiotest"
)

func countFrames(src audio.Source) int {
	buf := make([]float32, 4096-4096%src.Channels())
	total := 0
	for {
		n, err := src.ReadSamples(buf)
		total += n / src.Channels()
		if err != nil {
			return total
		}
	}
}

// Example demonstrates loading a stream into a Buffer and trimming it.
func Example() {
	src := audiotest.NewSineSource(8000, 2, 16000, 440)

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(buf)
	fmt.Printf("Duration: %.2f s\n", buf.Duration())

	clip, err := audio.Trim(buf, 0.5, 1.25)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(clip)
	// Output:
	// Buffer(channels=2 frames=16000 rate=8000)
	// Duration: 2.00 s
	// Buffer(channels=2 frames=6000 rate=8000)
}

// ExampleNewResampler converts a one second stream to 16 kHz.
func ExampleNewResampler() {
	src := audiotest.NewSineSource(44100, 1, 44100, 440)
	r := audio.NewResampler(src, 16000)

	fmt.Printf("Rate: %d Hz\n", r.SampleRate())
	fmt.Printf("Frames: %d\n", countFrames(r))
	// Output:
	// Rate: 16000 Hz
	// Frames: 16000
}

// ExampleNewVarispeed plays a stream at double speed.
func ExampleNewVarispeed() {
	src := audiotest.NewSilentSource(8000, 1, 8000)
	v := audio.NewVarispeed(src, 2)

	frames := countFrames(v)
	fmt.Printf("Rate: %d Hz\n", v.SampleRate())
	fmt.Printf("Playback time: %.2f s\n", float64(frames)/float64(v.SampleRate()))
	// Output:
	// Rate: 8000 Hz
	// Playback time: 0.50 s
}

// ExampleNewMonoMixer folds a stereo stream to mono.
func ExampleNewMonoMixer() {
	src := audiotest.NewMockSource(8000, 2, 4, func(_ int, c int) float32 {
		if c == 0 {
			return 1
		}
		return 0
	})
	mono := audio.NewMonoMixer(src)

	buf := make([]float32, 4)
	n, err := mono.ReadSamples(buf)
	fmt.Println(buf[:n], err == io.EOF)
	// Output:
	// [0.5 0.5 0.5 0.5] true
}

type stubDecoder struct{}

func (stubDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSilentSource(8000, 1, 10), nil
}

// ExampleRegistry_ForPath picks a decoder from a file name.
func ExampleRegistry_ForPath() {
	reg := audio.NewRegistry()
	reg.Register(".WAV", stubDecoder{})

	if _, err := reg.ForPath("/tmp/take-3.wav"); err == nil {
		fmt.Println("wav: ok")
	}
	if _, err := reg.ForPath("notes.txt"); err != nil {
		fmt.Println("txt:", err)
	}
	fmt.Println(reg.Formats())
	// Output:
	// wav: ok
	// txt: unknown audio format
	// [wav]
}
