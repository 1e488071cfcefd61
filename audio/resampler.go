// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
)

// Resampler streams from src at a different rate using Catmull-Rom cubic
// interpolation. It works on interleaved samples and preserves the channel
// count. When it consumes more than one source frame per output frame a
// one-pole low-pass is applied to the input to soften aliasing.
type Resampler struct {
	src      Source
	rate     int // reported output rate
	channels int

	// output frame k reads source position k*num/den, kept as an exact
	// ratio so long streams do not drift
	num, den int64
	out      int64
	cur      int64 // source index held in hist[1]

	// hist[0] = t-1, hist[1] = t0, hist[2] = t+1, hist[3] = t+2
	hist [4][]float32
	// real frames available from hist[1] onwards; the rest repeat the edge
	ahead  int
	primed bool

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	smooth bool
	warm   bool
	alpha  float32
	state  []float32
}

// NewResampler converts src to dstRate. A non-positive dstRate keeps the
// source rate.
func NewResampler(src Source, dstRate int) *Resampler {
	if dstRate <= 0 {
		dstRate = src.SampleRate()
	}

	return newResampler(src, dstRate, int64(src.SampleRate()), int64(dstRate))
}

// NewVarispeed plays src speed times faster (or slower, for speed < 1) by
// resampling while still reporting the source rate, the way tape varispeed
// shifts pitch along with tempo.
func NewVarispeed(src Source, speed float64) *Resampler {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		speed = 1
	}

	const den = 1 << 16

	return newResampler(src, src.SampleRate(), max(int64(math.Round(speed*den)), 1), den)
}

func newResampler(src Source, rate int, num, den int64) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		rate:     rate,
		channels: channels,
		num:      num,
		den:      den,
		in:       make([]float32, max(4096-4096%channels, channels)),
		smooth:   num > den,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Frames estimates the output length when the source knows its own.
func (r *Resampler) Frames() int {
	sized, ok := r.src.(Sized)
	if !ok {
		return 0
	}

	return int((int64(sized.Frames())*r.den + r.num - 1) / r.num)
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}

	return nil
}

// readFrame copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	stalls := 0
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("resampler source: %w", err)
		}

		if r.inLen == 0 && !r.srcEOF {
			stalls++
			if stalls > 100 {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.smooth {
		if !r.warm {
			// start the filter from the first frame instead of from silence
			copy(r.state, dst)
			r.warm = true
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.hist[1])
	if err != nil || !ok {
		return err
	}
	copy(r.hist[0], r.hist[1])
	r.ahead = 1

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
			continue
		}
		r.ahead++
	}

	return nil
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() error {
	oldest := r.hist[0]
	r.hist[0], r.hist[1], r.hist[2] = r.hist[1], r.hist[2], r.hist[3]
	r.hist[3] = oldest
	if r.ahead > 0 {
		r.ahead--
	}

	ok, err := r.readFrame(r.hist[3])
	if err != nil {
		return err
	}
	if ok {
		r.ahead++
	} else {
		copy(r.hist[3], r.hist[2])
	}

	return nil
}

// ReadSamples produces dst samples at the output rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst)/r.channels {
		target := r.out * r.num
		idx := target / r.den
		for r.cur < idx {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
			r.cur++
		}

		if r.ahead < 1 {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(target%r.den) / float32(r.den)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = cubic(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.out++
	}

	return written * r.channels, nil
}

// cubic is a Catmull-Rom spline between y1 (x=0) and y2 (x=1).
func cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}
