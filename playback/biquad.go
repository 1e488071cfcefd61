// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"math"

	"github.com/ik5/wavedit/editor"
)

// minQ keeps alpha finite when a zero or negative Q is requested.
const minQ = 1e-4

// Biquad is a second order IIR filter with coefficients from the RBJ audio
// EQ cookbook. It filters interleaved frames in place and keeps separate
// state for every channel.
type Biquad struct {
	kind   editor.FilterType
	rate   float64
	gainDB float64

	// normalized by a0
	b0, b1, b2, a1, a2 float64

	x1, x2, y1, y2 []float64
}

// NewBiquad builds a filter of the given kind. gainDB only affects the
// shelving and peaking kinds; 0 makes them pass the signal unchanged.
func NewBiquad(kind editor.FilterType, sampleRate, channels int, freq, q, gainDB float64) *Biquad {
	f := &Biquad{
		kind:   kind,
		rate:   float64(sampleRate),
		gainDB: gainDB,
		x1:     make([]float64, channels),
		x2:     make([]float64, channels),
		y1:     make([]float64, channels),
		y2:     make([]float64, channels),
	}
	f.SetTap(freq, q)

	return f
}

func (f *Biquad) Kind() editor.FilterType { return f.kind }

// SetTap recomputes the coefficients for a new corner frequency and Q. The
// filter state is kept so a sweep does not click.
func (f *Biquad) SetTap(freq, q float64) {
	nyquist := f.rate / 2
	if !(freq > 0) {
		freq = 1
	}
	freq = min(freq, nyquist*0.999)
	if !(q > minQ) {
		q = minQ
	}

	w := 2 * math.Pi * freq / f.rate
	cosw := math.Cos(w)
	sinw := math.Sin(w)
	alpha := sinw / (2 * q)
	a := math.Pow(10, f.gainDB/40)
	sqrtA2alpha := 2 * math.Sqrt(a) * alpha

	var b0, b1, b2, a0, a1, a2 float64

	switch f.kind {
	case editor.FilterLowpass:
		b0 = (1 - cosw) / 2
		b1 = 1 - cosw
		b2 = (1 - cosw) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case editor.FilterHighpass:
		b0 = (1 + cosw) / 2
		b1 = -(1 + cosw)
		b2 = (1 + cosw) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case editor.FilterBandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case editor.FilterNotch:
		b0 = 1
		b1 = -2 * cosw
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case editor.FilterAllpass:
		b0 = 1 - alpha
		b1 = -2 * cosw
		b2 = 1 + alpha
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	case editor.FilterPeaking:
		b0 = 1 + alpha*a
		b1 = -2 * cosw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosw
		a2 = 1 - alpha/a
	case editor.FilterLowshelf:
		b0 = a * ((a + 1) - (a-1)*cosw + sqrtA2alpha)
		b1 = 2 * a * ((a - 1) - (a+1)*cosw)
		b2 = a * ((a + 1) - (a-1)*cosw - sqrtA2alpha)
		a0 = (a + 1) + (a-1)*cosw + sqrtA2alpha
		a1 = -2 * ((a - 1) + (a+1)*cosw)
		a2 = (a + 1) + (a-1)*cosw - sqrtA2alpha
	case editor.FilterHighshelf:
		b0 = a * ((a + 1) + (a-1)*cosw + sqrtA2alpha)
		b1 = -2 * a * ((a - 1) + (a+1)*cosw)
		b2 = a * ((a + 1) + (a-1)*cosw - sqrtA2alpha)
		a0 = (a + 1) - (a-1)*cosw + sqrtA2alpha
		a1 = 2 * ((a - 1) - (a+1)*cosw)
		a2 = (a + 1) - (a-1)*cosw - sqrtA2alpha
	default:
		b0, a0 = 1, 1
	}

	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1, f.a2 = a1/a0, a2/a0
}

// Process filters interleaved samples in place.
func (f *Biquad) Process(samples []float32) {
	channels := len(f.x1)
	if channels == 0 {
		return
	}

	for i, v := range samples {
		c := i % channels
		x0 := float64(v)
		y0 := f.b0*x0 + f.b1*f.x1[c] + f.b2*f.x2[c] - f.a1*f.y1[c] - f.a2*f.y2[c]

		f.x2[c], f.x1[c] = f.x1[c], x0
		f.y2[c], f.y1[c] = f.y1[c], y0

		samples[i] = float32(y0)
	}
}

// Reset clears the filter memory.
func (f *Biquad) Reset() {
	clear(f.x1)
	clear(f.x2)
	clear(f.y1)
	clear(f.y2)
}
