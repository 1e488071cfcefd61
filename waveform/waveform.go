// SPDX-License-Identifier: EPL-2.0

// Package waveform reduces samples to one min/max pair per pixel column and
// turns those pairs into line segments for a drawing surface.
package waveform

import "math"

// Peak is the sample range of one pixel column.
type Peak struct {
	Min, Max float32
}

// Segment is a vertical line in column X from Y1 to Y2, Y growing downward.
type Segment struct {
	X      int
	Y1, Y2 float64
}

// Surface is anything the waveform can be drawn on.
type Surface interface {
	// Size reports the drawable area in pixels.
	Size() (width, height int)
	Clear()
	DrawSegments(segs []Segment)
}

// SamplesPerPixel is the column width in samples for n samples shown at
// zoom z over width columns. It is never below 1.
func SamplesPerPixel(n, width int, zoom float64) int {
	if zoom < 1 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		zoom = 1
	}
	if width <= 0 {
		return 1
	}

	return max(1, int(math.Floor(float64(n)/zoom/float64(width))))
}

// Peaks downsamples samples for a canvas width columns wide at zoom. Column
// x covers samples [x*spp, (x+1)*spp). Columns stop at the end of the data,
// so the result may be shorter than width. It returns nil when there is
// nothing to draw.
func Peaks(samples []float32, width int, zoom float64) []Peak {
	return PeaksAt(samples, 0, width, zoom)
}

// PeaksAt is Peaks with the first column starting at sample offset. The
// column width still depends on the whole length of samples, so a zoomed
// view scrolls without changing scale.
func PeaksAt(samples []float32, offset, width int, zoom float64) []Peak {
	n := len(samples)
	if n == 0 || width <= 0 {
		return nil
	}
	offset = min(max(offset, 0), n)

	spp := SamplesPerPixel(n, width, zoom)
	peaks := make([]Peak, 0, min(width, (n-offset+spp-1)/spp))

	for x := range width {
		lo := offset + x*spp
		if lo >= n {
			break
		}
		hi := min(lo+spp, n)

		p := Peak{Min: samples[lo], Max: samples[lo]}
		for _, v := range samples[lo+1 : hi] {
			if v < p.Min {
				p.Min = v
			}
			if v > p.Max {
				p.Max = v
			}
		}
		peaks = append(peaks, p)
	}

	return peaks
}

// Segments converts peaks into lines on a canvas height pixels tall. Full
// scale reaches 90% of the half height.
func Segments(peaks []Peak, height int) []Segment {
	if len(peaks) == 0 {
		return nil
	}

	mid := float64(height) / 2
	amp := mid * 0.9

	segs := make([]Segment, len(peaks))
	for x, p := range peaks {
		segs[x] = Segment{
			X:  x,
			Y1: mid + float64(p.Min)*amp,
			Y2: mid + float64(p.Max)*amp,
		}
	}

	return segs
}

// Draw clears s and draws samples starting at offset. Empty input only
// clears.
func Draw(s Surface, samples []float32, offset int, zoom float64) {
	s.Clear()

	width, height := s.Size()
	segs := Segments(PeaksAt(samples, offset, width, zoom), height)
	if len(segs) > 0 {
		s.DrawSegments(segs)
	}
}
