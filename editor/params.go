// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"fmt"
	"math"
	"strings"
)

// FilterType selects the biquad filter inserted into the playback chain.
type FilterType int

const (
	FilterNone FilterType = iota
	FilterLowpass
	FilterHighpass
	FilterBandpass
	FilterNotch
	FilterLowshelf
	FilterHighshelf
	FilterPeaking
	FilterAllpass
)

var filterNames = [...]string{
	FilterNone:      "none",
	FilterLowpass:   "lowpass",
	FilterHighpass:  "highpass",
	FilterBandpass:  "bandpass",
	FilterNotch:     "notch",
	FilterLowshelf:  "lowshelf",
	FilterHighshelf: "highshelf",
	FilterPeaking:   "peaking",
	FilterAllpass:   "allpass",
}

func (f FilterType) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("FilterType(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilterType accepts the names returned by String, case-insensitively.
// The empty string means FilterNone.
func ParseFilterType(s string) (FilterType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterNone, nil
	}
	for i, name := range filterNames {
		if name == s {
			return FilterType(i), nil
		}
	}

	return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// FilterNames lists the accepted filter names in declaration order.
func FilterNames() []string {
	return append([]string(nil), filterNames[:]...)
}

// Params are the playback controls. Volume, FilterFrequency and FilterQ
// can change on a running playback; Speed and Filter need a restart, which
// the Transport performs itself.
type Params struct {
	Volume          float64
	Speed           float64
	Filter          FilterType
	FilterFrequency float64 // Hz
	FilterQ         float64
}

func DefaultParams() Params {
	return Params{
		Volume:          1,
		Speed:           1,
		Filter:          FilterNone,
		FilterFrequency: 1000,
		FilterQ:         1,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (p Params) Validate() error {
	switch {
	case !finite(p.Volume) || p.Volume < 0:
		return fmt.Errorf("%w: volume %v", ErrInvalidParams, p.Volume)
	case !finite(p.Speed) || p.Speed <= 0:
		return fmt.Errorf("%w: speed %v", ErrInvalidParams, p.Speed)
	case p.Filter < 0 || int(p.Filter) >= len(filterNames):
		return fmt.Errorf("%w: filter %v", ErrInvalidParams, p.Filter)
	case !finite(p.FilterFrequency) || p.FilterFrequency <= 0:
		return fmt.Errorf("%w: filter frequency %v", ErrInvalidParams, p.FilterFrequency)
	case !finite(p.FilterQ):
		return fmt.Errorf("%w: filter Q %v", ErrInvalidParams, p.FilterQ)
	}

	return nil
}

// needsRestart reports whether moving from p to next cannot be applied to a
// live playback run.
func (p Params) needsRestart(next Params) bool {
	return p.Speed != next.Speed || p.Filter != next.Filter
}
