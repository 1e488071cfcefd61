// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized sample to 16-bit PCM.
//
// The sample is clamped to [-1, 1]. Negative values are scaled by 32768 and
// non-negative values by 32767, truncating toward zero, so -1 maps to
// math.MinInt16 and 1 maps to math.MaxInt16. NaN is written as silence.
func Float32ToInt16(x float32) int16 {
	v := float64(x)
	if math.IsNaN(v) {
		return 0
	}

	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}

	if v < 0 {
		return int16(v * 32768)
	}

	return int16(v * 32767)
}

// Int16ToFloat32 converts 16-bit PCM to a normalized sample using the same
// asymmetric scale as Float32ToInt16, so that
// Float32ToInt16(Int16ToFloat32(v)) == v for every v.
func Int16ToFloat32(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768
	}

	f := float32(float64(v) / 32767)
	// float32 rounding can land just below v/32767, and truncation would
	// then encode v-1.
	if float64(f)*32767 < float64(v) {
		f = math.Nextafter32(f, 1)
	}

	return f
}

// PCMToFloat32 normalizes a signed integer sample of the given bit depth to
// [-1, 1]. 16-bit samples go through Int16ToFloat32.
func PCMToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 16:
		return Int16ToFloat32(int16(v))
	case 8, 24, 32:
	default:
		bitDepth = 16
	}

	scale := float64(int64(1) << (bitDepth - 1))
	f := float64(v) / scale
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}

	return float32(f)
}
