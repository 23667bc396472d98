package core

import "math"

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Zero maps to -Inf, negative input to NaN.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DurationToSamples converts a duration in milliseconds to a whole number
// of samples at sampleRate. The result is never below minSamples.
func DurationToSamples(ms, sampleRate float64, minSamples int) int {
	n := int(math.Round(ms * 0.001 * sampleRate))
	if n < minSamples {
		return minSamples
	}

	return n
}
