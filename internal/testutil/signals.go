package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Ramp returns start, start+step, ... of the given length.
func Ramp(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}

	return out
}

// PlanarDC returns a len(values) x frames block where every sample of
// channel ch equals values[ch].
func PlanarDC(frames int, values ...float64) [][]float64 {
	out := make([][]float64, len(values))
	for ch, v := range values {
		out[ch] = DC(v, frames)
	}

	return out
}

// ClonePlanar deep-copies a planar block.
func ClonePlanar(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for ch := range src {
		out[ch] = append([]float64(nil), src[ch]...)
	}

	return out
}
