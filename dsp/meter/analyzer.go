package meter

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrFFTSize is returned for analyzer sizes that are not a power of two in
// [MinFFTSize, MaxFFTSize].
var ErrFFTSize = errors.New("meter: invalid fft size")

// Analyzer limits and floor.
const (
	MinFFTSize = 64
	MaxFFTSize = 8192
	FloorDB    = -130.0
)

// Analyzer computes Hann-windowed magnitude spectra of tap signals. It is
// meant for the UI side and is not safe for concurrent use.
type Analyzer struct {
	size   int
	plan   *algofft.Plan[complex128]
	window []float64
	norm   float64

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
	mag []float64
}

// NewAnalyzer creates an Analyzer for size-point transforms.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size < MinFFTSize || size > MaxFFTSize || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("meter: init fft plan: %w", err)
	}

	window := hann(size)

	bins := size/2 + 1

	return &Analyzer{
		size:   size,
		plan:   plan,
		window: window,
		norm:   vecmath.Sum(window),
		in:     make([]complex128, size),
		out:    make([]complex128, size),
		re:     make([]float64, bins),
		im:     make([]float64, bins),
		mag:    make([]float64, bins),
	}, nil
}

// Size returns the transform length.
func (a *Analyzer) Size() int {
	return a.size
}

// Bins returns the number of spectrum bins, size/2+1.
func (a *Analyzer) Bins() int {
	return a.size/2 + 1
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(a.size)
}

// Spectrum writes the single-sided magnitude spectrum of the newest size
// samples of tap into dst in dBFS, clamped to FloorDB, and returns it. A
// shorter tap is zero-padded. dst is reused when it has room for Bins
// values.
func (a *Analyzer) Spectrum(dst, tap []float64) ([]float64, error) {
	if len(tap) > a.size {
		tap = tap[len(tap)-a.size:]
	}

	for i := range a.in {
		s := 0.0
		if i < len(tap) {
			s = tap[i]
		}

		a.in[i] = complex(s*a.window[i], 0)
	}

	err := a.plan.Forward(a.out, a.in)
	if err != nil {
		return nil, fmt.Errorf("meter: fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	dst = resize(dst, a.Bins())
	last := len(dst) - 1

	for k, m := range a.mag {
		m /= a.norm
		if k > 0 && k < last {
			m *= 2
		}

		db := FloorDB
		if m > 0 {
			db = max(20*mathLog10(m), FloorDB)
		}

		dst[k] = db
	}

	return dst, nil
}

// hann returns periodic Hann coefficients.
func hann(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}

	return w
}
