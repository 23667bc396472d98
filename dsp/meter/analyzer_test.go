package meter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-route/internal/testutil"
)

func TestNewAnalyzerRejectsBadSizes(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 32, 1000, 16384} {
		if _, err := NewAnalyzer(size); !errors.Is(err, ErrFFTSize) {
			t.Fatalf("size %d: err=%v want ErrFFTSize", size, err)
		}
	}
}

func TestAnalyzerSinePeak(t *testing.T) {
	t.Parallel()

	const (
		size = 1024
		rate = 48000.0
		bin  = 64
	)

	a, err := NewAnalyzer(size)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	freq := a.BinFrequency(bin, rate)
	tap := testutil.DeterministicSine(freq, rate, 1, size)

	mag, err := a.Spectrum(nil, tap)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}

	if len(mag) != a.Bins() {
		t.Fatalf("bins=%d want %d", len(mag), a.Bins())
	}

	peak := 0
	for k := range mag {
		if mag[k] > mag[peak] {
			peak = k
		}
	}

	if peak != bin {
		t.Fatalf("peak bin=%d want %d", peak, bin)
	}

	if math.Abs(mag[bin]) > 0.1 {
		t.Fatalf("peak level=%v dBFS want ~0", mag[bin])
	}

	if mag[bin+8] > -60 {
		t.Fatalf("leakage at bin %d = %v dBFS", bin+8, mag[bin+8])
	}
}

func TestAnalyzerSilenceHitsFloor(t *testing.T) {
	t.Parallel()

	a, err := NewAnalyzer(256)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	dst := make([]float64, 0, a.Bins())

	mag, err := a.Spectrum(dst, make([]float64, 100))
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}

	if &mag[0] != &dst[:1][0] {
		t.Fatal("dst with capacity should be reused")
	}

	for k, v := range mag {
		if v != FloorDB {
			t.Fatalf("bin %d=%v want floor", k, v)
		}
	}
}
