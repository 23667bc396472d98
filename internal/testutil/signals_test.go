package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestRamp(t *testing.T) {
	RequireSliceNearlyEqual(t, Ramp(1, 0.5, 3), []float64{1, 1.5, 2}, 0)
}

func TestPlanarDCAndClone(t *testing.T) {
	p := PlanarDC(3, 1, -1)
	if len(p) != 2 || len(p[1]) != 3 || p[1][2] != -1 {
		t.Fatalf("unexpected block: %v", p)
	}

	c := ClonePlanar(p)
	c[0][0] = 9

	if p[0][0] != 1 {
		t.Fatal("ClonePlanar must not share memory")
	}
}
