package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLinearToDB(t *testing.T) {
	if db := LinearToDB(0.5); math.Abs(db+6.0206) > 1e-4 {
		t.Fatalf("LinearToDB(0.5) = %v, want about -6.02", db)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestDurationToSamples(t *testing.T) {
	tests := []struct {
		name string
		ms   float64
		sr   float64
		min  int
		want int
	}{
		{name: "50ms at 48k", ms: 50, sr: 48000, min: 1, want: 2400},
		{name: "50ms at 44.1k", ms: 50, sr: 44100, min: 1, want: 2205},
		{name: "rounds", ms: 0.01, sr: 48000, min: 0, want: 0},
		{name: "minimum", ms: 0, sr: 48000, min: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationToSamples(tt.ms, tt.sr, tt.min); got != tt.want {
				t.Fatalf("DurationToSamples() = %d, want %d", got, tt.want)
			}
		})
	}
}
