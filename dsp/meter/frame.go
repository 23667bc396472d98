package meter

import (
	"maps"

	"github.com/cwbudde/algo-route/dsp/core"
)

// Frame is one published level reading.
type Frame struct {
	// Seq increases by one per published frame; 0 means nothing was
	// published yet.
	Seq        uint64
	SampleRate float64
	// Levels maps node ids to the level they reported.
	Levels map[string]float64
	// Peaks and RMS hold one linear value per output channel.
	Peaks []float64
	RMS   []float64
	// Tap holds the most recent output samples mixed to mono, oldest first.
	Tap []float64
}

// Level returns the level of nodeID and whether it reported one.
func (f Frame) Level(nodeID string) (float64, bool) {
	v, ok := f.Levels[nodeID]

	return v, ok
}

// PeakDB returns the peak of channel ch in dBFS, or -Inf when the channel
// is absent or silent.
func (f Frame) PeakDB(ch int) float64 {
	if ch < 0 || ch >= len(f.Peaks) {
		return core.LinearToDB(0)
	}

	return core.LinearToDB(f.Peaks[ch])
}

// Clone returns a deep copy of f.
func (f Frame) Clone() Frame {
	out := f
	out.Levels = maps.Clone(f.Levels)
	out.Peaks = append([]float64(nil), f.Peaks...)
	out.RMS = append([]float64(nil), f.RMS...)
	out.Tap = append([]float64(nil), f.Tap...)

	if out.Levels == nil {
		out.Levels = map[string]float64{}
	}

	return out
}
