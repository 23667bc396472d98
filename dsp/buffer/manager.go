package buffer

import "github.com/cwbudde/algo-route/dsp/core"

type shapeKey struct {
	frames   int
	channels int
}

// Manager holds the reusable scratch buffers of one processing context.
// It is not safe for concurrent use.
type Manager struct {
	key           shapeKey
	deinterleaved [][]float64
	interleaved   []float64
	processing    [][]float64
}

// NewManager returns an empty Manager. Buffers are allocated on the first
// Ensure call.
func NewManager() *Manager {
	return &Manager{}
}

// Ensure sizes all buffers for frames x channels. It reports whether any
// buffer had to be reallocated; with an unchanged shape it is a no-op.
func (m *Manager) Ensure(frames, channels int) bool {
	if frames < 0 {
		frames = 0
	}

	if channels < 0 {
		channels = 0
	}

	key := shapeKey{frames: frames, channels: channels}
	if key == m.key && m.deinterleaved != nil {
		return false
	}

	m.key = key
	m.deinterleaved = allocPlanar(channels, frames)
	m.processing = allocPlanar(channels, frames)
	m.interleaved = make([]float64, frames*channels)

	return true
}

// Interleaved returns the flat output scratch.
func (m *Manager) Interleaved() []float64 {
	return m.interleaved
}

// Load copies raw per-channel capture data into the deinterleaved scratch.
// Channels or frames missing from raw are filled with silence.
func (m *Manager) Load(raw [][]float64) [][]float64 {
	for ch, dst := range m.deinterleaved {
		if ch >= len(raw) {
			clear(dst)
			continue
		}

		n := copy(dst, raw[ch])
		clear(dst[n:])
	}

	return m.deinterleaved
}

// Stage copies the capture scratch into the processing buffers and returns
// them. Effects may write to the result; the capture copy stays untouched.
func (m *Manager) Stage() [][]float64 {
	for ch, dst := range m.processing {
		copy(dst, m.deinterleaved[ch])
	}

	return m.processing
}

func allocPlanar(channels, frames int) [][]float64 {
	// One backing array keeps the channels contiguous.
	backing := make([]float64, channels*frames)
	out := make([][]float64, channels)

	for ch := range out {
		out[ch] = backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}

	return out
}

// Interleave writes planar src into dst as frame-major samples and returns
// the number of samples written.
func Interleave(dst []float64, src [][]float64) int {
	channels, frames := core.PlanarShape(src)
	if channels == 0 {
		return 0
	}

	frames = min(frames, len(dst)/channels)
	for i := range frames {
		base := i * channels
		for ch := range channels {
			dst[base+ch] = src[ch][i]
		}
	}

	return frames * channels
}
