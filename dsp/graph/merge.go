package graph

import (
	"github.com/cwbudde/algo-vecmath"
)

// Accumulate adds src scaled by gain into dst, channel by channel, over the
// shorter of the two channel counts and frame lengths. scratch must hold at
// least one channel's worth of frames unless gain is 1; a short scratch
// falls back to a scalar loop.
func Accumulate(dst, src [][]float64, gain float64, scratch []float64) {
	channels := min(len(dst), len(src))

	for ch := range channels {
		frames := min(len(dst[ch]), len(src[ch]))
		d := dst[ch][:frames]
		s := src[ch][:frames]

		switch {
		case gain == 1:
			vecmath.AddBlockInPlace(d, s)
		case len(scratch) >= frames:
			tmp := scratch[:frames]
			vecmath.ScaleBlock(tmp, s, gain)
			vecmath.AddBlockInPlace(d, tmp)
		default:
			for i, v := range s {
				d[i] += v * gain
			}
		}
	}
}
