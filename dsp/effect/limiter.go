package effect

import "math"

const (
	softLimitThreshold = 0.8
	softLimitCeiling   = 1.0
)

// SoftLimit limits buf in place: samples below the threshold pass unchanged,
// louder samples are bent by a tanh knee that approaches the ceiling
// asymptotically. It is a LimiterFunc.
func SoftLimit(buf [][]float64) {
	const knee = softLimitCeiling - softLimitThreshold

	for _, ch := range buf {
		for i, x := range ch {
			a := math.Abs(x)
			if a <= softLimitThreshold {
				continue
			}

			y := softLimitThreshold + knee*math.Tanh((a-softLimitThreshold)/knee)
			ch[i] = math.Copysign(y, x)
		}
	}
}
