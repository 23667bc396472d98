package effect

import (
	"math"

	"github.com/cwbudde/algo-route/dsp/core"
)

// stereoWidthRuntime scales the side signal of the first two channels.
// width 0 folds to mono, 1 is unchanged, 2 doubles the side level.
type stereoWidthRuntime struct{}

func (stereoWidthRuntime) Process(buf [][]float64, _ Context, p Params) {
	if len(buf) < 2 {
		return
	}

	width := core.Clamp(p.GetNum("width", 1), 0, 2)

	left, right := buf[0], buf[1]
	for i := range min(len(left), len(right)) {
		mid := 0.5 * (left[i] + right[i])
		side := 0.5 * (left[i] - right[i]) * width
		left[i] = mid + side
		right[i] = mid - side
	}
}

func (stereoWidthRuntime) Reset() {}

// bitcrusherRuntime quantises samples to a reduced bit depth.
type bitcrusherRuntime struct{}

func (bitcrusherRuntime) Process(buf [][]float64, _ Context, p Params) {
	bits := core.Clamp(math.Round(p.GetNum("bits", 8)), 1, 24)
	mix := core.Clamp(p.GetNum("mix", 1), 0, 1)
	step := 2 / math.Exp2(bits)

	for _, ch := range buf {
		for i, x := range ch {
			crushed := math.Round(x/step) * step
			ch[i] = x*(1-mix) + crushed*mix
		}
	}
}

func (bitcrusherRuntime) Reset() {}

// distortionRuntime is a waveshaper normalised so that full scale stays at
// full scale. The "curve" string param selects "tanh" (default) or "hard".
type distortionRuntime struct{}

func (distortionRuntime) Process(buf [][]float64, _ Context, p Params) {
	drive := core.Clamp(p.GetNum("drive", 4), 1, 50)
	mix := core.Clamp(p.GetNum("mix", 1), 0, 1)
	hard := p.GetStr("curve", "tanh") == "hard"
	norm := 1 / math.Tanh(drive)

	for _, ch := range buf {
		for i, x := range ch {
			var shaped float64
			if hard {
				shaped = core.Clamp(drive*x, -1, 1)
			} else {
				shaped = math.Tanh(drive*x) * norm
			}

			ch[i] = x*(1-mix) + shaped*mix
		}
	}
}

func (distortionRuntime) Reset() {}
