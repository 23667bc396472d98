// Package transition crossfades between routing modes with equal-power
// gains.
//
// A Controller is either stable on one mode or fading from a weighted set
// of modes towards a target. Changing the target mid-fade freezes the
// current blend into the new "from" set, so at most one fade is ever
// active and the output stays continuous at the change.
package transition

import (
	"math"
	"time"

	"github.com/cwbudde/algo-route/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// DefaultFade is the crossfade duration used when none is given.
const DefaultFade = 50 * time.Millisecond

// maxFrom bounds the from-set of an interrupted fade.
const maxFrom = 4

// weightFloor drops from-set entries that no longer contribute.
const weightFloor = 1e-12

// Gains returns the equal-power gains of the outgoing and incoming signal at
// fade position t. Endpoints are exact: t <= 0 gives (1, 0), t >= 1 gives
// (0, 1).
func Gains(t float64) (from, to float64) {
	switch {
	case t <= 0:
		return 1, 0
	case t >= 1:
		return 0, 1
	default:
		return math.Cos(t * math.Pi / 2), math.Sin(t * math.Pi / 2)
	}
}

// FadeSamples converts a fade duration into a sample count of at least 1.
func FadeSamples(fade time.Duration, sampleRate float64) int {
	return core.DurationToSamples(float64(fade)/float64(time.Millisecond), sampleRate, 1)
}

// Entry is one weighted contributor of a fade's outgoing blend.
type Entry[M comparable] struct {
	Mode   M
	Weight float64
}

// Controller tracks the crossfade state of modes of type M. It is not safe
// for concurrent use; it belongs to the processing goroutine.
type Controller[M comparable] struct {
	fade       time.Duration
	sampleRate float64
	length     int

	target  M
	from    []Entry[M]
	elapsed int
	ready   bool

	gFrom []float64
	gTo   []float64
	acc   []float64
	tmp   []float64
}

// NewController creates a controller with the given fade duration; fade <= 0
// selects DefaultFade. The controller settles on the first mode it sees.
func NewController[M comparable](fade time.Duration) *Controller[M] {
	if fade <= 0 {
		fade = DefaultFade
	}

	return &Controller[M]{
		fade: fade,
		from: make([]Entry[M], 0, maxFrom+1),
	}
}

// Update is called once per block with the mode the configuration asks for.
// The first call, and any call with a new sample rate, settles on mode
// without fading. A mode different from the current target starts a fade,
// or redirects the running one, and Update reports true.
func (c *Controller[M]) Update(mode M, sampleRate float64) bool {
	if !c.ready || sampleRate != c.sampleRate {
		c.Reset(mode, sampleRate)
		return false
	}

	if mode == c.target {
		return false
	}

	if len(c.from) == 0 {
		c.from = append(c.from, Entry[M]{Mode: c.target, Weight: 1})
	} else {
		c.interrupt()
	}

	c.target = mode
	c.elapsed = 0

	return true
}

// interrupt folds the blend at the current position into the from-set.
func (c *Controller[M]) interrupt() {
	gFrom, gTo := Gains(c.Position())

	n := 0

	for _, e := range c.from {
		e.Weight *= gFrom
		if e.Weight > weightFloor {
			c.from[n] = e
			n++
		}
	}

	c.from = c.from[:n]

	if gTo > weightFloor {
		merged := false

		for i := range c.from {
			if c.from[i].Mode == c.target {
				c.from[i].Weight += gTo
				merged = true

				break
			}
		}

		if !merged {
			c.from = append(c.from, Entry[M]{Mode: c.target, Weight: gTo})
		}
	}

	for len(c.from) > maxFrom {
		weakest := 0
		for i, e := range c.from {
			if e.Weight < c.from[weakest].Weight {
				weakest = i
			}
		}

		c.from = append(c.from[:weakest], c.from[weakest+1:]...)
	}
}

// Reset settles on mode at sampleRate and drops any running fade.
func (c *Controller[M]) Reset(mode M, sampleRate float64) {
	c.target = mode
	c.from = c.from[:0]
	c.elapsed = 0
	c.sampleRate = sampleRate
	c.length = FadeSamples(c.fade, sampleRate)
	c.ready = true
}

// Target returns the mode the controller is settled on or fading to.
func (c *Controller[M]) Target() M {
	return c.target
}

// Fading reports whether a crossfade is running.
func (c *Controller[M]) Fading() bool {
	return len(c.from) > 0
}

// From returns the outgoing blend of the running fade. The slice is owned by
// the controller and valid until the next Update or Mix.
func (c *Controller[M]) From() []Entry[M] {
	return c.from
}

// Length returns the fade length in samples.
func (c *Controller[M]) Length() int {
	return c.length
}

// Position returns the fade position in [0, 1] at the next sample.
func (c *Controller[M]) Position() float64 {
	if len(c.from) == 0 {
		return 1
	}

	return float64(c.elapsed) / float64(c.length)
}

// Mix writes one block of the crossfade into dst. target is the render of
// Target() and from[i] the render of From()[i].Mode. When no fade runs, dst
// receives a copy of target. The fade advances by the block length and
// settles once it is complete.
func (c *Controller[M]) Mix(dst, target [][]float64, from [][][]float64) {
	if len(c.from) == 0 {
		core.CopyPlanar(dst, target)
		return
	}

	_, frames := core.PlanarShape(dst)
	c.ensure(frames)

	for i := range frames {
		c.gFrom[i], c.gTo[i] = Gains(float64(c.elapsed+i) / float64(c.length))
	}

	for ch := range dst {
		acc := c.acc
		clear(acc)

		for j, e := range c.from {
			if j >= len(from) || ch >= len(from[j]) || len(from[j][ch]) < frames {
				continue
			}

			vecmath.ScaleBlock(c.tmp, from[j][ch][:frames], e.Weight)
			vecmath.AddBlockInPlace(acc, c.tmp)
		}

		vecmath.MulBlockInPlace(acc, c.gFrom)

		if ch < len(target) && len(target[ch]) >= frames {
			vecmath.MulAddBlock(dst[ch][:frames], target[ch][:frames], c.gTo, acc)
		} else {
			copy(dst[ch], acc)
		}
	}

	c.elapsed += frames
	if c.elapsed >= c.length {
		c.from = c.from[:0]
		c.elapsed = 0
	}
}

func (c *Controller[M]) ensure(frames int) {
	if cap(c.acc) < frames {
		c.gFrom = make([]float64, frames)
		c.gTo = make([]float64, frames)
		c.acc = make([]float64, frames)
		c.tmp = make([]float64, frames)
	}

	c.gFrom = c.gFrom[:frames]
	c.gTo = c.gTo[:frames]
	c.acc = c.acc[:frames]
	c.tmp = c.tmp[:frames]
}
