package graph

import (
	"github.com/cwbudde/algo-route/dsp/core"
	"github.com/cwbudde/algo-route/dsp/effect"
)

// Executor runs compiled plans. It owns one scratch slot per step and reuses
// them across blocks; slots are reallocated only when the block shape
// changes or a larger plan shows up.
//
// An Executor is not safe for concurrent use. The engine keeps one per
// graph so that plans rendered in the same block never share slots.
type Executor struct {
	applier effect.Applier
	limiter effect.LimiterFunc

	slots   [][][]float64
	out     [][]float64
	scratch []float64
	levels  effect.Levels

	channels int
	frames   int
}

// NewExecutor creates an Executor that applies nodes through applier. A nil
// limiter selects effect.SoftLimit.
func NewExecutor(applier effect.Applier, limiter effect.LimiterFunc) *Executor {
	if limiter == nil {
		limiter = effect.SoftLimit
	}

	return &Executor{
		applier: applier,
		limiter: limiter,
		levels:  effect.Levels{},
	}
}

// Run executes plan on in and returns the graph output together with the
// levels reported by nodes with an id. Both results are owned by the
// Executor and stay valid until the next call. An inert plan returns in
// unchanged and an empty level map.
func (e *Executor) Run(
	plan *Plan,
	in [][]float64,
	ctx effect.Context,
	params effect.ParamTable,
	limit bool,
) ([][]float64, effect.Levels) {
	clear(e.levels)

	if plan.Inert() {
		return in, e.levels
	}

	channels, frames := core.PlanarShape(in)
	e.ensure(len(plan.Steps), channels, frames)

	ctx.Channels = channels
	ctx.Frames = frames

	for i := range plan.Steps {
		step := &plan.Steps[i]
		dst := e.slots[i]
		e.merge(dst, step.Inputs, in)

		if e.applier == nil {
			continue
		}

		e.applier.Apply(effect.Call{
			Kind:    step.Kind,
			Key:     step.Key,
			NodeID:  step.NodeID,
			Context: ctx,
			Params:  params,
		}, dst, e.levels)
	}

	e.merge(e.out, plan.Output, in)

	if limit {
		e.limiter(e.out)
	}

	return e.out, e.levels
}

func (e *Executor) merge(dst [][]float64, inputs []Input, in [][]float64) {
	core.ZeroPlanar(dst)

	for _, input := range inputs {
		var src [][]float64

		switch {
		case input.Slot == SlotInput:
			src = in
		case input.Slot >= 0 && input.Slot < len(e.slots):
			src = e.slots[input.Slot]
		default:
			continue
		}

		Accumulate(dst, src, input.Gain, e.scratch)
	}
}

func (e *Executor) ensure(steps, channels, frames int) {
	if channels != e.channels || frames != e.frames {
		e.channels = channels
		e.frames = frames

		for i := range e.slots {
			e.slots[i] = core.EnsurePlanar(e.slots[i], channels, frames)
		}

		e.out = core.EnsurePlanar(e.out, channels, frames)

		if cap(e.scratch) < frames {
			e.scratch = make([]float64, frames)
		}

		e.scratch = e.scratch[:frames]
	}

	for len(e.slots) < steps {
		e.slots = append(e.slots, core.EnsurePlanar(nil, channels, frames))
	}
}
