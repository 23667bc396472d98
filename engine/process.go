package engine

import (
	"math"

	"github.com/cwbudde/algo-route/dsp/buffer"
	"github.com/cwbudde/algo-route/dsp/core"
	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/dsp/snapshot"
	"github.com/sirupsen/logrus"
)

// ProcessBlock routes one captured block and returns the interleaved result,
// which is also queued for the output side. raw holds one slice per channel;
// missing channels or frames are treated as silence. The returned slice is
// owned by the engine until the next call.
//
// While the snapshot is reconfiguring the output ring is released and the
// block is returned but not queued.
//
// ProcessBlock must be called from a single goroutine. It does not block,
// and it only allocates when the block format changes or the ring comes
// back after a reconfiguration.
func (e *Engine) ProcessBlock(raw [][]float64, frames, channels int, sampleRate float64) []float64 {
	if frames <= 0 || channels <= 0 {
		return nil
	}

	e.blocks.Add(1)
	e.checkFormat(frames, channels, sampleRate)

	e.buffers.Load(raw)
	in := e.buffers.Stage()

	e.resets.Drain(e.applyReset)

	snap := e.store.Load()
	e.trackReconfigure(snap, frames*channels)

	var (
		out    [][]float64
		levels effect.Levels
	)

	if snap.Passthrough() {
		e.bypassed = true
		out = in
		levels = e.noLevels
	} else {
		out, levels = e.route(snap, in, sampleRate)
	}

	if e.recorder != nil {
		e.recorder.RecordIfNeeded(out, frames, channels, sampleRate)
	}

	e.meter.Observe(levels, out, sampleRate)

	interleaved := e.buffers.Interleaved()
	buffer.Interleave(interleaved, out)
	e.out.Enqueue(interleaved)

	return interleaved
}

// route renders the snapshot's mode, crossfading from earlier modes while a
// transition runs. Levels are those of the target mode.
func (e *Engine) route(snap *snapshot.Snapshot, in [][]float64, sampleRate float64) ([][]float64, effect.Levels) {
	if e.bypassed {
		e.fader.Reset(snap.Mode, sampleRate)
		e.bypassed = false
	} else if e.fader.Update(snap.Mode, sampleRate) {
		e.log.WithFields(logrus.Fields{
			"function": "route",
			"mode":     snap.Mode,
		}).Debug("Mode crossfade started")
	}

	e.rendered = [modeCount]bool{}

	ctx := effect.Context{SampleRate: sampleRate}
	target := e.fader.Target()

	out, levels := e.render(snap, target, in, ctx)
	if !e.fader.Fading() {
		return out, levels
	}

	e.from = e.from[:0]
	for _, entry := range e.fader.From() {
		rendered, _ := e.render(snap, entry.Mode, in, ctx)
		e.from = append(e.from, rendered)
	}

	e.fader.Mix(e.mixed, out, e.from)

	return e.mixed, levels
}

// render runs the graph of mode once per block.
func (e *Engine) render(
	snap *snapshot.Snapshot,
	mode snapshot.Mode,
	in [][]float64,
	ctx effect.Context,
) ([][]float64, effect.Levels) {
	if e.rendered[mode] {
		return e.renders[mode], e.levels[mode]
	}

	plans := snap.Plans()

	var (
		out    [][]float64
		levels effect.Levels
	)

	switch mode {
	case snapshot.ModeManual:
		out, levels = e.manual.Run(plans.Manual, in, ctx, snap.Params, snap.Limiter)
	case snapshot.ModeSplit:
		out, levels = e.renderSplit(snap, in, ctx)
	default:
		out, levels = e.automatic.Run(plans.Automatic, in, ctx, snap.Params, snap.Limiter)
	}

	e.renders[mode] = out
	e.levels[mode] = levels
	e.rendered[mode] = true

	return out, levels
}

// renderSplit runs the left graph on channel 0 and the right graph on
// channel 1; further channels pass through.
func (e *Engine) renderSplit(snap *snapshot.Snapshot, in [][]float64, ctx effect.Context) ([][]float64, effect.Levels) {
	plans := snap.Plans()
	clear(e.splitLevels)

	core.CopyPlanar(e.split, in)

	if len(in) > 0 {
		left, levels := e.splitLeft.Run(plans.SplitLeft, in[0:1], ctx, snap.Params, snap.Limiter)
		copy(e.split[0], left[0])

		for id, v := range levels {
			e.splitLevels[id] = v
		}
	}

	if len(in) > 1 {
		right, levels := e.splitRight.Run(plans.SplitRight, in[1:2], ctx, snap.Params, snap.Limiter)
		copy(e.split[1], right[0])

		for id, v := range levels {
			e.splitLevels[id] = v
		}
	}

	return e.split, e.splitLevels
}

// trackReconfigure releases the output ring when a reconfiguring snapshot
// arrives and re-initialises it once the flag clears. Blocks processed in
// between are not queued.
func (e *Engine) trackReconfigure(snap *snapshot.Snapshot, frameSize int) {
	reconfiguring := snap != nil && snap.Reconfiguring
	if reconfiguring == e.ringReleased {
		return
	}

	e.ringReleased = reconfiguring

	if reconfiguring {
		e.ringDropsBase.Add(e.out.Dropped())
		e.out.Release()

		e.log.WithFields(logrus.Fields{
			"function": "trackReconfigure",
		}).Info("Output ring released for reconfiguration")

		return
	}

	err := e.out.Initialize(frameSize, e.ringCapacity)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"function": "trackReconfigure",
			"error":    err,
		}).Error("Output ring not initialised")

		return
	}

	e.log.WithFields(logrus.Fields{
		"function":   "trackReconfigure",
		"frame_size": frameSize,
	}).Info("Output ring restored")
}

// checkFormat resizes scratch buffers and re-initialises the output ring
// when the block shape changes.
func (e *Engine) checkFormat(frames, channels int, sampleRate float64) {
	if sampleRate != e.lastRate {
		e.lastRate = sampleRate
		e.sampleRate.Store(math.Float64bits(sampleRate))
	}

	if !e.buffers.Ensure(frames, channels) {
		return
	}

	if !e.ringReleased {
		e.ringDropsBase.Add(e.out.Dropped())

		err := e.out.Initialize(frames*channels, e.ringCapacity)
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"function": "checkFormat",
				"error":    err,
			}).Error("Output ring not initialised")
		}
	}

	e.split = core.EnsurePlanar(e.split, channels, frames)
	e.mixed = core.EnsurePlanar(e.mixed, channels, frames)

	changes := e.formatChanges.Add(1)

	e.log.WithFields(logrus.Fields{
		"function":    "checkFormat",
		"frames":      frames,
		"channels":    channels,
		"sample_rate": sampleRate,
		"ring_frame":  e.out.FrameSize(),
		"ring_slots":  e.out.Capacity(),
		"changes":     changes,
	}).Info("Processing format changed")
}
