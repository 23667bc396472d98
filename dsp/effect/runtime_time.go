package effect

import (
	"math"

	"github.com/cwbudde/algo-route/dsp/core"
)

const (
	delayMaxSeconds  = 2.0
	delayMaxChannels = 2
)

// delayRuntime is a feedback delay with a fixed-size line per channel.
// Channels beyond the line count pass through.
type delayRuntime struct {
	lines [][]float64
	pos   int
}

func newDelayRuntime(sampleRate float64) *delayRuntime {
	if sampleRate <= 0 {
		sampleRate = core.DefaultFormat().SampleRate
	}

	size := int(math.Ceil(delayMaxSeconds*sampleRate)) + 1

	d := &delayRuntime{lines: make([][]float64, delayMaxChannels)}
	for ch := range d.lines {
		d.lines[ch] = make([]float64, size)
	}

	return d
}

func (d *delayRuntime) Process(buf [][]float64, ctx Context, p Params) {
	size := len(d.lines[0])

	delay := core.DurationToSamples(p.GetNum("timeMs", 250), ctx.SampleRate, 1)
	delay = min(delay, size-1)
	feedback := core.Clamp(p.GetNum("feedback", 0.35), 0, 0.95)
	mix := core.Clamp(p.GetNum("mix", 0.3), 0, 1)

	channels := min(len(buf), len(d.lines))
	pos := d.pos

	for ch := range channels {
		line := d.lines[ch]
		pos = d.pos

		for i, x := range buf[ch] {
			readPos := pos - delay
			if readPos < 0 {
				readPos += size
			}

			delayed := line[readPos]
			line[pos] = x + delayed*feedback
			buf[ch][i] = x*(1-mix) + delayed*mix

			pos++
			if pos == size {
				pos = 0
			}
		}
	}

	if channels > 0 {
		d.pos = pos
	}
}

func (d *delayRuntime) Reset() {
	for _, line := range d.lines {
		clear(line)
	}

	d.pos = 0
}

// tremoloRuntime modulates amplitude with a sine LFO shared by all channels.
type tremoloRuntime struct {
	phase float64
}

func (t *tremoloRuntime) Process(buf [][]float64, ctx Context, p Params) {
	if ctx.SampleRate <= 0 {
		return
	}

	rate := core.Clamp(p.GetNum("rateHz", 5), 0, 40)
	depth := core.Clamp(p.GetNum("depth", 0.5), 0, 1)
	inc := 2 * math.Pi * rate / ctx.SampleRate

	_, frames := core.PlanarShape(buf)
	phase := t.phase

	for i := range frames {
		gain := 1 - depth*0.5*(1-math.Cos(phase))
		for ch := range buf {
			buf[ch][i] *= gain
		}

		phase += inc
	}

	t.phase = math.Mod(phase, 2*math.Pi)
}

func (t *tremoloRuntime) Reset() {
	t.phase = 0
}
