package effect

// countingRuntime counts calls and multiplies by a "gain" parameter.
type countingRuntime struct {
	processCalls int
	resetCalls   int
}

func (c *countingRuntime) Process(buf [][]float64, _ Context, p Params) {
	c.processCalls++

	gain := p.GetNum("gain", 1)
	for _, ch := range buf {
		for i := range ch {
			ch[i] *= gain
		}
	}
}

func (c *countingRuntime) Reset() {
	c.resetCalls++
}

func countingRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(KindCompressor, func(_ Context) (Runtime, error) {
		return &countingRuntime{}, nil
	})
	r.MustRegister(KindReverb, func(_ Context) (Runtime, error) {
		return &countingRuntime{}, nil
	})

	return r
}

var testCtx = Context{SampleRate: 48000, Channels: 2, Frames: 4}
