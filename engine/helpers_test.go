package engine

import (
	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/dsp/graph"
	"github.com/cwbudde/algo-route/dsp/snapshot"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()

	return log
}

// gainApplier scales every node by its "gain" param, reports the peak of
// nodes with an id and records reset requests.
type gainApplier struct {
	resets []string
}

func (g *gainApplier) Apply(call effect.Call, buf [][]float64, levels effect.Levels) {
	gain := call.Params.For(call.NodeID, call.Kind).GetNum("gain", 1)

	for _, ch := range buf {
		for i := range ch {
			ch[i] *= gain
		}
	}

	if call.NodeID != "" {
		levels[call.NodeID] = effect.Peak(buf)
	}
}

func (g *gainApplier) Reset(key string) {
	g.resets = append(g.resets, key)
}

func newTestEngine(opts ...Option) (*Engine, *gainApplier) {
	applier := &gainApplier{}
	base := []Option{WithLogger(quietLogger()), WithApplier(applier)}

	return New(append(base, opts...)...), applier
}

func gainNode(id string) graph.Node {
	return graph.Node{ID: id, Kind: effect.KindCompressor}
}

func gainParams(values map[string]float64) effect.ParamTable {
	table := effect.ParamTable{}
	for id, g := range values {
		table[id] = effect.Params{Num: map[string]float64{"gain": g}}
	}

	return table
}

// modeSnapshot runs an identity automatic chain and a manual chain that
// multiplies by manualGain.
func modeSnapshot(mode snapshot.Mode, manualGain float64) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Enabled:   true,
		Mode:      mode,
		Automatic: graph.Chain(),
		Manual:    graph.Chain(gainNode("m")),
		Params:    gainParams(map[string]float64{"m": manualGain}),
	}
}

func dc(frames int, values ...float64) [][]float64 {
	out := make([][]float64, len(values))
	for ch, v := range values {
		out[ch] = make([]float64, frames)
		for i := range out[ch] {
			out[ch][i] = v
		}
	}

	return out
}
