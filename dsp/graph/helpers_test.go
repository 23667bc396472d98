package graph

import (
	"github.com/cwbudde/algo-route/dsp/effect"
)

const (
	in  = InputNodeID
	out = OutputNodeID
)

func node(id string) Node {
	return Node{ID: id, Kind: effect.KindDistortion}
}

func edge(from, to string, gain float64) Connection {
	return Connection{From: from, To: to, Gain: gain}
}

// scaleApplier multiplies each node's buffer by its "gain" param and reports
// a level of 1 for every node with an id.
var scaleApplier = effect.ApplierFunc(func(call effect.Call, buf [][]float64, levels effect.Levels) {
	gain := call.Params.For(call.NodeID, call.Kind).GetNum("gain", 1)

	for _, ch := range buf {
		for i := range ch {
			ch[i] *= gain
		}
	}

	if call.NodeID != "" {
		levels[call.NodeID] = 1
	}
})

func gains(values map[string]float64) effect.ParamTable {
	table := effect.ParamTable{}
	for id, g := range values {
		table[id] = effect.Params{Num: map[string]float64{"gain": g}}
	}

	return table
}

func positions(order []string) map[string]int {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	return pos
}
