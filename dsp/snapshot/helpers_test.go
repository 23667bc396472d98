package snapshot

import (
	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/dsp/graph"
)

func chainSnapshot(kinds ...effect.Kind) *Snapshot {
	nodes := make([]graph.Node, len(kinds))
	for i, k := range kinds {
		nodes[i] = graph.Node{ID: k.String(), Kind: k}
	}

	return &Snapshot{Enabled: true, Automatic: graph.Chain(nodes...)}
}

func cyclicGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Kind: effect.KindDelay},
			{ID: "b", Kind: effect.KindTremolo},
		},
		Connections: []graph.Connection{
			{From: graph.InputNodeID, To: "a", Gain: 1},
			{From: "a", To: "b", Gain: 1},
			{From: "b", To: "a", Gain: 1},
			{From: "b", To: graph.OutputNodeID, Gain: 1},
		},
		Start: graph.InputNodeID,
		End:   graph.OutputNodeID,
	}
}
