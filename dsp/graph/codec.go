package graph

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-route/dsp/effect"
)

// graphNode is a JSON-serializable graph node.
type graphNode struct {
	ID   string      `json:"id,omitempty"`
	Type effect.Kind `json:"type"`
}

// graphConnection is a JSON-serializable connection. A missing gain means 1.
type graphConnection struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Gain *float64 `json:"gain,omitempty"`
}

// graphState is the root JSON structure of a graph.
type graphState struct {
	Nodes          []graphNode       `json:"nodes"`
	Connections    []graphConnection `json:"connections"`
	Start          string            `json:"start"`
	End            string            `json:"end"`
	AutoConnectEnd bool              `json:"autoConnectEnd,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (g Graph) MarshalJSON() ([]byte, error) {
	state := graphState{
		Nodes:          make([]graphNode, len(g.Nodes)),
		Connections:    make([]graphConnection, len(g.Connections)),
		Start:          g.Start,
		End:            g.End,
		AutoConnectEnd: g.AutoConnectEnd,
	}

	for i, n := range g.Nodes {
		state.Nodes[i] = graphNode{ID: n.ID, Type: n.Kind}
	}

	for i, c := range g.Connections {
		gc := graphConnection{From: c.From, To: c.To}
		if c.Gain != 1 {
			gain := c.Gain
			gc.Gain = &gain
		}

		state.Connections[i] = gc
	}

	return json.Marshal(state)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var state graphState

	err := json.Unmarshal(data, &state)
	if err != nil {
		return fmt.Errorf("graph: invalid graph json: %w", err)
	}

	out := Graph{
		Nodes:          make([]Node, len(state.Nodes)),
		Connections:    make([]Connection, len(state.Connections)),
		Start:          state.Start,
		End:            state.End,
		AutoConnectEnd: state.AutoConnectEnd,
	}

	for i, n := range state.Nodes {
		out.Nodes[i] = Node{ID: n.ID, Kind: n.Type}
	}

	for i, c := range state.Connections {
		gain := 1.0
		if c.Gain != nil {
			gain = *c.Gain
		}

		out.Connections[i] = Connection{From: c.From, To: c.To, Gain: gain}
	}

	*g = out

	return nil
}
