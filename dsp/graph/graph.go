// Package graph compiles node/connection descriptions of an effect graph
// into executable plans and runs them block by block.
//
// A Graph is a pure description owned by the configuration side. Compile
// turns it into an immutable Plan: reachability from the start id,
// optional auto-wiring of dangling branches to the end id, and a
// first-in-first-out Kahn ordering of the reachable nodes. An Executor walks
// a Plan on the processing path, merging each node's weighted inputs and
// handing the result to an effect.Applier.
package graph

import (
	"strconv"

	"github.com/cwbudde/algo-route/dsp/effect"
)

const (
	// InputNodeID is the conventional start id of a graph.
	InputNodeID = "_input"
	// OutputNodeID is the conventional end id of a graph.
	OutputNodeID = "_output"
)

// Node is one effect in a graph. An empty ID marks an ad-hoc entry of the
// automatic chain; such nodes get a positional routing key and report no
// level.
type Node struct {
	ID   string
	Kind effect.Kind
}

// Connection routes the output of From into To, scaled by Gain.
type Connection struct {
	From string
	To   string
	Gain float64
}

// Graph describes how audio flows from Start through effects to End.
// Start and End are virtual boundary ids and need not appear in Nodes.
// A graph with an empty Start or End is inert and passes audio through.
type Graph struct {
	Nodes          []Node
	Connections    []Connection
	Start          string
	End            string
	AutoConnectEnd bool
}

// Inert reports whether the graph passes audio through unchanged.
func (g Graph) Inert() bool {
	return g.Start == "" || g.End == ""
}

// Key returns the routing key of the node at position i of g.Nodes.
func (g Graph) Key(i int) string {
	return nodeKey(i, g.Nodes[i])
}

func nodeKey(i int, n Node) string {
	if n.ID != "" {
		return n.ID
	}

	return "#" + strconv.Itoa(i)
}

// Chain builds the automatic-order graph InputNodeID -> nodes[0] -> ... ->
// OutputNodeID with unit gains. With no nodes the input feeds the output
// directly.
func Chain(nodes ...Node) Graph {
	g := Graph{
		Nodes: append([]Node(nil), nodes...),
		Start: InputNodeID,
		End:   OutputNodeID,
	}

	prev := InputNodeID
	for i, n := range g.Nodes {
		key := nodeKey(i, n)
		g.Connections = append(g.Connections, Connection{From: prev, To: key, Gain: 1})
		prev = key
	}

	g.Connections = append(g.Connections, Connection{From: prev, To: OutputNodeID, Gain: 1})

	return g
}

// Clone returns a copy that shares no slices with g.
func (g Graph) Clone() Graph {
	g.Nodes = append([]Node(nil), g.Nodes...)
	g.Connections = append([]Connection(nil), g.Connections...)

	return g
}
