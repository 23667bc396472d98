package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-route/dsp/effect"
)

// ErrCycle is reported by Plan.Err when reachable nodes could not be
// scheduled because they sit on a cycle.
var ErrCycle = errors.New("graph: cycle leaves nodes unscheduled")

const (
	// SlotInput marks an input that reads the block's raw input.
	SlotInput = -1
)

// Input is one resolved incoming edge of a step or of the graph output.
type Input struct {
	From string
	// Slot is the index of the producing step, or SlotInput.
	Slot int
	Gain float64
}

// Step is one scheduled node.
type Step struct {
	Key    string
	NodeID string
	Kind   effect.Kind
	Inputs []Input
}

// Plan is the compiled, immutable form of a Graph.
type Plan struct {
	Start string
	End   string
	// Steps are in execution order; step i writes slot i.
	Steps []Step
	// Output holds the end node's inputs.
	Output []Input
	// AutoWired lists the edges synthesised by AutoConnectEnd.
	AutoWired []Connection
	// Unscheduled lists reachable nodes left out of the order by a cycle.
	Unscheduled []string
	// Unreachable lists nodes not reachable from Start.
	Unreachable []string
}

// Inert reports whether the plan passes audio through unchanged.
func (p *Plan) Inert() bool {
	return p == nil || p.Start == "" || p.End == ""
}

// Order returns the routing keys of the steps in execution order.
func (p *Plan) Order() []string {
	if p == nil {
		return nil
	}

	out := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Key
	}

	return out
}

// Err returns a diagnostic for nodes dropped because of a cycle, or nil.
// The plan remains executable either way.
func (p *Plan) Err() error {
	if p == nil || len(p.Unscheduled) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrCycle, strings.Join(p.Unscheduled, ", "))
}

// Bindings returns the routing key and kind of every step, for syncing
// effect runtimes.
func (p *Plan) Bindings() []effect.Binding {
	if p == nil {
		return nil
	}

	out := make([]effect.Binding, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = effect.Binding{Key: s.Key, Kind: s.Kind}
	}

	return out
}

// Compile schedules g.
//
// Nodes reachable from Start are ordered with Kahn's algorithm using a FIFO
// ready queue seeded in node order, so equal inputs always produce the same
// order. Edges from Start never block a node. With AutoConnectEnd, every
// reachable node that feeds neither another reachable node nor End gets a
// unit-gain edge to End. Nodes on a cycle are left out and reported in
// Unscheduled.
//
//nolint:cyclop,funlen
func Compile(g Graph) *Plan {
	p := &Plan{Start: g.Start, End: g.End}
	if g.Inert() {
		return p
	}

	var (
		keys  []string
		nodes = make(map[string]Node, len(g.Nodes))
	)

	for i, n := range g.Nodes {
		key := nodeKey(i, n)
		if key == g.Start || key == g.End {
			continue
		}

		if _, dup := nodes[key]; dup {
			continue
		}

		nodes[key] = n
		keys = append(keys, key)
	}

	known := func(id string) bool {
		if id == g.Start || id == g.End {
			return true
		}

		_, ok := nodes[id]

		return ok
	}

	edges := make([]Connection, 0, len(g.Connections))
	outgoing := make(map[string][]int, len(nodes)+1)

	for _, c := range g.Connections {
		if !known(c.From) || !known(c.To) {
			continue
		}

		outgoing[c.From] = append(outgoing[c.From], len(edges))
		edges = append(edges, c)
	}

	visited := map[string]bool{g.Start: true}
	queue := []string{g.Start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, ei := range outgoing[id] {
			to := edges[ei].To
			if !visited[to] {
				visited[to] = true
				queue = append(queue, to)
			}
		}
	}

	reachable := func(id string) bool {
		return visited[id] && id != g.Start && id != g.End
	}

	if g.AutoConnectEnd {
		for _, key := range keys {
			if !reachable(key) {
				continue
			}

			wired := false

			for _, ei := range outgoing[key] {
				to := edges[ei].To
				if to == g.End || (to != key && reachable(to)) {
					wired = true
					break
				}
			}

			if wired {
				continue
			}

			c := Connection{From: key, To: g.End, Gain: 1}
			outgoing[key] = append(outgoing[key], len(edges))
			edges = append(edges, c)
			p.AutoWired = append(p.AutoWired, c)
		}
	}

	indegree := make(map[string]int, len(nodes))

	for _, e := range edges {
		if !reachable(e.To) || !reachable(e.From) {
			continue
		}

		indegree[e.To]++
	}

	for _, key := range keys {
		if reachable(key) && indegree[key] == 0 {
			queue = append(queue, key)
		}
	}

	slots := make(map[string]int, len(nodes))

	var order []string

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, done := slots[id]; done {
			continue
		}

		slots[id] = len(order)
		order = append(order, id)

		for _, ei := range outgoing[id] {
			to := edges[ei].To
			if !reachable(to) {
				continue
			}

			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	incoming := func(to string) []Input {
		var inputs []Input

		for _, e := range edges {
			if e.To != to {
				continue
			}

			if e.From == g.Start {
				inputs = append(inputs, Input{From: e.From, Slot: SlotInput, Gain: e.Gain})
				continue
			}

			if slot, ok := slots[e.From]; ok {
				inputs = append(inputs, Input{From: e.From, Slot: slot, Gain: e.Gain})
			}
		}

		return inputs
	}

	p.Steps = make([]Step, len(order))
	for i, key := range order {
		n := nodes[key]
		p.Steps[i] = Step{Key: key, NodeID: n.ID, Kind: n.Kind, Inputs: incoming(key)}
	}

	p.Output = incoming(g.End)

	for _, key := range keys {
		_, scheduled := slots[key]

		switch {
		case reachable(key) && !scheduled:
			p.Unscheduled = append(p.Unscheduled, key)
		case !reachable(key):
			p.Unreachable = append(p.Unreachable, key)
		}
	}

	return p
}
