package snapshot

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/dsp/graph"
)

// ErrKindConflict is returned when one node id is used with two kinds.
var ErrKindConflict = errors.New("snapshot: node id used with conflicting kinds")

// ErrInvalidNode is returned when a graph contains a node without a valid
// effect kind.
var ErrInvalidNode = errors.New("snapshot: invalid node")

// Plans holds the compiled graph of every mode.
type Plans struct {
	Automatic  *graph.Plan
	Manual     *graph.Plan
	SplitLeft  *graph.Plan
	SplitRight *graph.Plan
}

// Snapshot is one immutable routing configuration. Once published it must
// not be modified; build a new one instead.
type Snapshot struct {
	Enabled bool
	// Reconfiguring passes audio through while the output side is rebuilt;
	// the engine tears its output ring down until the flag clears.
	Reconfiguring bool
	Mode          Mode
	// Limiter applies the soft limiter to every graph output.
	Limiter bool

	Automatic  graph.Graph
	Manual     graph.Graph
	SplitLeft  graph.Graph
	SplitRight graph.Graph

	Params effect.ParamTable

	plans    Plans
	compiled bool
}

// Passthrough reports whether audio bypasses every graph. A nil snapshot
// is passthrough.
func (s *Snapshot) Passthrough() bool {
	return s == nil || !s.Enabled || s.Reconfiguring
}

// Validate checks the mode and every node kind. A node id names one effect
// runtime, so it must have the same kind wherever it appears.
func (s *Snapshot) Validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, uint8(s.Mode))
	}

	type use struct {
		kind  effect.Kind
		graph string
	}

	ids := map[string]use{}

	for _, named := range s.graphs() {
		for i, n := range named.graph.Nodes {
			if !n.Kind.Valid() {
				return fmt.Errorf("%w: %s node %q has kind %s", ErrInvalidNode, named.name, named.graph.Key(i), n.Kind)
			}

			if n.ID == "" {
				continue
			}

			prev, seen := ids[n.ID]
			if seen && prev.kind != n.Kind {
				return fmt.Errorf("%w: %q is %s in the %s graph and %s in the %s graph",
					ErrKindConflict, n.ID, prev.kind, prev.graph, n.Kind, named.name)
			}

			if !seen {
				ids[n.ID] = use{kind: n.Kind, graph: named.name}
			}
		}
	}

	return nil
}

// Clone returns an uncompiled copy of s that shares no maps or slices
// with it.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	return &Snapshot{
		Enabled:       s.Enabled,
		Reconfiguring: s.Reconfiguring,
		Mode:          s.Mode,
		Limiter:       s.Limiter,
		Automatic:     s.Automatic.Clone(),
		Manual:        s.Manual.Clone(),
		SplitLeft:     s.SplitLeft.Clone(),
		SplitRight:    s.SplitRight.Clone(),
		Params:        s.Params.Clone(),
	}
}

// Compile validates s and compiles all of its graphs. The returned error
// joins the cycle diagnostics of every graph; s is usable even then, with
// the cyclic nodes left out.
func (s *Snapshot) Compile() error {
	err := s.Validate()
	if err != nil {
		return err
	}

	var diags []error

	plans := make([]*graph.Plan, 0, 4)
	for _, named := range s.graphs() {
		plan := graph.Compile(named.graph)
		if err := plan.Err(); err != nil {
			diags = append(diags, fmt.Errorf("%s graph: %w", named.name, err))
		}

		plans = append(plans, plan)
	}

	s.plans = Plans{
		Automatic:  plans[0],
		Manual:     plans[1],
		SplitLeft:  plans[2],
		SplitRight: plans[3],
	}
	s.compiled = true

	return errors.Join(diags...)
}

// Compiled reports whether Compile has run.
func (s *Snapshot) Compiled() bool {
	return s != nil && s.compiled
}

// Plans returns the compiled graphs. The zero Plans is returned before
// Compile.
func (s *Snapshot) Plans() Plans {
	if s == nil {
		return Plans{}
	}

	return s.plans
}

// Bindings returns the routing key and kind of every scheduled node across
// all modes. A key used by more than one graph keeps the first binding.
func (s *Snapshot) Bindings() []effect.Binding {
	if s == nil {
		return nil
	}

	seen := map[string]bool{}

	var out []effect.Binding

	for _, plan := range []*graph.Plan{s.plans.Automatic, s.plans.Manual, s.plans.SplitLeft, s.plans.SplitRight} {
		for _, b := range plan.Bindings() {
			if seen[b.Key] {
				continue
			}

			seen[b.Key] = true
			out = append(out, b)
		}
	}

	return out
}

type namedGraph struct {
	name  string
	graph graph.Graph
}

func (s *Snapshot) graphs() [4]namedGraph {
	return [4]namedGraph{
		{name: "automatic", graph: s.Automatic},
		{name: "manual", graph: s.Manual},
		{name: "split left", graph: s.SplitLeft},
		{name: "split right", graph: s.SplitRight},
	}
}
