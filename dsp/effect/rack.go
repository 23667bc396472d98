package effect

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"
)

// Binding ties a routing key to the kind of effect that runs under it.
type Binding struct {
	Key  string
	Kind Kind
}

type rackEntry struct {
	kind    Kind
	runtime Runtime
}

type rackTable map[string]*rackEntry

// Rack is the default Applier. It owns one Runtime per routing key.
//
// Sync runs on the configuration side and publishes a new immutable table;
// Apply and Reset run on the processing path and only read it. Runtimes
// carried over between tables keep their state.
type Rack struct {
	registry *Registry

	syncMu sync.Mutex
	table  atomic.Pointer[rackTable]
}

// NewRack creates a Rack backed by registry. A nil registry uses
// DefaultRegistry.
func NewRack(registry *Registry) *Rack {
	if registry == nil {
		registry = DefaultRegistry()
	}

	r := &Rack{registry: registry}
	empty := rackTable{}
	r.table.Store(&empty)

	return r
}

// Sync makes the runtime table match bindings. Existing runtimes whose key
// and kind are unchanged are kept; new or retyped keys get a fresh runtime;
// keys no longer bound are dropped.
func (r *Rack) Sync(ctx Context, bindings []Binding) error {
	r.syncMu.Lock()
	defer r.syncMu.Unlock()

	prev := *r.table.Load()
	next := make(rackTable, len(bindings))

	for _, b := range bindings {
		if _, seen := next[b.Key]; seen {
			continue
		}

		if old := prev[b.Key]; old != nil && old.kind == b.Kind {
			next[b.Key] = old
			continue
		}

		factory := r.registry.Lookup(b.Kind)
		if factory == nil {
			continue
		}

		rt, err := factory(ctx)
		if err != nil {
			return fmt.Errorf("effect: build runtime %q (%s): %w", b.Key, b.Kind, err)
		}

		if rt != nil {
			next[b.Key] = &rackEntry{kind: b.Kind, runtime: rt}
		}
	}

	r.table.Store(&next)

	return nil
}

// Runtime returns the runtime bound to key, or nil.
func (r *Rack) Runtime(key string) Runtime {
	e := (*r.table.Load())[key]
	if e == nil {
		return nil
	}

	return e.runtime
}

// Apply implements Applier.
func (r *Rack) Apply(call Call, buf [][]float64, levels Levels) {
	params := call.Params.For(call.NodeID, call.Kind)

	e := (*r.table.Load())[call.Key]
	if e != nil && e.kind == call.Kind && !params.Bypassed {
		e.runtime.Process(buf, call.Context, params)
	}

	if levels != nil && call.NodeID != "" {
		levels[call.NodeID] = Peak(buf)
	}
}

// Reset implements Resetter.
func (r *Rack) Reset(key string) {
	table := *r.table.Load()

	if key == "" {
		for _, e := range table {
			e.runtime.Reset()
		}

		return
	}

	if e := table[key]; e != nil {
		e.runtime.Reset()
	}
}

// Peak returns the largest absolute sample across all channels.
func Peak(buf [][]float64) float64 {
	peak := 0.0
	for _, ch := range buf {
		peak = max(peak, vecmath.MaxAbs(ch))
	}

	return peak
}
