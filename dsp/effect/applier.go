package effect

// Context describes the block an effect is applied to.
type Context struct {
	SampleRate float64
	Channels   int
	Frames     int
}

// Call identifies one effect application.
type Call struct {
	Kind Kind
	// Key is the node's routing key: its id, or a positional key for
	// automatic-chain entries without one. Stateful runtimes are keyed by it.
	Key string
	// NodeID is empty for nodes that must not report a level.
	NodeID  string
	Context Context
	Params  ParamTable
}

// Levels receives per-node signal levels during one block.
type Levels map[string]float64

// Applier performs the in-place DSP of one node. Implementations run on the
// processing path: they must not block and should not allocate.
type Applier interface {
	Apply(call Call, buf [][]float64, levels Levels)
}

// Resetter is implemented by Appliers that hold state which can be cleared
// between blocks, e.g. delay lines. An empty key resets every node.
type Resetter interface {
	Reset(key string)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(call Call, buf [][]float64, levels Levels)

// Apply calls f.
func (f ApplierFunc) Apply(call Call, buf [][]float64, levels Levels) {
	f(call, buf, levels)
}

// LimiterFunc limits a block in place. It must not have side effects beyond
// gain limiting.
type LimiterFunc func(buf [][]float64)
