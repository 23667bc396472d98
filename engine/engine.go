// Package engine runs the per-block routing pipeline.
//
// An Engine is the explicit context shared by the three sides of a live
// audio setup. The configuration side publishes snapshots and queues
// resets. The processing side calls ProcessBlock for every captured block.
// The output side drains processed blocks with DequeueOutput. A UI may
// follow levels through Levels and CurrentLevelSnapshot.
package engine

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-route/dsp/buffer"
	"github.com/cwbudde/algo-route/dsp/core"
	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/dsp/graph"
	"github.com/cwbudde/algo-route/dsp/meter"
	"github.com/cwbudde/algo-route/dsp/ring"
	"github.com/cwbudde/algo-route/dsp/snapshot"
	"github.com/cwbudde/algo-route/dsp/transition"
	"github.com/cwbudde/algo-route/record"
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/sirupsen/logrus"
)

const modeCount = 3

// syncer is implemented by appliers that build per-node state ahead of
// publication, such as effect.Rack.
type syncer interface {
	Sync(ctx effect.Context, bindings []effect.Binding) error
}

// Stats is a point-in-time view of engine counters.
type Stats struct {
	Blocks        uint64
	FormatChanges uint64
	RingDrops     uint64
	Resets        uint64
	Generation    uint64
}

// Engine routes captured audio through the graphs of the current snapshot.
type Engine struct {
	log      logrus.FieldLogger
	applier  effect.Applier
	resetter effect.Resetter
	syncer   syncer
	recorder record.Sink

	store  *snapshot.Store
	resets *snapshot.ResetQueue
	out    *ring.Buffer
	meter  *meter.Meter

	ringCapacity int
	configMu     sync.Mutex
	sampleRate   atomic.Uint64

	blocks        atomic.Uint64
	formatChanges atomic.Uint64
	resetCount    atomic.Uint64
	ringDropsBase atomic.Uint64

	// Processing-side state, owned by the ProcessBlock goroutine.
	buffers     *buffer.Manager
	fader       *transition.Controller[snapshot.Mode]
	automatic   *graph.Executor
	manual      *graph.Executor
	splitLeft   *graph.Executor
	splitRight  *graph.Executor
	split       [][]float64
	splitLevels effect.Levels
	mixed       [][]float64
	from        [][][]float64
	renders     [modeCount][][]float64
	levels      [modeCount]effect.Levels
	rendered    [modeCount]bool
	noLevels    effect.Levels
	lastRate    float64
	bypassed    bool
	// ringReleased is set while a reconfiguring snapshot holds the ring down.
	ringReleased bool
	applyReset   func(nodeID string)
}

// New creates an Engine. Until the first Publish audio passes through.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.applier == nil {
		cfg.applier = effect.NewRack(nil)
	}

	e := &Engine{
		log:          cfg.log,
		applier:      cfg.applier,
		recorder:     cfg.recorder,
		store:        snapshot.NewStore(cfg.log),
		resets:       snapshot.NewResetQueue(cfg.resetQueueSize),
		out:          &ring.Buffer{},
		meter:        meter.New(cfg.meterInterval, cfg.tapSize),
		ringCapacity: cfg.ringCapacity,
		buffers:      buffer.NewManager(),
		fader:        transition.NewController[snapshot.Mode](cfg.fade),
		automatic:    graph.NewExecutor(cfg.applier, cfg.limiter),
		manual:       graph.NewExecutor(cfg.applier, cfg.limiter),
		splitLeft:    graph.NewExecutor(cfg.applier, cfg.limiter),
		splitRight:   graph.NewExecutor(cfg.applier, cfg.limiter),
		splitLevels:  effect.Levels{},
		from:         make([][][]float64, 0, modeCount+2),
		noLevels:     effect.Levels{},
		bypassed:     true,
	}

	e.resetter, _ = cfg.applier.(effect.Resetter)
	e.syncer, _ = cfg.applier.(syncer)
	e.applyReset = e.reset
	e.sampleRate.Store(math.Float64bits(core.DefaultFormat().SampleRate))

	features := cpu.DetectFeatures()
	e.log.WithFields(logrus.Fields{
		"function":     "New",
		"architecture": features.Architecture,
		"avx2":         features.HasAVX2,
		"neon":         features.HasNEON,
		"ring":         cfg.ringCapacity,
		"meter":        e.meter.Interval(),
	}).Debug("Engine created")

	return e
}

// Publish validates s, compiles a private copy of it, syncs the applier's
// runtimes and makes the copy current. The caller keeps ownership of s and
// may change it afterwards without affecting the engine. Publishing nil
// switches to passthrough. Cycle diagnostics are logged, not returned.
func (e *Engine) Publish(s *snapshot.Snapshot) error {
	e.configMu.Lock()
	defer e.configMu.Unlock()

	if s == nil {
		return e.store.Publish(nil)
	}

	err := s.Validate()
	if err != nil {
		return err
	}

	own := s.Clone()

	if diag := own.Compile(); diag != nil {
		e.log.WithFields(logrus.Fields{
			"function": "Publish",
			"error":    diag,
		}).Warn("Graph nodes left unscheduled")
	}

	if e.syncer != nil {
		ctx := effect.Context{SampleRate: math.Float64frombits(e.sampleRate.Load())}

		err := e.syncer.Sync(ctx, own.Bindings())
		if err != nil {
			return err
		}
	}

	return e.store.Publish(own)
}

// Snapshot returns the engine's copy of the current snapshot, or nil. It is
// shared with the processing side and must not be modified.
func (e *Engine) Snapshot() *snapshot.Snapshot {
	return e.store.Load()
}

// RequestReset asks the processing side to clear the state of nodeID, or of
// every node when nodeID is empty, before the next block. It returns false
// when too many requests are pending.
func (e *Engine) RequestReset(nodeID string) bool {
	e.configMu.Lock()
	defer e.configMu.Unlock()

	return e.resets.Push(nodeID)
}

// EnqueueOutput queues one interleaved block for the output side.
// ProcessBlock already does this for the blocks it renders.
func (e *Engine) EnqueueOutput(frame []float64) {
	e.out.Enqueue(frame)
}

// DequeueOutput copies the oldest processed block into dst, at most count
// samples. It returns false when nothing is queued; the caller then plays
// silence.
func (e *Engine) DequeueOutput(dst []float64, count int) bool {
	return e.out.Dequeue(dst, count)
}

// CurrentLevelSnapshot returns the newest published level frame.
func (e *Engine) CurrentLevelSnapshot() meter.Frame {
	return e.meter.Current()
}

// Levels returns a channel that signals newly published level frames.
func (e *Engine) Levels() <-chan struct{} {
	return e.meter.Updates()
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Blocks:        e.blocks.Load(),
		FormatChanges: e.formatChanges.Load(),
		RingDrops:     e.ringDropsBase.Load() + e.out.Dropped(),
		Resets:        e.resetCount.Load(),
		Generation:    e.store.Generation(),
	}
}

func (e *Engine) reset(nodeID string) {
	e.resetCount.Add(1)

	if e.resetter != nil {
		e.resetter.Reset(nodeID)
	}
}
