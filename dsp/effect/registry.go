package effect

import (
	"errors"
	"fmt"
)

var (
	errDuplicateKind = errors.New("duplicate effect kind")
	errInvalidKind   = errors.New("invalid effect kind")
	errNilFactory    = errors.New("nil factory")
)

// Runtime is the per-node processing contract. Process works in place and
// reads its parameters on every block; Reset clears internal state.
type Runtime interface {
	Process(buf [][]float64, ctx Context, params Params)
	Reset()
}

// Factory builds one Runtime instance for a node. It runs off the
// processing path and may allocate.
type Factory func(ctx Context) (Runtime, error)

// Registry maps effect kinds to their factories.
type Registry struct {
	factories [kindCount]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a factory for the given kind.
func (r *Registry) Register(kind Kind, factory Factory) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", errInvalidKind, uint8(kind))
	}

	if factory == nil {
		return errNilFactory
	}

	if r.factories[kind] != nil {
		return fmt.Errorf("%w: %s", errDuplicateKind, kind)
	}

	r.factories[kind] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kind Kind, factory Factory) {
	err := r.Register(kind, factory)
	if err != nil {
		panic("effect registry: " + err.Error())
	}
}

// Lookup returns the factory for the given kind, or nil.
func (r *Registry) Lookup(kind Kind) Factory {
	if r == nil || kind >= kindCount {
		return nil
	}

	return r.factories[kind]
}

// DefaultRegistry returns a Registry with the built-in reference runtimes.
// Kinds without a factory pass audio through unchanged.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(KindDelay, func(ctx Context) (Runtime, error) {
		return newDelayRuntime(ctx.SampleRate), nil
	})
	r.MustRegister(KindTremolo, func(_ Context) (Runtime, error) {
		return &tremoloRuntime{}, nil
	})
	r.MustRegister(KindStereoWidth, func(_ Context) (Runtime, error) {
		return stereoWidthRuntime{}, nil
	})
	r.MustRegister(KindBitcrusher, func(_ Context) (Runtime, error) {
		return bitcrusherRuntime{}, nil
	})
	r.MustRegister(KindDistortion, func(_ Context) (Runtime, error) {
		return distortionRuntime{}, nil
	})

	return r
}
