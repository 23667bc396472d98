package buffer

import "sync"

// Block is an interleaved sample block together with its format.
type Block struct {
	Samples    []float64
	Frames     int
	Channels   int
	SampleRate float64
}

// Pool provides sync.Pool-based Block reuse for consumers that copy audio
// off the processing path.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Block{}
			},
		},
	}
}

// Get returns a Block whose Samples slice has frames*channels zeroed
// samples. Callers must return it via Put when done.
func (p *Pool) Get(frames, channels int, sampleRate float64) *Block {
	b := p.pool.Get().(*Block)

	n := max(frames*channels, 0)
	if cap(b.Samples) < n {
		b.Samples = make([]float64, n)
	} else {
		b.Samples = b.Samples[:n]
		clear(b.Samples)
	}

	b.Frames = frames
	b.Channels = channels
	b.SampleRate = sampleRate

	return b
}

// Put returns a Block to the pool for reuse.
// The caller must not use the block after calling Put.
func (p *Pool) Put(b *Block) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
