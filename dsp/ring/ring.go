// Package ring implements the fixed-capacity frame ring that hands processed
// audio from the processing callback to the output device callback.
//
// The producer never blocks: when the ring is full the oldest unread frame
// is dropped. Enqueue and Dequeue share one mutex that only guards index
// arithmetic and a bounded copy.
package ring

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrCapacity is returned when Initialize is called with fewer than two frames.
	ErrCapacity = errors.New("ring: capacity must be at least 2")
	// ErrFrameSize is returned when Initialize is called with a non-positive frame size.
	ErrFrameSize = errors.New("ring: frame size must be positive")
)

// Buffer is a single-producer single-consumer ring of fixed-size frames.
// The zero value is an uninitialised ring on which every operation is a
// no-op.
type Buffer struct {
	mu sync.Mutex

	storage   []float64
	frameSize int
	capacity  uint64

	// Monotonic counters; slots are taken modulo capacity.
	write uint64
	read  uint64

	dropped uint64
}

// New returns a ring initialised for frameSize-sample frames.
func New(frameSize, capacity int) (*Buffer, error) {
	b := &Buffer{}

	err := b.Initialize(frameSize, capacity)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// Initialize allocates frameSize*capacity samples and resets both indices.
// Any previous storage is released. The allocation happens before the lock
// is taken so the output callback is never held up by it.
func (b *Buffer) Initialize(frameSize, capacity int) error {
	if b == nil {
		return nil
	}

	if frameSize <= 0 {
		return fmt.Errorf("%w: %d", ErrFrameSize, frameSize)
	}

	if capacity < 2 {
		return fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}

	storage := make([]float64, frameSize*capacity)

	b.mu.Lock()
	b.storage = storage
	b.frameSize = frameSize
	b.capacity = uint64(capacity)
	b.write = 0
	b.read = 0
	b.dropped = 0
	b.mu.Unlock()

	return nil
}

// Release drops the storage and the dropped count. The ring behaves as
// uninitialised afterwards.
func (b *Buffer) Release() {
	if b == nil {
		return
	}

	b.mu.Lock()
	b.storage = nil
	b.frameSize = 0
	b.capacity = 0
	b.write = 0
	b.read = 0
	b.dropped = 0
	b.mu.Unlock()
}

// Enqueue copies up to FrameSize samples of frame into the next slot. When
// the ring is full the oldest unread frame is discarded first. A short frame
// leaves the tail of the slot silent.
func (b *Buffer) Enqueue(frame []float64) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.capacity == 0 {
		return
	}

	if b.write-b.read >= b.capacity {
		b.read++
		b.dropped++
	}

	slot := b.slot(b.write)
	n := copy(slot, frame)
	clear(slot[n:])

	b.write++
}

// Dequeue copies the oldest unread frame into dst, at most min(count,
// FrameSize, len(dst)) samples, and reports whether a frame was available.
// On an empty ring dst is left untouched and the caller fills silence.
func (b *Buffer) Dequeue(dst []float64, count int) bool {
	if b == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.capacity == 0 || b.read == b.write {
		return false
	}

	n := min(count, b.frameSize, len(dst))
	if n > 0 {
		copy(dst[:n], b.slot(b.read))
	}

	b.read++

	return true
}

// Reset discards all unread frames without releasing storage.
func (b *Buffer) Reset() {
	if b == nil {
		return
	}

	b.mu.Lock()
	b.read = b.write
	b.mu.Unlock()
}

// Len returns the number of unread frames.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return int(b.write - b.read)
}

// FrameSize returns the configured samples per frame, or 0 when uninitialised.
func (b *Buffer) FrameSize() int {
	if b == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.frameSize
}

// Capacity returns the number of frame slots, or 0 when uninitialised.
func (b *Buffer) Capacity() int {
	if b == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return int(b.capacity)
}

// Dropped returns how many unread frames were overwritten since Initialize.
func (b *Buffer) Dropped() uint64 {
	if b == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

// slot must be called with mu held.
func (b *Buffer) slot(index uint64) []float64 {
	start := int(index%b.capacity) * b.frameSize
	return b.storage[start : start+b.frameSize]
}
