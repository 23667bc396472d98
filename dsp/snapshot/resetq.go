package snapshot

import "sync/atomic"

// DefaultResetQueueSize is the capacity used by NewResetQueue for sizes < 1.
const DefaultResetQueueSize = 64

// ResetQueue carries node reset requests from the configuration side to the
// processing path. It is a single-producer, single-consumer ring over two
// monotonically increasing counters: Push belongs to one producer goroutine
// and Drain to the processing goroutine. Neither side blocks.
type ResetQueue struct {
	writePos atomic.Uint64
	_        [56]byte
	readPos  atomic.Uint64
	_        [56]byte

	slots []string
	mask  uint64
}

// NewResetQueue creates a queue holding at least size requests, rounded up
// to a power of two.
func NewResetQueue(size int) *ResetQueue {
	if size < 1 {
		size = DefaultResetQueueSize
	}

	n := 1
	for n < size {
		n <<= 1
	}

	return &ResetQueue{
		slots: make([]string, n),
		mask:  uint64(n - 1),
	}
}

// Push queues a reset of nodeID, or of every node when nodeID is empty. It
// returns false when the queue is full.
func (q *ResetQueue) Push(nodeID string) bool {
	w := q.writePos.Load()
	r := q.readPos.Load()

	if w-r == uint64(len(q.slots)) {
		return false
	}

	q.slots[w&q.mask] = nodeID
	q.writePos.Store(w + 1)

	return true
}

// Drain hands every pending request to fn in push order and returns how
// many there were.
func (q *ResetQueue) Drain(fn func(nodeID string)) int {
	r := q.readPos.Load()
	w := q.writePos.Load()

	for i := r; i < w; i++ {
		fn(q.slots[i&q.mask])
	}

	q.readPos.Store(w)

	return int(w - r)
}

// Len returns the number of pending requests.
func (q *ResetQueue) Len() int {
	return int(q.writePos.Load() - q.readPos.Load())
}
