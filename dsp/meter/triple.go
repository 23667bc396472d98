package meter

import "sync/atomic"

const freshBit = 1 << 2

// tripleBuffer passes frames from one writer to one reader without locks.
// The writer owns back, the reader owns front, and middle is exchanged
// atomically; freshBit marks an unread middle.
type tripleBuffer struct {
	frames [3]Frame
	back   int
	front  int
	middle atomic.Uint32
}

func newTripleBuffer() *tripleBuffer {
	tb := &tripleBuffer{back: 0, front: 2}
	tb.middle.Store(1)

	for i := range tb.frames {
		tb.frames[i].Levels = map[string]float64{}
	}

	return tb
}

// writable returns the frame the writer may fill.
func (tb *tripleBuffer) writable() *Frame {
	return &tb.frames[tb.back]
}

// publish hands the filled back frame to the reader.
func (tb *tripleBuffer) publish() {
	prev := tb.middle.Swap(uint32(tb.back) | freshBit)
	tb.back = int(prev &^ freshBit)
}

// latest returns the newest published frame and whether it is new since
// the previous call.
func (tb *tripleBuffer) latest() (*Frame, bool) {
	if tb.middle.Load()&freshBit == 0 {
		return &tb.frames[tb.front], false
	}

	prev := tb.middle.Swap(uint32(tb.front))
	tb.front = int(prev &^ freshBit)

	return &tb.frames[tb.front], true
}
