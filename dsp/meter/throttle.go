package meter

// DefaultInterval is the number of blocks between two published frames.
const DefaultInterval = 8

// Throttle counts blocks and fires once every interval blocks.
type Throttle struct {
	interval int
	count    int
}

// NewThrottle creates a Throttle; interval < 1 selects DefaultInterval.
func NewThrottle(interval int) Throttle {
	if interval < 1 {
		interval = DefaultInterval
	}

	return Throttle{interval: interval}
}

// Tick records one block and reports whether this block should publish.
func (t *Throttle) Tick() bool {
	if t.interval < 1 {
		t.interval = DefaultInterval
	}

	t.count++
	if t.count < t.interval {
		return false
	}

	t.count = 0

	return true
}

// Interval returns the publish interval in blocks.
func (t *Throttle) Interval() int {
	return t.interval
}

// Reset restarts the block count.
func (t *Throttle) Reset() {
	t.count = 0
}
