package meter

import (
	"sync"

	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-vecmath"
)

// DefaultTapSize is the number of mono samples kept for the tap.
const DefaultTapSize = 1024

// Meter publishes throttled level frames. Observe belongs to the processing
// goroutine; Updates and Current may be used from any goroutine.
type Meter struct {
	throttle Throttle
	frames   *tripleBuffer
	notify   chan struct{}
	seq      uint64

	history []float64
	histPos int

	readMu sync.Mutex
}

// New creates a Meter publishing every interval blocks with a mono tap of
// tapSize samples. Non-positive arguments select the defaults.
func New(interval, tapSize int) *Meter {
	if tapSize < 1 {
		tapSize = DefaultTapSize
	}

	return &Meter{
		throttle: NewThrottle(interval),
		frames:   newTripleBuffer(),
		notify:   make(chan struct{}, 1),
		history:  make([]float64, tapSize),
	}
}

// Observe records one processed block: the node levels reported while
// rendering it and the final output. It reports whether a frame was
// published. Observe never blocks; in steady state it does not allocate.
func (m *Meter) Observe(levels effect.Levels, out [][]float64, sampleRate float64) bool {
	m.record(out)

	if !m.throttle.Tick() {
		return false
	}

	f := m.frames.writable()
	m.seq++
	f.Seq = m.seq
	f.SampleRate = sampleRate

	clear(f.Levels)

	for id, v := range levels {
		f.Levels[id] = v
	}

	f.Peaks = resize(f.Peaks, len(out))
	f.RMS = resize(f.RMS, len(out))

	for ch, x := range out {
		f.Peaks[ch] = vecmath.MaxAbs(x)
		f.RMS[ch] = rms(x)
	}

	f.Tap = resize(f.Tap, len(m.history))
	n := copy(f.Tap, m.history[m.histPos:])
	copy(f.Tap[n:], m.history[:m.histPos])

	m.frames.publish()

	select {
	case m.notify <- struct{}{}:
	default:
	}

	return true
}

// record appends the mono mix of out to the tap history.
func (m *Meter) record(out [][]float64) {
	channels := len(out)
	if channels == 0 {
		return
	}

	scale := 1 / float64(channels)
	size := len(m.history)

	frames := len(out[0])
	for _, ch := range out[1:] {
		frames = min(frames, len(ch))
	}

	start := max(0, frames-size)
	for i := start; i < frames; i++ {
		sum := 0.0
		for _, ch := range out {
			sum += ch[i]
		}

		m.history[m.histPos] = sum * scale

		m.histPos++
		if m.histPos == size {
			m.histPos = 0
		}
	}
}

// Updates returns a channel that receives a value after a frame was
// published. Notifications coalesce; read Current for the data.
func (m *Meter) Updates() <-chan struct{} {
	return m.notify
}

// Current returns a copy of the newest published frame. Before the first
// publication the frame has Seq 0 and no data.
func (m *Meter) Current() Frame {
	m.readMu.Lock()
	defer m.readMu.Unlock()

	f, _ := m.frames.latest()

	return f.Clone()
}

// Interval returns the publish interval in blocks.
func (m *Meter) Interval() int {
	return m.throttle.Interval()
}

func resize(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}

	return buf[:n]
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return mathSqrt(vecmath.DotProduct(x, x) / float64(len(x)))
}
