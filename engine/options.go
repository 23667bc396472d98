package engine

import (
	"time"

	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/record"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultRingCapacity is the number of output blocks the ring holds.
	DefaultRingCapacity = 8
	// DefaultResetQueueSize bounds pending reset requests.
	DefaultResetQueueSize = 64
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	applier        effect.Applier
	limiter        effect.LimiterFunc
	recorder       record.Sink
	ringCapacity   int
	meterInterval  int
	tapSize        int
	fade           time.Duration
	resetQueueSize int
	log            logrus.FieldLogger
}

func defaultConfig() config {
	return config{
		ringCapacity:   DefaultRingCapacity,
		resetQueueSize: DefaultResetQueueSize,
		log:            logrus.StandardLogger(),
	}
}

// WithApplier sets the effect contract. The default is an effect.Rack over
// the built-in runtimes. Appliers that also implement
// Sync(effect.Context, []effect.Binding) error are synced on Publish;
// those implementing effect.Resetter receive reset requests.
func WithApplier(a effect.Applier) Option {
	return func(c *config) {
		c.applier = a
	}
}

// WithLimiter replaces effect.SoftLimit as the output limiter.
func WithLimiter(l effect.LimiterFunc) Option {
	return func(c *config) {
		c.limiter = l
	}
}

// WithRecorder installs a recording sink that sees every output block.
func WithRecorder(s record.Sink) Option {
	return func(c *config) {
		c.recorder = s
	}
}

// WithRingCapacity sets the output ring capacity in blocks; values below 2
// are ignored.
func WithRingCapacity(n int) Option {
	return func(c *config) {
		if n >= 2 {
			c.ringCapacity = n
		}
	}
}

// WithMeterInterval sets how many blocks pass between level publications.
func WithMeterInterval(blocks int) Option {
	return func(c *config) {
		c.meterInterval = blocks
	}
}

// WithTapSize sets the length of the meter's mono output tap.
func WithTapSize(samples int) Option {
	return func(c *config) {
		c.tapSize = samples
	}
}

// WithFade sets the mode crossfade duration.
func WithFade(d time.Duration) Option {
	return func(c *config) {
		c.fade = d
	}
}

// WithResetQueueSize bounds the number of pending reset requests.
func WithResetQueueSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.resetQueueSize = n
		}
	}
}

// WithLogger sets the logger used off the processing path and on format
// changes.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
