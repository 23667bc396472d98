package snapshot

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Store publishes snapshots to the processing path. Publish is called from
// the configuration side; Load is wait-free and safe from any goroutine.
type Store struct {
	current   atomic.Pointer[Snapshot]
	published atomic.Uint64
	log       logrus.FieldLogger
}

// NewStore creates an empty Store. A nil logger uses the logrus standard
// logger.
func NewStore(log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Store{log: log}
}

// Publish compiles s if needed and makes it the current snapshot. Invalid
// snapshots are rejected and the previous one stays current. Cycle
// diagnostics are logged and do not prevent publication. Publishing nil
// switches the processing path to passthrough.
func (st *Store) Publish(s *Snapshot) error {
	if s == nil {
		st.current.Store(nil)
		st.published.Add(1)
		st.log.Info("Snapshot cleared, audio passes through")

		return nil
	}

	err := s.Validate()
	if err != nil {
		st.log.WithFields(logrus.Fields{
			"function": "Publish",
			"error":    err,
		}).Error("Snapshot rejected")

		return err
	}

	if !s.Compiled() {
		if diag := s.Compile(); diag != nil {
			st.log.WithFields(logrus.Fields{
				"function": "Publish",
				"mode":     s.Mode,
				"error":    diag,
			}).Warn("Graph nodes left unscheduled")
		}
	}

	st.current.Store(s)
	gen := st.published.Add(1)

	st.log.WithFields(logrus.Fields{
		"function":      "Publish",
		"generation":    gen,
		"mode":          s.Mode,
		"enabled":       s.Enabled,
		"reconfiguring": s.Reconfiguring,
		"limiter":       s.Limiter,
	}).Debug("Snapshot published")

	return nil
}

// Load returns the current snapshot, or nil before the first Publish.
func (st *Store) Load() *Snapshot {
	return st.current.Load()
}

// Generation counts successful Publish calls.
func (st *Store) Generation() uint64 {
	return st.published.Load()
}
