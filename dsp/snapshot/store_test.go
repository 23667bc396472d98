package snapshot

import (
	"errors"
	"sync"
	"testing"

	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestStorePublishLoad(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	st := NewStore(log)

	if st.Load() != nil {
		t.Fatal("new store should be empty")
	}

	s := chainSnapshot(effect.KindDelay)
	if err := st.Publish(s); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if st.Load() != s || !s.Compiled() {
		t.Fatal("published snapshot not current or not compiled")
	}

	if err := st.Publish(nil); err != nil || st.Load() != nil {
		t.Fatalf("Publish(nil)=%v current=%v", err, st.Load())
	}

	if st.Generation() != 2 {
		t.Fatalf("generation=%d want 2", st.Generation())
	}
}

func TestStoreRejectsInvalidSnapshot(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	st := NewStore(log)

	good := chainSnapshot(effect.KindTremolo)
	if err := st.Publish(good); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	err := st.Publish(&Snapshot{Mode: 42})
	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("err=%v want ErrInvalidMode", err)
	}

	if st.Load() != good {
		t.Fatal("rejected snapshot replaced the current one")
	}

	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("last log entry=%+v want error", entry)
	}
}

func TestStoreLogsCycleDiagnostics(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	st := NewStore(log)

	s := &Snapshot{Enabled: true, Mode: ModeManual, Manual: cyclicGraph()}
	if err := st.Publish(s); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if st.Load() != s {
		t.Fatal("cyclic snapshot should still be published")
	}

	warned := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}

	if !warned {
		t.Fatal("expected a warning for unscheduled nodes")
	}
}

func TestStoreConcurrentPublishLoad(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()
	st := NewStore(log)

	const rounds = 500

	var wg sync.WaitGroup

	wg.Go(func() {
		kinds := []effect.Kind{effect.KindDelay, effect.KindTremolo, effect.KindBitcrusher}
		for i := range rounds {
			_ = st.Publish(chainSnapshot(kinds[:1+i%len(kinds)]...))
		}
	})

	for range 4 {
		wg.Go(func() {
			for range rounds {
				s := st.Load()
				if s == nil {
					continue
				}

				plan := s.Plans().Automatic
				if !s.Compiled() || plan == nil || len(plan.Steps) != len(s.Automatic.Nodes) {
					t.Error("loaded a partially built snapshot")
					return
				}
			}
		})
	}

	wg.Wait()
}
