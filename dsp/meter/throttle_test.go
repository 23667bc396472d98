package meter

import "testing"

func TestThrottleCadence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval int
		want     int
	}{
		{interval: 8, want: 8},
		{interval: 1, want: 1},
		{interval: 0, want: DefaultInterval},
		{interval: -3, want: DefaultInterval},
	}

	for _, tc := range tests {
		th := NewThrottle(tc.interval)

		var fired []int

		for block := 1; block <= 3*tc.want; block++ {
			if th.Tick() {
				fired = append(fired, block)
			}
		}

		if len(fired) != 3 || fired[0] != tc.want || fired[2] != 3*tc.want {
			t.Fatalf("interval %d: fired at %v", tc.interval, fired)
		}
	}
}

func TestThrottleZeroValueAndReset(t *testing.T) {
	t.Parallel()

	var th Throttle
	for range DefaultInterval - 1 {
		if th.Tick() {
			t.Fatal("zero throttle fired early")
		}
	}

	th.Reset()

	for range DefaultInterval - 1 {
		if th.Tick() {
			t.Fatal("reset did not restart the count")
		}
	}

	if !th.Tick() {
		t.Fatal("throttle did not fire after a full interval")
	}
}
