package snapshot

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, m := range []Mode{ModeAutomatic, ModeManual, ModeSplit} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q)=%v,%v", m.String(), got, err)
		}
	}

	if _, err := ParseMode("stereo"); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("err=%v want ErrInvalidMode", err)
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if got := Mode(9).String(); got != "Mode(9)" {
		t.Fatalf("String=%q", got)
	}

	if _, err := Mode(9).MarshalText(); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("err=%v want ErrInvalidMode", err)
	}
}

func TestModeJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(ModeSplit)
	if err != nil || string(raw) != `"split"` {
		t.Fatalf("Marshal=%s,%v", raw, err)
	}

	var m Mode
	if err := json.Unmarshal([]byte(`"manual"`), &m); err != nil || m != ModeManual {
		t.Fatalf("Unmarshal=%v,%v", m, err)
	}
}
