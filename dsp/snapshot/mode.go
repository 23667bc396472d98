package snapshot

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned for an unknown routing mode.
var ErrInvalidMode = errors.New("snapshot: invalid mode")

// Mode selects which graph renders audio.
type Mode uint8

// Routing modes.
const (
	// ModeAutomatic runs the automatic effect chain.
	ModeAutomatic Mode = iota
	// ModeManual runs the manual graph.
	ModeManual
	// ModeSplit runs the left graph on channel 0 and the right graph on
	// channel 1.
	ModeSplit

	modeCount
)

var modeNames = [modeCount]string{
	ModeAutomatic: "automatic",
	ModeManual:    "manual",
	ModeSplit:     "split",
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m < modeCount
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}

	return modeNames[m]
}

// ParseMode resolves a mode name.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
