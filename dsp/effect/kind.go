package effect

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when an effect name does not match any Kind.
var ErrUnknownKind = errors.New("effect: unknown kind")

// Kind tags the effect a node applies.
type Kind uint8

// Effect kinds. KindInvalid is the zero value and is never applied.
const (
	KindInvalid Kind = iota
	KindBassBoost
	KindPitchShift
	KindClarity
	KindDeMud
	KindSimpleEQ
	KindTenBandEQ
	KindCompressor
	KindReverb
	KindStereoWidth
	KindDelay
	KindDistortion
	KindTremolo
	KindChorus
	KindPhaser
	KindFlanger
	KindBitcrusher
	KindTapeSaturation
	KindRubberBandPitch
	KindResampling

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:         "invalid",
	KindBassBoost:       "bassBoost",
	KindPitchShift:      "pitchShift",
	KindClarity:         "clarity",
	KindDeMud:           "deMud",
	KindSimpleEQ:        "simpleEQ",
	KindTenBandEQ:       "tenBandEQ",
	KindCompressor:      "compressor",
	KindReverb:          "reverb",
	KindStereoWidth:     "stereoWidth",
	KindDelay:           "delay",
	KindDistortion:      "distortion",
	KindTremolo:         "tremolo",
	KindChorus:          "chorus",
	KindPhaser:          "phaser",
	KindFlanger:         "flanger",
	KindBitcrusher:      "bitcrusher",
	KindTapeSaturation:  "tapeSaturation",
	KindRubberBandPitch: "rubberBandPitch",
	KindResampling:      "resampling",
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}

	return out
}

// Valid reports whether k names a real effect.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return kindNames[k]
}

// ParseKind maps an effect name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}

	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}
