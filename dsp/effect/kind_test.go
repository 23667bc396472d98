package effect

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestKindNames(t *testing.T) {
	t.Parallel()

	kinds := Kinds()
	if len(kinds) != 19 {
		t.Fatalf("len(Kinds()) = %d, want 19", len(kinds))
	}

	seen := map[string]bool{}

	for _, k := range kinds {
		name := k.String()
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}

		seen[name] = true

		parsed, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}

		if parsed != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", name, parsed, k)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "invalid", "BassBoost", "wah"} {
		if _, err := ParseKind(name); !errors.Is(err, ErrUnknownKind) {
			t.Fatalf("ParseKind(%q) error = %v, want ErrUnknownKind", name, err)
		}
	}
}

func TestKindJSON(t *testing.T) {
	t.Parallel()

	var got struct {
		Kind Kind `json:"kind"`
	}

	if err := json.Unmarshal([]byte(`{"kind":"tenBandEQ"}`), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Kind != KindTenBandEQ {
		t.Fatalf("Kind = %v, want tenBandEQ", got.Kind)
	}

	if _, err := json.Marshal(struct{ K Kind }{KindInvalid}); err == nil {
		t.Fatal("expected error marshalling KindInvalid")
	}

	if Kind(200).String() != "Kind(200)" {
		t.Fatalf("out-of-range String() = %q", Kind(200).String())
	}
}
