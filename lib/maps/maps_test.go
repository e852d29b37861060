package maps

import (
	"errors"
	"testing"
)

// TestParseKind tests kind name validation
func TestParseKind(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q): expected %s, got %s (%v)", k, k, got, err)
		}
	}

	if got, err := ParseKind(" HAMT "); err != nil || got != KindHAMT {
		t.Errorf("Expected case and space insensitive parsing, got %s (%v)", got, err)
	}

	if _, err := ParseKind("skiplist"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
}

// TestParseKinds tests comma separated kind lists
func TestParseKinds(t *testing.T) {
	for _, input := range []string{"", "all", " ALL "} {
		got, err := ParseKinds(input)
		if err != nil {
			t.Fatalf("ParseKinds(%q) failed: %v", input, err)
		}
		if len(got) != len(AllKinds()) {
			t.Errorf("ParseKinds(%q): expected all %d kinds, got %v", input, len(AllKinds()), got)
		}
	}

	got, err := ParseKinds("hamt,builtin,hamt")
	if err != nil {
		t.Fatalf("ParseKinds failed: %v", err)
	}
	if len(got) != 2 || got[0] != KindHAMT || got[1] != KindBuiltin {
		t.Errorf("Expected [hamt builtin], got %v", got)
	}

	if _, err := ParseKinds("builtin,nope"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
}

// TestAllKindsCopy tests that callers cannot modify the kind list
func TestAllKindsCopy(t *testing.T) {
	a := AllKinds()
	a[0] = "changed"
	if AllKinds()[0] != KindBuiltin {
		t.Error("AllKinds should return a copy")
	}
}
