package engines

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/workload"
)

// TestNew tests that every kind can be constructed and reports its own kind
func TestNew(t *testing.T) {
	w, err := workload.Generate(workload.DefaultSeed, 100)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, kind := range Kinds() {
		a, err := New(kind, DefaultOptions())
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}
		if a.Info().Kind != kind {
			t.Errorf("Expected kind %s, got %s", kind, a.Info().Kind)
		}
		if sum := a.Build(w.Records).Probe(w.QueryKeys); sum != w.ReferenceSum {
			t.Errorf("%s: expected sum %d, got %d", kind, w.ReferenceSum, sum)
		}

		_, versioned := a.(maps.Versioned)
		if want := a.Info().Model != maps.ModelMutable; versioned != want {
			t.Errorf("%s: model %s, implements Versioned=%v", kind, a.Info().Model, versioned)
		}
	}
}

// TestNewUnknown tests the errors for unknown kinds and hashers
func TestNewUnknown(t *testing.T) {
	if _, err := New("skiplist", DefaultOptions()); !errors.Is(err, maps.ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}

	opts := DefaultOptions()
	opts.HAMTHasher = "sha1"
	if _, err := New(maps.KindHAMT, opts); !errors.Is(err, ErrUnknownHasher) {
		t.Errorf("Expected ErrUnknownHasher, got %v", err)
	}
}

// TestNewHasher tests hasher name resolution
func TestNewHasher(t *testing.T) {
	for input, want := range map[string]string{"": HasherMurmur3, "MURMUR3": HasherMurmur3, " fnv ": HasherFNV} {
		_, name, err := NewHasher(input, 0)
		if err != nil {
			t.Fatalf("NewHasher(%q) failed: %v", input, err)
		}
		if name != want {
			t.Errorf("NewHasher(%q): expected %s, got %s", input, want, name)
		}
	}
}
