package maps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinKolb/mapbench/lib/workload"
)

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// Kind identifies a map engine
type Kind string

const (
	KindBuiltin   Kind = "builtin"
	KindXsync     Kind = "xsync"
	KindIradix    Kind = "iradix"
	KindBTree     Kind = "btree"
	KindHAMT      Kind = "hamt"
	KindImmutable Kind = "immutable"
)

// kinds lists every kind in report order, the baseline first
var kinds = []Kind{KindBuiltin, KindXsync, KindIradix, KindBTree, KindHAMT, KindImmutable}

// Model describes how an engine treats updates
type Model string

const (
	ModelMutable    Model = "mutable"    // updated in place
	ModelSnapshot   Model = "snapshot"   // built through a builder, then frozen
	ModelPersistent Model = "persistent" // every update returns a new version
)

// ErrUnknownKind is returned by ParseKind for names that are not a Kind
var ErrUnknownKind = errors.New("unknown map kind")

// Info describes an adapter
type Info struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Model    Model  `json:"model" yaml:"model"`
	Library  string `json:"library" yaml:"library"`
	Metadata any    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// AllKinds returns every known kind in report order
func AllKinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind validates a kind name (case-insensitive)
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseKinds parses a comma separated list of kinds. An empty list or "all" selects every kind.
// Duplicates are dropped, the order of the input is kept.
func ParseKinds(s string) ([]Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllKinds(), nil
	}

	var out []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(s, ",") {
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// --------------------------------------------------------------------------
// Adapter Interface
// --------------------------------------------------------------------------

// Adapter builds lookup views of one map engine.
// Implementations must not keep state between Build calls.
type Adapter interface {

	// Info describes the engine behind the adapter.
	Info() Info

	// Build inserts every record in order into a fresh map and returns the finished view.
	// Persistent engines create a new version per insert and keep only the last one.
	Build(records []workload.Record) View
}

// View is a populated, read-only map
type View interface {

	// Get returns the value stored for key.
	Get(key string) (value int32, ok bool)

	// Probe looks up every key and returns the sum of the values found.
	// A missing key adds zero. Probe never modifies the view and returns the same sum
	// on every call.
	Probe(keys []string) int64

	// Len returns the number of keys in the view.
	Len() int
}

// Versioned is implemented by snapshot and persistent adapters that can hand out every
// intermediate version of a build
type Versioned interface {
	Adapter

	// BuildVersions returns len(records)+1 views; view i holds the first i records.
	// Later inserts must not be visible in earlier views.
	BuildVersions(records []workload.Record) []View
}
