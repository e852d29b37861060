package engines

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinKolb/mapbench/lib/hamt"
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/maps/engines/btreemap"
	"github.com/ValentinKolb/mapbench/lib/maps/engines/gomap"
	"github.com/ValentinKolb/mapbench/lib/maps/engines/hamtmap"
	"github.com/ValentinKolb/mapbench/lib/maps/engines/immutablemap"
	"github.com/ValentinKolb/mapbench/lib/maps/engines/radix"
	"github.com/ValentinKolb/mapbench/lib/maps/engines/xsyncmap"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("engines")

// Hasher names accepted in Options.HAMTHasher
const (
	HasherMurmur3 = "murmur3"
	HasherFNV     = "fnv"
)

// ErrUnknownHasher is returned for hasher names other than murmur3 and fnv
var ErrUnknownHasher = errors.New("unknown hamt hasher")

// Options configures the engines that have tunables
type Options struct {
	HAMTHasher  string // murmur3 (default) or fnv
	HAMTSeed    uint64 // seed passed to the hamt hasher
	BTreeDegree int    // b-tree node degree (< 2 = btreemap.DefaultDegree)
}

// DefaultOptions returns the default engine options
func DefaultOptions() Options {
	return Options{
		HAMTHasher:  HasherMurmur3,
		BTreeDegree: btreemap.DefaultDegree,
	}
}

// Kinds returns every engine kind New can construct, in report order
func Kinds() []maps.Kind {
	return maps.AllKinds()
}

// New constructs the adapter for kind
func New(kind maps.Kind, opts Options) (maps.Adapter, error) {
	var a maps.Adapter

	switch kind {
	case maps.KindBuiltin:
		a = gomap.New()
	case maps.KindXsync:
		a = xsyncmap.New()
	case maps.KindIradix:
		a = radix.New()
	case maps.KindBTree:
		a = btreemap.New(opts.BTreeDegree)
	case maps.KindHAMT:
		hasher, name, err := NewHasher(opts.HAMTHasher, opts.HAMTSeed)
		if err != nil {
			return nil, err
		}
		a = hamtmap.New(hasher, name)
	case maps.KindImmutable:
		a = immutablemap.New()
	default:
		return nil, fmt.Errorf("%w: %q", maps.ErrUnknownKind, kind)
	}

	info := a.Info()
	log.Debugf("created adapter %s (model=%s, library=%s)", info.Kind, info.Model, info.Library)
	return a, nil
}

// NewHasher resolves a hamt hasher by name. An empty name selects murmur3.
func NewHasher(name string, seed uint64) (hamt.Hasher, string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HasherMurmur3:
		return hamt.Murmur3Hasher(uint32(seed)), HasherMurmur3, nil
	case HasherFNV:
		return hamt.FNVHasher(seed), HasherFNV, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}
