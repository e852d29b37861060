package hamt

import (
	"github.com/ValentinKolb/mapbench/lib/util"
	"github.com/spaolacci/murmur3"
)

// Hasher computes the 64-bit hash of a key
type Hasher interface {
	Hash(key string) uint64
}

// HasherFunc adapts a plain function to the Hasher interface
type HasherFunc func(key string) uint64

func (f HasherFunc) Hash(key string) uint64 {
	return f(key)
}

// --------------------------------------------------------------------------
// Murmur3
// --------------------------------------------------------------------------

type murmur3Hasher struct {
	seed uint32
}

// Murmur3Hasher returns a hasher based on the 64-bit murmur3 hash
func Murmur3Hasher(seed uint32) Hasher {
	return murmur3Hasher{seed: seed}
}

func (h murmur3Hasher) Hash(key string) uint64 {
	return murmur3.Sum64WithSeed(util.StringBytes(key), h.seed)
}

// --------------------------------------------------------------------------
// FNV-1a
// --------------------------------------------------------------------------

type fnvHasher struct {
	seed uint64
}

// FNVHasher returns a hasher based on the seeded FNV-1a hash from the util package
func FNVHasher(seed uint64) Hasher {
	return fnvHasher{seed: seed}
}

func (h fnvHasher) Hash(key string) uint64 {
	return util.HashString(key, h.seed)
}
