package runner

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// ErrUnknownProfile is returned by ParseProfiles for names not in the catalogue
var ErrUnknownProfile = errors.New("unknown run profile")

// Profile is a runtime setting under which every probe is measured
type Profile struct {
	Name      string
	GCPercent int // passed to debug.SetGCPercent (0 = unchanged, -1 = GC off)
	MaxProcs  int // passed to runtime.GOMAXPROCS (0 = unchanged)
}

var catalogue = []Profile{
	{Name: "std"},
	{Name: "nogc", GCPercent: -1},
	{Name: "single", MaxProcs: 1},
	{Name: "gc10", GCPercent: 10},
}

// Profiles returns the profile catalogue
func Profiles() []Profile {
	out := make([]Profile, len(catalogue))
	copy(out, catalogue)
	return out
}

// ParseProfiles parses a comma separated list of profile names. An empty string selects std.
func ParseProfiles(s string) ([]Profile, error) {
	if strings.TrimSpace(s) == "" {
		return catalogue[:1:1], nil
	}

	var out []Profile
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			return Profiles(), nil
		}

		found := false
		for _, p := range catalogue {
			if p.Name == name {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
		}
	}
	return out, nil
}

// Label returns the ordered label of the profile at position i, e.g. "0_STD"
func (p Profile) Label(i int) string {
	return fmt.Sprintf("%d_%s", i, strings.ToUpper(p.Name))
}

func (p Profile) String() string {
	var parts []string
	if p.GCPercent != 0 {
		parts = append(parts, fmt.Sprintf("GOGC=%d", p.GCPercent))
	}
	if p.MaxProcs != 0 {
		parts = append(parts, fmt.Sprintf("GOMAXPROCS=%d", p.MaxProcs))
	}
	if len(parts) == 0 {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, strings.Join(parts, ", "))
}

// apply changes the runtime settings and returns a function restoring the previous ones
func (p Profile) apply() (restore func()) {
	var undo []func()

	if p.GCPercent != 0 {
		prev := debug.SetGCPercent(p.GCPercent)
		undo = append(undo, func() { debug.SetGCPercent(prev) })
	}
	if p.MaxProcs != 0 {
		prev := runtime.GOMAXPROCS(p.MaxProcs)
		undo = append(undo, func() { runtime.GOMAXPROCS(prev) })
	}

	// start every profile from a collected heap
	runtime.GC()

	return func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}
}
