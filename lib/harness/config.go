package harness

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/maps/engines"
	"github.com/ValentinKolb/mapbench/lib/workload"
)

// Config holds everything needed to build the workload and the probes
type Config struct {
	// workload parameters
	Size int
	Seed int32

	// engines to build, in report order
	Kinds []maps.Kind
	// kind the other probes are compared against (empty = no baseline)
	Baseline maps.Kind

	// tunables of individual engines
	Engines engines.Options
}

// DefaultConfig returns the reference configuration: 1000 keys, seed 19740531, every engine,
// the built-in map as baseline
func DefaultConfig() Config {
	return Config{
		Size:     workload.DefaultSize,
		Seed:     workload.DefaultSeed,
		Kinds:    engines.Kinds(),
		Baseline: maps.KindBuiltin,
		Engines:  engines.DefaultOptions(),
	}
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Workload")
	addField("Size", fmt.Sprintf("%d", c.Size))
	addField("Seed", fmt.Sprintf("%d", c.Seed))

	addSection("Engines")
	kinds := make([]string, len(c.Kinds))
	for i, k := range c.Kinds {
		kinds[i] = string(k)
	}
	addField("Kinds", strings.Join(kinds, ", "))
	baseline := string(c.Baseline)
	if baseline == "" {
		baseline = "(none)"
	}
	addField("Baseline", baseline)
	addField("HAMT Hasher", c.Engines.HAMTHasher)
	addField("BTree Degree", fmt.Sprintf("%d", c.Engines.BTreeDegree))

	return sb.String()
}
