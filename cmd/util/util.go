package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/mapbench/lib/harness"
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/maps/engines"
	"github.com/ValentinKolb/mapbench/lib/maps/engines/btreemap"
	"github.com/ValentinKolb/mapbench/lib/workload"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of environment variables read by mapbench (e.g. MAPBENCH_SIZE)
	EnvPrefix = "mapbench"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupHarnessFlags adds the workload and engine flags to a command
func SetupHarnessFlags(cmd *cobra.Command) {
	key := "size"
	cmd.PersistentFlags().Int(key, workload.DefaultSize, WrapString("Number of unique keys in the workload"))

	key = "seed"
	cmd.PersistentFlags().Int32(key, workload.DefaultSeed, WrapString("Seed of the pseudo-random source used to generate the workload"))

	key = "kinds"
	cmd.PersistentFlags().String(key, "all", WrapString("Comma-separated list of map engines to measure (builtin, xsync, iradix, btree, hamt, immutable) or 'all'"))

	key = "baseline"
	cmd.PersistentFlags().String(key, string(maps.KindBuiltin), WrapString("Engine the others are compared against. Must be one of the selected kinds, empty disables the ratio column"))

	key = "hamt-hasher"
	cmd.PersistentFlags().String(key, engines.HasherMurmur3, WrapString("Hash function of the hamt engine (murmur3, fnv)"))

	key = "btree-degree"
	cmd.PersistentFlags().Int(key, btreemap.DefaultDegree, WrapString("Node degree of the btree engine"))
}

// InitConfig loads env files and prepares viper to read MAPBENCH_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// ReadConfigFile merges the YAML config file at path into viper (no-op for an empty path).
// Flags set on the command line still take precedence.
func ReadConfigFile(path string) error {
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetHarnessConfig reads the harness configuration from viper
func GetHarnessConfig() (harness.Config, error) {
	kinds, err := maps.ParseKinds(viper.GetString("kinds"))
	if err != nil {
		return harness.Config{}, err
	}

	var baseline maps.Kind
	if name := viper.GetString("baseline"); name != "" {
		if baseline, err = maps.ParseKind(name); err != nil {
			return harness.Config{}, fmt.Errorf("invalid baseline: %w", err)
		}
	}

	return harness.Config{
		Size:     viper.GetInt("size"),
		Seed:     viper.GetInt32("seed"),
		Kinds:    kinds,
		Baseline: baseline,
		Engines: engines.Options{
			HAMTHasher:  viper.GetString("hamt-hasher"),
			BTreeDegree: viper.GetInt("btree-degree"),
		},
	}, nil
}

// SplitList splits a comma-separated flag value and drops empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
