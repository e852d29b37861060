package workload

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/lib/workload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// WorkloadCmd prints the generated workload
var WorkloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Generate the workload and print a summary",
	Long: `Generate the workload for the configured size and seed and print its summary: reference
sum, number of draws and a digest that identifies the exact records and query order. With
--dump the records and query keys are printed as YAML.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return util.BindCommandFlags(cmd)
	},
	RunE: run,
}

func init() {
	key := "size"
	WorkloadCmd.Flags().Int(key, workload.DefaultSize, util.WrapString("Number of unique keys in the workload"))

	key = "seed"
	WorkloadCmd.Flags().Int32(key, workload.DefaultSeed, util.WrapString("Seed of the pseudo-random source used to generate the workload"))

	key = "dump"
	WorkloadCmd.Flags().Bool(key, false, util.WrapString("Print the full workload as YAML"))
}

func run(_ *cobra.Command, _ []string) error {
	w, err := workload.Generate(viper.GetInt32("seed"), viper.GetInt("size"))
	if err != nil {
		return err
	}

	if viper.GetBool("dump") {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(w); err != nil {
			return fmt.Errorf("failed to encode workload: %w", err)
		}
		return enc.Close()
	}

	keys := w.KeyStats()
	fmt.Printf("  %-22s: %d\n", "Size", w.Size())
	fmt.Printf("  %-22s: %d\n", "Seed", w.Seed)
	fmt.Printf("  %-22s: %d\n", "Draws", w.Attempts)
	fmt.Printf("  %-22s: %d\n", "Reference Sum", w.ReferenceSum)
	fmt.Printf("  %-22s: %s\n", "Digest", w.Digest())
	fmt.Printf("  %-22s: min %.0f, max %.0f, mean %.2f\n", "Key Length", keys.Min, keys.Max, keys.Mean)
	return nil
}
