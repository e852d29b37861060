package verify

import (
	"fmt"

	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/lib/harness"
	"github.com/spf13/cobra"
)

var (
	harnessConfig harness.Config

	// VerifyCmd checks every engine against the reference sum without timing anything
	VerifyCmd = &cobra.Command{
		Use:     "verify",
		Short:   "Check every map engine against the workload's reference sum",
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	util.SetupHarnessFlags(VerifyCmd)
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	harnessConfig, err = util.GetHarnessConfig()
	return err
}

func run(_ *cobra.Command, _ []string) error {
	h, err := harness.New(harnessConfig)
	if err != nil {
		return err
	}

	w := h.Workload()
	fmt.Printf("workload: %d keys, seed %d, reference sum %d\n\n", w.Size(), w.Seed, w.ReferenceSum)

	for _, p := range h.Probes() {
		if err := p.Run(); err != nil {
			fmt.Printf("%-12s FAILED\n", p.Name)
			return err
		}
		fmt.Printf("%-12s ok   (%s, built in %s)\n", p.Name, p.Model, p.BuildTime)
	}

	fmt.Printf("\nall %d probes returned the reference sum\n", len(h.Probes()))
	return nil
}
