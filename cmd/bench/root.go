package bench

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/lib/harness"
	"github.com/ValentinKolb/mapbench/lib/report"
	"github.com/ValentinKolb/mapbench/lib/runner"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.GetLogger("cmd")

var (
	harnessConfig harness.Config
	runnerConfig  runner.Config
	outputFormat  report.Format

	// BenchCmd runs the lookup benchmark
	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Measure the lookup performance of all map engines",
		Long: `Generate the workload, build every selected map engine, verify each probe once and
then measure the probes under every selected run profile.

Every timed invocation is checked against the workload's reference sum. A wrong sum aborts
the run with a correctness violation and a non-zero exit code.

All flags can also be set via environment variables (MAPBENCH_<FLAG>, e.g. MAPBENCH_SIZE=5000)
or a YAML file passed with --config.`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	util.SetupHarnessFlags(BenchCmd)

	key := "profiles"
	BenchCmd.Flags().String(key, "std", util.WrapString("Comma-separated list of run profiles (std, nogc, single, gc10) or 'all'"))

	key = "rounds"
	BenchCmd.Flags().Int(key, 3, util.WrapString("Benchmark rounds per probe and profile"))

	key = "benchtime"
	BenchCmd.Flags().Duration(key, time.Second, util.WrapString("Target duration of a single benchmark round"))

	key = "samples"
	BenchCmd.Flags().Int(key, 1000, util.WrapString("Number of individually timed invocations used for the latency percentiles (0 disables them)"))

	key = "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Probes to skip (comma separated - e.g. xsync,btree)"))

	key = "format"
	BenchCmd.Flags().String(key, string(report.FormatTable), util.WrapString("Output format (table, csv, yaml)"))

	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))

	key = "db"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path of a SQLite database the results are appended to"))

	key = "metrics-file"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to write the collected metrics in Prometheus text format"))

	key = "cpuprofile"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to write a CPU profile of the measurement phase"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	if harnessConfig, err = util.GetHarnessConfig(); err != nil {
		return err
	}

	profiles, err := runner.ParseProfiles(viper.GetString("profiles"))
	if err != nil {
		return err
	}

	if outputFormat, err = report.ParseFormat(viper.GetString("format")); err != nil {
		return err
	}

	runnerConfig = runner.Config{
		Profiles:  profiles,
		Rounds:    viper.GetInt("rounds"),
		BenchTime: viper.GetDuration("benchtime"),
		Samples:   viper.GetInt("samples"),
		Skip:      util.SplitList(viper.GetString("skip")),
		Size:      harnessConfig.Size,
		Seed:      harnessConfig.Seed,
	}
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	table := outputFormat == report.FormatTable
	if table {
		fmt.Println("Lookup benchmark for map engines")
		fmt.Println()
		fmt.Println("Configuration:")
		fmt.Println(harnessConfig.String())
		fmt.Printf("Profiles: %v, Rounds: %d, Benchtime: %s, Samples: %d\n",
			runnerConfig.Profiles, runnerConfig.Rounds, runnerConfig.BenchTime, runnerConfig.Samples)
		fmt.Println()
	}

	h, err := harness.New(harnessConfig)
	if err != nil {
		return err
	}

	// fail fast before spending time on measurements
	if err := h.Verify(); err != nil {
		return err
	}

	if path := viper.GetString("cpuprofile"); path != "" {
		stopProfile, err := startCPUProfile(path)
		if err != nil {
			return err
		}
		defer stopProfile()
	}

	if table {
		runnerConfig.OnResult = printResult
		fmt.Println("starting measurements...")
	}

	r := runner.New(runnerConfig)
	results, err := r.Run(ctx, h.Probes())
	if err != nil {
		return err
	}
	log.Infof("run %s finished with %d results", r.RunID(), len(results))

	if table {
		fmt.Println()
	}
	if err := report.Write(os.Stdout, outputFormat, results); err != nil {
		return err
	}

	return export(r, results)
}

// export writes the optional CSV, SQLite and metrics outputs
func export(r *runner.Runner, results []runner.Result) error {
	if path := viper.GetString("csv"); path != "" {
		if err := report.WriteCSVFile(path, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		log.Infof("exported results to CSV: %s", path)
	}

	if path := viper.GetString("db"); path != "" {
		store, err := report.OpenStore(path)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(results); err != nil {
			return err
		}
		log.Infof("saved results of run %s to %s", r.RunID(), path)
	}

	if path := viper.GetString("metrics-file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create metrics file: %w", err)
		}
		defer f.Close()

		r.WriteMetrics(f)
		log.Infof("wrote metrics to %s", path)
	}

	return nil
}

func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
		log.Infof("wrote CPU profile to %s", path)
	}, nil
}

// printResult prints the result of a probe in a formatted way
func printResult(res runner.Result) {
	fmt.Printf("%-8s %-12s%.0fns/op (%s/op)\t%.0f ops/sec\n",
		res.Profile, res.Probe, res.NsPerOp, time.Duration(res.NsPerOp), res.OpsPerSec())
}
