package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/mapbench/cmd/bench"
	"github.com/ValentinKolb/mapbench/cmd/history"
	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/cmd/verify"
	"github.com/ValentinKolb/mapbench/cmd/workload"
	"github.com/ValentinKolb/mapbench/lib/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "mapbench",
		Short: "lookup benchmark for map engines",
		Long: fmt.Sprintf(`mapbench (v%s)

A micro-benchmark harness comparing string key lookups across mutable, snapshot
and persistent map engines. Every measured lookup pass is checked against a
reference sum, so a broken engine can never produce a timing.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mapbench",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mapbench v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(verify.VerifyCmd)
	RootCmd.AddCommand(workload.WorkloadCmd)
	RootCmd.AddCommand(history.HistoryCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
	key = "config"
	RootCmd.PersistentFlags().String(key, "", util.WrapString("Optional YAML file with flag values (keys are the flag names)"))
}

// setup reads the config file and configures the loggers before any command runs
func setup(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := util.ReadConfigFile(viper.GetString("config")); err != nil {
		return err
	}
	// logs go to stderr so csv and yaml output on stdout stays machine readable
	return logging.InitLoggers(viper.GetString("log-level"), os.Stderr)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
