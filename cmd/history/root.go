package history

import (
	"errors"
	"os"

	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/lib/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// HistoryCmd lists results stored by previous bench runs
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent results from a results database",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return util.BindCommandFlags(cmd)
	},
	RunE: run,
}

func init() {
	key := "db"
	HistoryCmd.Flags().String(key, "", util.WrapString("Path of the SQLite database written by 'bench --db'"))

	key = "limit"
	HistoryCmd.Flags().Int(key, 20, util.WrapString("Maximum number of results to show (newest first)"))

	key = "format"
	HistoryCmd.Flags().String(key, string(report.FormatTable), util.WrapString("Output format (table, csv, yaml)"))
}

func run(_ *cobra.Command, _ []string) error {
	path := viper.GetString("db")
	if path == "" {
		return errors.New("no results database given (use --db or MAPBENCH_DB)")
	}

	format, err := report.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	store, err := report.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Recent(viper.GetInt("limit"))
	if err != nil {
		return err
	}
	return report.Write(os.Stdout, format, results)
}
