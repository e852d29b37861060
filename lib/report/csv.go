package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ValentinKolb/mapbench/lib/runner"
)

var csvHeader = []string{
	"RunID", "Timestamp", "Profile", "Probe", "Kind", "Model", "Baseline",
	"Size", "Seed", "Rounds", "Iterations",
	"NsPerOp", "DurationPerOp", "OpsPerSec", "KeysPerSec", "StdDevNs", "MinNs", "MaxNs",
	"AllocsPerOp", "BytesPerOp", "Samples", "P50Ns", "P95Ns", "P99Ns", "Ratio", "BuildTimeNs",
}

// WriteCSV writes results as CSV with a header row
func WriteCSV(w io.Writer, results []runner.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.RunID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.Profile,
			r.Probe,
			string(r.Kind),
			string(r.Model),
			strconv.FormatBool(r.Baseline),
			strconv.Itoa(r.Size),
			strconv.FormatInt(int64(r.Seed), 10),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Iterations),
			fmt.Sprintf("%.1f", r.NsPerOp),
			time.Duration(r.NsPerOp).String(),
			fmt.Sprintf("%.0f", r.OpsPerSec()),
			fmt.Sprintf("%.0f", r.KeysPerSec()),
			fmt.Sprintf("%.1f", r.RoundStats.StdDeviation),
			fmt.Sprintf("%.1f", r.RoundStats.Min),
			fmt.Sprintf("%.1f", r.RoundStats.Max),
			strconv.FormatInt(r.AllocsPerOp, 10),
			strconv.FormatInt(r.BytesPerOp, 10),
			strconv.Itoa(r.Samples),
			strconv.FormatInt(r.P50.Nanoseconds(), 10),
			strconv.FormatInt(r.P95.Nanoseconds(), 10),
			strconv.FormatInt(r.P99.Nanoseconds(), 10),
			fmt.Sprintf("%.4f", r.Ratio),
			strconv.FormatInt(r.BuildTime.Nanoseconds(), 10),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for probe %s: %w", r.Probe, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes results to a new CSV file at path
func WriteCSVFile(path string, results []runner.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, results); err != nil {
		return err
	}
	return file.Close()
}
