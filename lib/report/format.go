package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ValentinKolb/mapbench/lib/runner"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Format selects how results are printed
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name (empty = table)
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write prints results in the given format
func Write(w io.Writer, format Format, results []runner.Result) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, results)
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatYAML:
		return WriteYAML(w, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// --------------------------------------------------------------------------
// Table
// --------------------------------------------------------------------------

// WriteTable prints results as an aligned text table, one row per probe and profile
func WriteTable(w io.Writer, results []runner.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "PROFILE\tPROBE\tMODEL\tTIME/OP\t±%\tP50\tP99\tKEYS/SEC\tALLOCS/OP\tBYTES/OP\tRATIO\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f%%\t%s\t%s\t%s\t%d\t%s\t%s\t\n",
			r.Profile,
			r.Probe,
			r.Model,
			formatNs(r.NsPerOp),
			r.RoundStats.RelativeStdDeviation(),
			formatDuration(r.P50),
			formatDuration(r.P99),
			humanize.SIWithDigits(r.KeysPerSec(), 2, ""),
			r.AllocsPerOp,
			humanize.IBytes(uint64(max(r.BytesPerOp, 0))),
			formatRatio(r),
		)
	}
	return tw.Flush()
}

func formatNs(ns float64) string {
	if ns <= 0 {
		return "-"
	}
	return time.Duration(math.Round(ns)).String()
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.String()
}

func formatRatio(r runner.Result) string {
	switch {
	case r.Baseline:
		return "baseline"
	case r.Ratio <= 0:
		return "-"
	default:
		return fmt.Sprintf("%.2fx", r.Ratio)
	}
}

// --------------------------------------------------------------------------
// YAML
// --------------------------------------------------------------------------

// WriteYAML prints results as a YAML document
func WriteYAML(w io.Writer, results []runner.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"results": results}); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return enc.Close()
}
