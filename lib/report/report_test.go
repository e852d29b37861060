package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/runner"
	"github.com/ValentinKolb/mapbench/lib/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResults() []runner.Result {
	ts := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	base := runner.Result{
		RunID:       "6f1c2b8e-7d7c-4a8e-9d0b-2b1f4f1f7a10",
		Timestamp:   ts,
		Probe:       "builtin",
		Kind:        maps.KindBuiltin,
		Model:       maps.ModelMutable,
		Profile:     "0_STD",
		Baseline:    true,
		Size:        1000,
		Seed:        19740531,
		Rounds:      3,
		Iterations:  300000,
		NsPerOp:     12000,
		RoundStats:  util.NewStats([]float64{11000, 12000, 13000}),
		AllocsPerOp: 0,
		BytesPerOp:  0,
		Samples:     1000,
		P50:         11 * time.Microsecond,
		P95:         14 * time.Microsecond,
		P99:         20 * time.Microsecond,
		Ratio:       1,
		BuildTime:   50 * time.Microsecond,
	}

	other := base
	other.Probe = "hamt"
	other.Kind = maps.KindHAMT
	other.Model = maps.ModelPersistent
	other.Baseline = false
	other.NsPerOp = 30000
	other.RoundStats = util.NewStats([]float64{29000, 30000, 31000})
	other.Ratio = 2.5
	other.BytesPerOp = 2048

	return []runner.Result{base, other}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatTable, "TABLE": FormatTable, "csv": FormatCSV, " yaml ": FormatYAML} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Write(&bytes.Buffer{}, "xml", nil), ErrUnknownFormat)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleResults()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "PROBE")
	assert.Contains(t, lines[1], "builtin")
	assert.Contains(t, lines[1], "baseline")
	assert.Contains(t, lines[1], "12µs")
	assert.Contains(t, lines[2], "hamt")
	assert.Contains(t, lines[2], "2.50x")
	assert.Contains(t, lines[2], "2.0 KiB")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])

	for _, row := range records[1:] {
		assert.Len(t, row, len(csvHeader))
	}
	assert.Equal(t, "builtin", records[1][3])
	assert.Equal(t, "12000.0", records[1][11])
	assert.Equal(t, "2.5000", records[2][24])
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteCSVFile(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleResults()))

	var doc struct {
		Results []struct {
			Probe   string  `yaml:"probe"`
			NsPerOp float64 `yaml:"ns_per_op"`
			Ratio   float64 `yaml:"ratio"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 2)
	assert.Equal(t, "hamt", doc.Results[1].Probe)
	assert.Equal(t, 30000.0, doc.Results[1].NsPerOp)
	assert.Equal(t, 2.5, doc.Results[1].Ratio)
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleResults()))
	require.NoError(t, store.Save(nil))
	require.NoError(t, store.Close())

	// reopen to check the data is persisted and the schema creation is idempotent
	store, err = OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	recent, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	want := sampleResults()
	// newest first
	got := recent[0]
	assert.Equal(t, want[1].Probe, got.Probe)
	assert.Equal(t, want[1].RunID, got.RunID)
	assert.Equal(t, want[1].Kind, got.Kind)
	assert.Equal(t, want[1].Model, got.Model)
	assert.False(t, got.Baseline)
	assert.True(t, recent[1].Baseline)
	assert.Equal(t, want[1].Seed, got.Seed)
	assert.Equal(t, want[1].NsPerOp, got.NsPerOp)
	assert.Equal(t, want[1].P99, got.P99)
	assert.Equal(t, want[1].BuildTime, got.BuildTime)
	assert.True(t, want[1].Timestamp.Equal(got.Timestamp))

	limited, err := store.Recent(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
