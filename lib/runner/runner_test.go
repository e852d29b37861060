package runner

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"runtime"
	"runtime/debug"
	"testing"
	"time"

	"github.com/ValentinKolb/mapbench/lib/harness"
	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/oracle"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sink int64

// sumProbe returns a probe that sums n integers and always passes
func sumProbe(name string, n int, baseline bool) harness.Probe {
	values := make([]int64, n)
	for i := range values {
		values[i] = int64(i)
	}
	return harness.Probe{
		Name:     name,
		Kind:     maps.Kind(name),
		Model:    maps.ModelMutable,
		Baseline: baseline,
		Run: func() error {
			var sum int64
			for _, v := range values {
				sum += v
			}
			sink = sum
			return nil
		},
	}
}

func testConfig() Config {
	return Config{
		Profiles:  Profiles()[:2],
		Rounds:    2,
		BenchTime: 5 * time.Millisecond,
		Samples:   50,
		Size:      1000,
		Seed:      19740531,
	}
}

func TestRun(t *testing.T) {
	var reported []Result
	cfg := testConfig()
	cfg.OnResult = func(r Result) { reported = append(reported, r) }

	r := New(cfg)
	probes := []harness.Probe{sumProbe("base", 100, true), sumProbe("other", 1000, false)}

	results, err := r.Run(context.Background(), probes)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, results, reported)

	_, err = uuid.Parse(r.RunID())
	assert.NoError(t, err)

	for i, res := range results {
		assert.Equal(t, r.RunID(), res.RunID)
		assert.Equal(t, probes[i%2].Name, res.Probe)
		assert.Equal(t, 1000, res.Size)
		assert.Equal(t, 2, res.Rounds)
		assert.Positive(t, res.Iterations)
		assert.Positive(t, res.NsPerOp)
		assert.Positive(t, res.OpsPerSec())
		assert.LessOrEqual(t, res.P50, res.P99)
		assert.Positive(t, res.Ratio)
	}

	assert.Equal(t, "0_STD", results[0].Profile)
	assert.Equal(t, "1_NOGC", results[2].Profile)
	assert.InDelta(t, 1.0, results[0].Ratio, 1e-9)
	assert.InDelta(t, 1.0, results[2].Ratio, 1e-9)
}

func TestRunWithoutBaseline(t *testing.T) {
	results, err := New(testConfig()).Run(context.Background(), []harness.Probe{sumProbe("a", 10, false)})
	require.NoError(t, err)
	for _, res := range results {
		assert.Zero(t, res.Ratio)
	}
}

func TestRunCorrectnessViolation(t *testing.T) {
	broken := sumProbe("broken", 10, false)
	broken.Run = func() error { return oracle.Validate("broken", 1, 2) }

	r := New(testConfig())
	results, err := r.Run(context.Background(), []harness.Probe{sumProbe("ok", 10, true), broken})
	require.Error(t, err)
	assert.True(t, oracle.IsCorrectnessViolation(err))
	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].Probe)

	var buf bytes.Buffer
	r.WriteMetrics(&buf)
	assert.Contains(t, buf.String(), `mapbench_correctness_violations_total{probe="broken"} 1`)
}

func TestRunSkip(t *testing.T) {
	cfg := testConfig()
	cfg.Profiles = Profiles()[:1]
	cfg.Skip = []string{"skipped"}

	results, err := New(cfg).Run(context.Background(), []harness.Probe{sumProbe("kept", 10, false), sumProbe("skipped", 10, false)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "kept", results[0].Probe)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Run(ctx, []harness.Probe{sumProbe("a", 10, false)})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWriteMetrics(t *testing.T) {
	r := New(testConfig())
	_, err := r.Run(context.Background(), []harness.Probe{sumProbe("a", 10, false)})
	require.NoError(t, err)

	var buf bytes.Buffer
	r.WriteMetrics(&buf)
	out := buf.String()
	assert.Contains(t, out, `mapbench_probe_invocations_total{probe="a",profile="0_STD"}`)
	assert.Contains(t, out, `mapbench_probe_duration_seconds_bucket{probe="a",profile="0_STD"`)
}

func TestApplyBenchTime(t *testing.T) {
	f := flag.Lookup("test.benchtime")
	require.NotNil(t, f)
	prev := f.Value.String()
	t.Cleanup(func() { _ = flag.Set("test.benchtime", prev) })

	require.NoError(t, applyBenchTime(10*time.Millisecond))
	assert.Equal(t, "10ms", f.Value.String())
}

func TestParseProfiles(t *testing.T) {
	profiles, err := ParseProfiles("")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "std", profiles[0].Name)

	profiles, err = ParseProfiles("single, GC10")
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, 1, profiles[0].MaxProcs)
	assert.Equal(t, 10, profiles[1].GCPercent)

	profiles, err = ParseProfiles("all")
	require.NoError(t, err)
	assert.Len(t, profiles, len(Profiles()))

	_, err = ParseProfiles("std,turbo")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestProfileApplyRestores(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)
	gc := debug.SetGCPercent(100)
	debug.SetGCPercent(gc)

	restore := Profile{Name: "test", GCPercent: -1, MaxProcs: 1}.apply()
	assert.Equal(t, 1, runtime.GOMAXPROCS(0))
	restore()

	assert.Equal(t, procs, runtime.GOMAXPROCS(0))
	assert.Equal(t, gc, debug.SetGCPercent(gc))
}

func TestProfileString(t *testing.T) {
	assert.Equal(t, "std", Profile{Name: "std"}.String())
	assert.Equal(t, "nogc (GOGC=-1)", Profile{Name: "nogc", GCPercent: -1}.String())
	assert.Equal(t, "2_SINGLE", Profile{Name: "single"}.Label(2))
}
