package runner

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/mapbench/lib/harness"
	"github.com/ValentinKolb/mapbench/lib/oracle"
	"github.com/ValentinKolb/mapbench/lib/util"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
)

var log = logger.GetLogger("runner")

// Config controls how probes are measured
type Config struct {
	Profiles  []Profile     // runtime profiles, every probe runs under each
	Rounds    int           // testing.Benchmark rounds per probe and profile
	BenchTime time.Duration // target duration of one round
	Samples   int           // individually timed invocations for percentiles (0 = none)
	Skip      []string      // probe names not to run

	// workload identity copied into every result
	Size int
	Seed int32

	// OnResult is called after each measured probe (optional)
	OnResult func(Result)
}

// DefaultConfig returns the default runner configuration
func DefaultConfig() Config {
	return Config{
		Profiles:  catalogue[:1:1],
		Rounds:    3,
		BenchTime: time.Second,
		Samples:   1000,
	}
}

// Runner measures harness probes
type Runner struct {
	cfg     Config
	runID   string
	metrics *probeMetrics
}

// New creates a runner with a fresh run ID
func New(cfg Config) *Runner {
	if cfg.Rounds < 1 {
		cfg.Rounds = 1
	}
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = catalogue[:1:1]
	}
	return &Runner{
		cfg:     cfg,
		runID:   uuid.NewString(),
		metrics: newProbeMetrics(),
	}
}

// RunID returns the identifier attached to every result of this runner
func (r *Runner) RunID() string {
	return r.runID
}

// WriteMetrics writes the collected counters and histograms in Prometheus text format
func (r *Runner) WriteMetrics(w io.Writer) {
	r.metrics.write(w)
}

// Run measures every probe under every profile. The first probe error aborts the run and is
// returned together with the results measured so far. ctx is checked between measurements.
func (r *Runner) Run(ctx context.Context, probes []harness.Probe) ([]Result, error) {
	if err := applyBenchTime(r.cfg.BenchTime); err != nil {
		return nil, err
	}

	log.Infof("run %s: %d probes, profiles %v, %d rounds of %s, %d samples",
		r.runID, len(probes), r.cfg.Profiles, r.cfg.Rounds, r.cfg.BenchTime, r.cfg.Samples)

	var results []Result
	for i, profile := range r.cfg.Profiles {
		label := profile.Label(i)
		measured, err := r.runProfile(ctx, label, profile, probes)
		results = append(results, measured...)
		if err != nil {
			return results, fmt.Errorf("profile %s: %w", label, err)
		}
	}
	return results, nil
}

func (r *Runner) runProfile(ctx context.Context, label string, profile Profile, probes []harness.Probe) ([]Result, error) {
	restore := profile.apply()
	defer restore()

	log.Infof("profile %s", profile)

	var results []Result
	for _, p := range probes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if slices.Contains(r.cfg.Skip, p.Name) {
			log.Infof("skipping probe %s", p.Name)
			continue
		}

		res, err := r.measure(ctx, label, p)
		if err != nil {
			if oracle.IsCorrectnessViolation(err) {
				r.metrics.violations(p.Name).Inc()
			}
			log.Errorf("probe %s failed: %v", p.Name, err)
			return results, err
		}
		results = append(results, res)
	}

	setRatios(results)
	for _, res := range results {
		if r.cfg.OnResult != nil {
			r.cfg.OnResult(res)
		}
	}
	return results, nil
}

// measure runs the benchmark rounds and the timed samples of a single probe
func (r *Runner) measure(ctx context.Context, label string, p harness.Probe) (Result, error) {
	res := Result{
		RunID:     r.runID,
		Timestamp: time.Now(),
		Probe:     p.Name,
		Kind:      p.Kind,
		Model:     p.Model,
		Profile:   label,
		Baseline:  p.Baseline,
		Size:      r.cfg.Size,
		Seed:      r.cfg.Seed,
		Rounds:    r.cfg.Rounds,
		Samples:   r.cfg.Samples,
		BuildTime: p.BuildTime,
	}

	roundNs := make([]float64, 0, r.cfg.Rounds)
	for round := 0; round < r.cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var runErr error
		br := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := p.Run(); err != nil {
					runErr = err
					b.Fatal(err)
				}
			}
		})
		if runErr != nil {
			return res, runErr
		}

		ns := float64(br.T.Nanoseconds()) / float64(max(br.N, 1))
		roundNs = append(roundNs, ns)
		res.Iterations += br.N
		res.AllocsPerOp = br.AllocsPerOp()
		res.BytesPerOp = br.AllocedBytesPerOp()
		r.metrics.addInvocations(p.Name, label, br.N)

		log.Debugf("probe %s round %d: %d iterations, %.1f ns/op", p.Name, round, br.N, ns)
	}

	res.RoundStats = util.NewStats(roundNs)
	res.NsPerOp = res.RoundStats.Mean

	if r.cfg.Samples > 0 {
		if err := r.sample(ctx, label, p, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// sample times single invocations into a uniform histogram and stores the percentiles
func (r *Runner) sample(ctx context.Context, label string, p harness.Probe, res *Result) error {
	h := gometrics.NewHistogram(gometrics.NewUniformSample(r.cfg.Samples))

	for i := 0; i < r.cfg.Samples; i++ {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		start := time.Now()
		err := p.Run()
		d := time.Since(start)
		if err != nil {
			return err
		}

		h.Update(int64(d))
		r.metrics.observe(p.Name, label, d)
	}

	ps := h.Percentiles([]float64{0.5, 0.95, 0.99})
	res.P50, res.P95, res.P99 = time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2])
	return nil
}

// setRatios relates every result to the baseline result of the same profile
func setRatios(results []Result) {
	var baseline float64
	for _, res := range results {
		if res.Baseline {
			baseline = res.NsPerOp
		}
	}
	if baseline <= 0 {
		return
	}
	for i := range results {
		results[i].Ratio = results[i].NsPerOp / baseline
	}
}

var initTesting sync.Once

// applyBenchTime sets the duration testing.Benchmark aims for in each round
func applyBenchTime(d time.Duration) error {
	if d <= 0 {
		return nil
	}
	initTesting.Do(testing.Init)
	if err := flag.Set("test.benchtime", d.String()); err != nil {
		return fmt.Errorf("failed to set benchtime: %w", err)
	}
	return nil
}
