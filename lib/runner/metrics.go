package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// probeMetrics records run counters in a private VictoriaMetrics set
type probeMetrics struct {
	set *metrics.Set
}

func newProbeMetrics() *probeMetrics {
	return &probeMetrics{set: metrics.NewSet()}
}

func (m *probeMetrics) invocations(probe, profile string) *metrics.Counter {
	return m.set.GetOrCreateCounter(fmt.Sprintf(`mapbench_probe_invocations_total{probe=%q,profile=%q}`, probe, profile))
}

func (m *probeMetrics) duration(probe, profile string) *metrics.Histogram {
	return m.set.GetOrCreateHistogram(fmt.Sprintf(`mapbench_probe_duration_seconds{probe=%q,profile=%q}`, probe, profile))
}

func (m *probeMetrics) violations(probe string) *metrics.Counter {
	return m.set.GetOrCreateCounter(fmt.Sprintf(`mapbench_correctness_violations_total{probe=%q}`, probe))
}

// observe records a single timed invocation
func (m *probeMetrics) observe(probe, profile string, d time.Duration) {
	m.invocations(probe, profile).Inc()
	m.duration(probe, profile).Update(d.Seconds())
}

// addInvocations records invocations that were not timed individually
func (m *probeMetrics) addInvocations(probe, profile string, n int) {
	m.invocations(probe, profile).Add(n)
}

func (m *probeMetrics) write(w io.Writer) {
	m.set.WritePrometheus(w)
}
