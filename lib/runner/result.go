package runner

import (
	"time"

	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/util"
)

// Result is the measurement of one probe under one profile
type Result struct {
	RunID     string     `json:"run_id" yaml:"run_id"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
	Probe     string     `json:"probe" yaml:"probe"`
	Kind      maps.Kind  `json:"kind" yaml:"kind"`
	Model     maps.Model `json:"model" yaml:"model"`
	Profile   string     `json:"profile" yaml:"profile"` // ordered label, e.g. 0_STD
	Baseline  bool       `json:"baseline" yaml:"baseline"`

	// workload identity
	Size int   `json:"size" yaml:"size"`
	Seed int32 `json:"seed" yaml:"seed"`

	// benchmark rounds
	Rounds      int        `json:"rounds" yaml:"rounds"`
	Iterations  int        `json:"iterations" yaml:"iterations"`
	NsPerOp     float64    `json:"ns_per_op" yaml:"ns_per_op"` // mean over rounds
	RoundStats  util.Stats `json:"round_stats" yaml:"round_stats"`
	AllocsPerOp int64      `json:"allocs_per_op" yaml:"allocs_per_op"`
	BytesPerOp  int64      `json:"bytes_per_op" yaml:"bytes_per_op"`

	// individually timed invocations
	Samples int           `json:"samples" yaml:"samples"`
	P50     time.Duration `json:"p50" yaml:"p50"`
	P95     time.Duration `json:"p95" yaml:"p95"`
	P99     time.Duration `json:"p99" yaml:"p99"`

	// NsPerOp divided by the baseline's NsPerOp in the same profile (0 without baseline)
	Ratio float64 `json:"ratio" yaml:"ratio"`

	BuildTime time.Duration `json:"build_time" yaml:"build_time"`
}

// OpsPerSec returns the number of probe invocations per second
func (r Result) OpsPerSec() float64 {
	if r.NsPerOp <= 0 {
		return 0
	}
	return 1e9 / r.NsPerOp
}

// KeysPerSec returns the number of single key lookups per second
func (r Result) KeysPerSec() float64 {
	return r.OpsPerSec() * float64(r.Size)
}
