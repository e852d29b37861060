package util

import (
	"math"
)

// ----------------------------------------------------------------------------
// Summary statistics
// ----------------------------------------------------------------------------

// Stats summarises a series of measurements
type Stats struct {
	Count        int     `json:"count" yaml:"count"`
	Mean         float64 `json:"mean" yaml:"mean"`
	StdDeviation float64 `json:"std_deviation" yaml:"std_deviation"` // population standard deviation
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
}

// NewStats summarises values in a single pass (Welford's online algorithm).
// An empty series yields the zero Stats.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	s := Stats{Min: values[0], Max: values[0]}
	var m2 float64
	for _, v := range values {
		s.Count++
		delta := v - s.Mean
		s.Mean += delta / float64(s.Count)
		m2 += delta * (v - s.Mean)

		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.StdDeviation = math.Sqrt(m2 / float64(s.Count))

	return s
}

// RelativeStdDeviation returns the coefficient of variation in percent (0 if the mean is 0)
func (s Stats) RelativeStdDeviation() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.StdDeviation / s.Mean * 100
}

// ----------------------------------------------------------------------------
// Bucket distribution
// ----------------------------------------------------------------------------

// DistributionStats describes how evenly a set of buckets is filled
type DistributionStats struct {
	Stats
	// DistributionQuality is 1 for perfectly even buckets and approaches 0 as the spread grows
	DistributionQuality float64 `json:"distribution_quality" yaml:"distribution_quality"`
}

// NewDistributionStats scores bucket sizes (e.g. the number of children per trie node).
// The score averages the inverted coefficient of variation (clamped at 1) and the ratio of
// the smallest to the largest bucket.
func NewDistributionStats(bucketSizes []float64) DistributionStats {
	s := NewStats(bucketSizes)
	if s.Count == 0 || s.Max <= 0 {
		return DistributionStats{Stats: s}
	}

	spread := math.Min(1, s.StdDeviation/s.Mean)
	return DistributionStats{
		Stats:               s,
		DistributionQuality: (1-spread)/2 + s.Min/s.Max/2,
	}
}
