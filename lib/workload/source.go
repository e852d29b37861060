package workload

import (
	"fmt"
	"math"
)

// Source is the pseudo-random number source used to draw keys and shuffle the query order
type Source interface {
	// Next returns a non-negative pseudo-random integer in [0, math.MaxInt32)
	Next() int
	// NextRange returns a pseudo-random integer in [min, max)
	NextRange(min, max int) int
}

// --------------------------------------------------------------------------
// Subtractive generator
// --------------------------------------------------------------------------

const (
	mbig  = math.MaxInt32
	mseed = 161803398
)

// SubtractiveSource is Knuth's subtractive random number generator
// (The Art of Computer Programming, Vol. 2, 3.6) with a 55 element lag table.
//
// Thread-safety: not safe for concurrent use.
type SubtractiveSource struct {
	seedArray [56]int32
	inext     int
	inextp    int
}

// NewSource creates a subtractive source seeded with seed.
// The arithmetic intentionally wraps on int32 overflow.
func NewSource(seed int32) *SubtractiveSource {
	s := &SubtractiveSource{}

	var subtraction int32
	if seed == math.MinInt32 {
		subtraction = math.MaxInt32
	} else if seed < 0 {
		subtraction = -seed
	} else {
		subtraction = seed
	}

	mj := int32(mseed) - subtraction
	s.seedArray[55] = mj
	mk := int32(1)
	for i := 1; i < 55; i++ {
		ii := (21 * i) % 55
		s.seedArray[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += mbig
		}
		mj = s.seedArray[ii]
	}

	// warm up the lag table
	for k := 1; k < 5; k++ {
		for i := 1; i < 56; i++ {
			s.seedArray[i] -= s.seedArray[1+(i+30)%55]
			if s.seedArray[i] < 0 {
				s.seedArray[i] += mbig
			}
		}
	}

	s.inext = 0
	s.inextp = 21
	return s
}

// sample advances the generator and returns the next raw value in [0, mbig)
func (s *SubtractiveSource) sample() int32 {
	locINext := s.inext + 1
	if locINext >= 56 {
		locINext = 1
	}
	locINextp := s.inextp + 1
	if locINextp >= 56 {
		locINextp = 1
	}

	retVal := s.seedArray[locINext] - s.seedArray[locINextp]
	if retVal == mbig {
		retVal--
	}
	if retVal < 0 {
		retVal += mbig
	}

	s.seedArray[locINext] = retVal
	s.inext = locINext
	s.inextp = locINextp

	return retVal
}

// fraction returns the next sample scaled to [0, 1)
func (s *SubtractiveSource) fraction() float64 {
	return float64(s.sample()) * (1.0 / mbig)
}

// largeRangeFraction spreads two samples over ranges wider than math.MaxInt32
func (s *SubtractiveSource) largeRangeFraction() float64 {
	result := s.sample()
	if s.sample()%2 == 0 {
		result = -result
	}
	d := float64(result)
	d += mbig - 1
	d /= 2*float64(mbig) - 1
	return d
}

// Next returns a non-negative pseudo-random integer in [0, math.MaxInt32)
func (s *SubtractiveSource) Next() int {
	return int(s.sample())
}

// NextRange returns a pseudo-random integer in [min, max).
// It panics if min > max.
func (s *SubtractiveSource) NextRange(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("workload: invalid range [%d, %d)", min, max))
	}

	r := int64(max) - int64(min)
	if r <= math.MaxInt32 {
		return int(s.fraction()*float64(r)) + min
	}
	return int(int64(s.largeRangeFraction()*float64(r)) + int64(min))
}
