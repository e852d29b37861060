package workload

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/ValentinKolb/mapbench/lib/util"
	"github.com/cespare/xxhash/v2"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("workload")

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	DefaultSeed int32 = 19740531 // Seed of the reference workload
	DefaultSize       = 1000     // Number of records of the reference workload
)

// DefaultAttemptBudget returns how many draws Generate may take to collect size unique keys.
// A healthy source needs barely more than size draws; the slack only matters for sources
// with pathological repeat rates.
func DefaultAttemptBudget(size int) int {
	if size < 0 {
		return 0
	}
	if size > (math.MaxInt32-1024)/16 {
		return math.MaxInt32
	}
	return 16*size + 1024
}

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Record is a single key/value pair of a workload
type Record struct {
	Key   string `yaml:"key" json:"key"`
	Value int32  `yaml:"value" json:"value"`
}

// Workload is the immutable input of a benchmark run
type Workload struct {
	Seed         int32    `yaml:"seed" json:"seed"`
	Attempts     int      `yaml:"attempts" json:"attempts"`
	ReferenceSum int64    `yaml:"reference_sum" json:"reference_sum"`
	Records      []Record `yaml:"records" json:"records"`
	QueryKeys    []string `yaml:"query_keys" json:"query_keys"`
}

// --------------------------------------------------------------------------
// Generation
// --------------------------------------------------------------------------

// Generate creates the workload for seed and size using the subtractive source
func Generate(seed int32, size int) (*Workload, error) {
	w, err := GenerateFrom(NewSource(seed), size, DefaultAttemptBudget(size))
	if err != nil {
		return nil, err
	}
	w.Seed = seed
	return w, nil
}

// GenerateFrom creates a workload of size unique keys drawn from src.
// At most budget draws are taken (capped at math.MaxInt32 so every draw index fits a value).
// The query order is shuffled with the same source, continuing after the last key draw.
func GenerateFrom(src Source, size, budget int) (*Workload, error) {
	if size < 0 || size > math.MaxInt32 {
		return nil, &GenerationError{Size: size, Err: ErrInvalidSize}
	}
	if budget > math.MaxInt32 {
		budget = math.MaxInt32
	}

	records := make([]Record, 0, size)
	seen := make(map[string]struct{}, size)

	// draw keys until enough unique ones are found (first occurrence wins)
	attempts := 0
	for len(records) < size {
		if attempts >= budget {
			return nil, &GenerationError{
				Size:      size,
				Generated: len(records),
				Attempts:  attempts,
				Err:       ErrAttemptBudget,
			}
		}

		key := strconv.Itoa(src.Next())
		index := attempts
		attempts++

		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		records = append(records, Record{Key: key, Value: int32(index)})
	}

	// shuffle a copy of the keys so queries run in a different order than inserts
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	for i := range keys {
		swap := src.NextRange(i, len(keys))
		keys[i], keys[swap] = keys[swap], keys[i]
	}

	var sum int64
	for _, r := range records {
		sum += int64(r.Value)
	}

	if dups := attempts - size; dups > 0 {
		log.Debugf("generated %d keys with %d duplicate draws", size, dups)
	}

	return &Workload{
		Attempts:     attempts,
		ReferenceSum: sum,
		Records:      records,
		QueryKeys:    keys,
	}, nil
}

// --------------------------------------------------------------------------
// Inspection
// --------------------------------------------------------------------------

// Size returns the number of records
func (w *Workload) Size() int {
	return len(w.Records)
}

// Validate checks that keys are unique, that the query keys are a permutation of the
// record keys and that ReferenceSum matches the records.
func (w *Workload) Validate() error {
	values := make(map[string]int32, len(w.Records))
	var sum int64
	for _, r := range w.Records {
		if _, dup := values[r.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvariant, r.Key)
		}
		values[r.Key] = r.Value
		sum += int64(r.Value)
	}

	if sum != w.ReferenceSum {
		return fmt.Errorf("%w: reference sum %d, records sum to %d", ErrInvariant, w.ReferenceSum, sum)
	}

	if len(w.QueryKeys) != len(w.Records) {
		return fmt.Errorf("%w: %d query keys for %d records", ErrInvariant, len(w.QueryKeys), len(w.Records))
	}

	queried := make(map[string]struct{}, len(w.QueryKeys))
	for _, k := range w.QueryKeys {
		if _, ok := values[k]; !ok {
			return fmt.Errorf("%w: query key %q is not a record key", ErrInvariant, k)
		}
		if _, dup := queried[k]; dup {
			return fmt.Errorf("%w: query key %q occurs twice", ErrInvariant, k)
		}
		queried[k] = struct{}{}
	}

	return nil
}

// Digest returns a hex fingerprint over the records (in insertion order) and the query order
func (w *Workload) Digest() string {
	d := xxhash.New()
	var buf [4]byte

	for _, r := range w.Records {
		_, _ = d.WriteString(r.Key)
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint32(buf[:], uint32(r.Value))
		_, _ = d.Write(buf[:])
	}
	_, _ = d.Write([]byte{0xff})
	for _, k := range w.QueryKeys {
		_, _ = d.WriteString(k)
		_, _ = d.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

// KeyStats summarises the key lengths in bytes
func (w *Workload) KeyStats() util.Stats {
	lengths := make([]float64, len(w.Records))
	for i, r := range w.Records {
		lengths[i] = float64(len(r.Key))
	}
	return util.NewStats(lengths)
}
