package testing

import (
	"strconv"
	"testing"

	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/workload"
)

// AdapterFactory is a function that creates a new instance of a maps.Adapter implementation
type AdapterFactory func() maps.Adapter

// RunAdapterTests runs the shared test suite for a maps.Adapter implementation.
// Adapters that also implement maps.Versioned are checked for version isolation.
func RunAdapterTests(t *testing.T, name string, factory AdapterFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("RoundTrip", func(t *testing.T) {
			testRoundTrip(t, factory())
		})

		t.Run("Miss", func(t *testing.T) {
			testMiss(t, factory())
		})

		t.Run("RepeatableProbe", func(t *testing.T) {
			testRepeatableProbe(t, factory())
		})

		t.Run("AnyQueryOrder", func(t *testing.T) {
			testAnyQueryOrder(t, factory())
		})

		t.Run("IndependentBuilds", func(t *testing.T) {
			testIndependentBuilds(t, factory())
		})

		t.Run("Versions", func(t *testing.T) {
			testVersions(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// generate returns the reference workload of the given size
func generate(t testing.TB, size int) *workload.Workload {
	w, err := workload.Generate(workload.DefaultSeed, size)
	if err != nil {
		t.Fatalf("Generating workload of size %d failed: %v", size, err)
	}
	return w
}

// requireVersioned skips the test if the adapter does not hand out versions
func requireVersioned(t testing.TB, adapter maps.Adapter) maps.Versioned {
	v, ok := adapter.(maps.Versioned)
	if !ok {
		t.Skip()
	}
	return v
}

// permutations calls fn with every ordering of keys
func permutations(keys []string, fn func([]string)) {
	var permute func(k int)
	permute = func(k int) {
		if k == len(keys) {
			fn(keys)
			return
		}
		for i := k; i < len(keys); i++ {
			keys[k], keys[i] = keys[i], keys[k]
			permute(k + 1)
			keys[k], keys[i] = keys[i], keys[k]
		}
	}
	permute(0)
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testRoundTrip(t *testing.T, adapter maps.Adapter) {
	for _, size := range []int{0, 1, 4, workload.DefaultSize} {
		w := generate(t, size)
		view := adapter.Build(w.Records)

		if view.Len() != size {
			t.Errorf("Size %d: expected Len %d, got %d", size, size, view.Len())
		}

		if sum := view.Probe(w.QueryKeys); sum != w.ReferenceSum {
			t.Errorf("Size %d: expected probe sum %d, got %d", size, w.ReferenceSum, sum)
		}

		for _, r := range w.Records {
			value, ok := view.Get(r.Key)
			if !ok {
				t.Fatalf("Size %d: expected key %s to exist after Build", size, r.Key)
			}
			if value != r.Value {
				t.Errorf("Size %d: expected value %d for key %s, got %d", size, r.Value, r.Key, value)
			}
		}
	}
}

func testMiss(t *testing.T, adapter maps.Adapter) {
	w := generate(t, 100)
	view := adapter.Build(w.Records)

	// keys are rendered non-negative integers, so these never exist
	missing := []string{"", "-1", "x", "00", w.Records[0].Key + " "}
	for _, k := range missing {
		if _, ok := view.Get(k); ok {
			t.Errorf("Expected key %q to be missing", k)
		}
	}

	if sum := view.Probe(missing); sum != 0 {
		t.Errorf("Expected probe sum 0 for missing keys, got %d", sum)
	}

	mixed := append([]string{}, missing...)
	mixed = append(mixed, w.QueryKeys...)
	if sum := view.Probe(mixed); sum != w.ReferenceSum {
		t.Errorf("Missing keys should add zero: expected %d, got %d", w.ReferenceSum, sum)
	}

	empty := adapter.Build(nil)
	if empty.Len() != 0 {
		t.Errorf("Expected empty view, got Len %d", empty.Len())
	}
	if sum := empty.Probe(w.QueryKeys); sum != 0 {
		t.Errorf("Expected probe sum 0 on empty view, got %d", sum)
	}
}

func testRepeatableProbe(t *testing.T, adapter maps.Adapter) {
	w := generate(t, workload.DefaultSize)
	view := adapter.Build(w.Records)

	for i := 0; i < 5; i++ {
		if sum := view.Probe(w.QueryKeys); sum != w.ReferenceSum {
			t.Fatalf("Probe %d: expected sum %d, got %d", i, w.ReferenceSum, sum)
		}
	}

	if view.Len() != w.Size() {
		t.Errorf("Probing should not change the view: expected Len %d, got %d", w.Size(), view.Len())
	}
}

func testAnyQueryOrder(t *testing.T, adapter maps.Adapter) {
	w := generate(t, 4)
	view := adapter.Build(w.Records)

	keys := append([]string{}, w.QueryKeys...)
	count := 0
	permutations(keys, func(order []string) {
		count++
		if sum := view.Probe(order); sum != w.ReferenceSum {
			t.Errorf("Order %v: expected sum %d, got %d", order, w.ReferenceSum, sum)
		}
	})

	if count != 24 {
		t.Errorf("Expected 24 orderings, got %d", count)
	}
}

func testIndependentBuilds(t *testing.T, adapter maps.Adapter) {
	w := generate(t, 200)

	full := adapter.Build(w.Records)
	half := adapter.Build(w.Records[:100])

	if full.Len() != 200 || half.Len() != 100 {
		t.Fatalf("Expected Len 200 and 100, got %d and %d", full.Len(), half.Len())
	}
	if _, ok := half.Get(w.Records[150].Key); ok {
		t.Errorf("Key %s of another build should not be visible", w.Records[150].Key)
	}
	if sum := full.Probe(w.QueryKeys); sum != w.ReferenceSum {
		t.Errorf("Expected sum %d after second build, got %d", w.ReferenceSum, sum)
	}
}

func testVersions(t *testing.T, adapter maps.Adapter) {
	versioned := requireVersioned(t, adapter)

	w := generate(t, 200)
	versions := versioned.BuildVersions(w.Records)

	if len(versions) != w.Size()+1 {
		t.Fatalf("Expected %d versions, got %d", w.Size()+1, len(versions))
	}

	var prefixSum int64
	for i, view := range versions {
		if i > 0 {
			prefixSum += int64(w.Records[i-1].Value)
		}

		if view.Len() != i {
			t.Fatalf("Version %d: expected Len %d, got %d", i, i, view.Len())
		}
		if sum := view.Probe(w.QueryKeys); sum != prefixSum {
			t.Errorf("Version %d: expected sum %d, got %d", i, prefixSum, sum)
		}

		for j, r := range w.Records {
			_, ok := view.Get(r.Key)
			if ok != (j < i) {
				t.Fatalf("Version %d: key %s (record %d) present=%v", i, r.Key, j, ok)
			}
		}
	}

	// the last version must agree with a plain build
	last := versions[len(versions)-1]
	if sum := adapter.Build(w.Records).Probe(w.QueryKeys); sum != last.Probe(w.QueryKeys) {
		t.Errorf("Last version and Build disagree: %d vs %d", last.Probe(w.QueryKeys), sum)
	}

	if _, ok := versions[0].Get(strconv.Itoa(0)); ok {
		t.Error("The first version should be empty")
	}
}
