package harness

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ValentinKolb/mapbench/lib/maps"
	"github.com/ValentinKolb/mapbench/lib/maps/engines"
	"github.com/ValentinKolb/mapbench/lib/oracle"
	"github.com/ValentinKolb/mapbench/lib/workload"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("harness")

var (
	// ErrNoKinds is returned when the configuration selects no engine
	ErrNoKinds = errors.New("no map kinds selected")
	// ErrBaselineNotSelected is returned when the baseline kind is not among the selected kinds
	ErrBaselineNotSelected = errors.New("baseline kind is not selected")
	// ErrDuplicateKind is returned when a kind is selected more than once
	ErrDuplicateKind = errors.New("map kind selected more than once")
)

// Probe is one measurable lookup operation.
// Run probes every query key of the workload and checks the sum with the oracle. It returns a
// *oracle.CorrectnessViolation on mismatch and can be called any number of times.
type Probe struct {
	Name      string
	Kind      maps.Kind
	Model     maps.Model
	Baseline  bool
	BuildTime time.Duration // time it took to build the view
	Run       func() error
}

// Harness owns the workload and one populated view per selected engine
type Harness struct {
	cfg      Config
	workload *workload.Workload
	probes   []Probe
}

// adapterFactory resolves a kind to an adapter
type adapterFactory func(kind maps.Kind, opts engines.Options) (maps.Adapter, error)

// New generates the workload and builds every selected engine once
func New(cfg Config) (*Harness, error) {
	return newHarness(cfg, engines.New)
}

func newHarness(cfg Config, factory adapterFactory) (*Harness, error) {
	if len(cfg.Kinds) == 0 {
		return nil, ErrNoKinds
	}
	for i, kind := range cfg.Kinds {
		if slices.Contains(cfg.Kinds[:i], kind) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKind, kind)
		}
	}
	if cfg.Baseline != "" && !slices.Contains(cfg.Kinds, cfg.Baseline) {
		return nil, fmt.Errorf("%w: %s", ErrBaselineNotSelected, cfg.Baseline)
	}

	w, err := workload.Generate(cfg.Seed, cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate workload: %w", err)
	}
	log.Infof("generated workload: %d keys, seed %d, reference sum %d, %d draws",
		w.Size(), w.Seed, w.ReferenceSum, w.Attempts)

	h := &Harness{cfg: cfg, workload: w}
	for _, kind := range cfg.Kinds {
		adapter, err := factory(kind, cfg.Engines)
		if err != nil {
			return nil, fmt.Errorf("failed to create adapter %s: %w", kind, err)
		}

		start := time.Now()
		view := adapter.Build(w.Records)
		buildTime := time.Since(start)

		if view.Len() != w.Size() {
			return nil, fmt.Errorf("adapter %s built %d keys, expected %d", kind, view.Len(), w.Size())
		}
		log.Debugf("built %s view in %s", kind, buildTime)

		info := adapter.Info()
		name := string(kind)
		h.probes = append(h.probes, Probe{
			Name:      name,
			Kind:      kind,
			Model:     info.Model,
			Baseline:  kind == cfg.Baseline,
			BuildTime: buildTime,
			Run: func() error {
				return probe(name, view, w)
			},
		})
	}

	return h, nil
}

// probe runs one lookup pass over all query keys and validates the sum
func probe(name string, view maps.View, w *workload.Workload) error {
	return oracle.Validate(name, view.Probe(w.QueryKeys), w.ReferenceSum)
}

// Config returns the configuration the harness was built with
func (h *Harness) Config() Config {
	return h.cfg
}

// Workload returns the generated workload
func (h *Harness) Workload() *workload.Workload {
	return h.workload
}

// Probes returns the probes in configuration order
func (h *Harness) Probes() []Probe {
	out := make([]Probe, len(h.probes))
	copy(out, h.probes)
	return out
}

// Verify runs every probe once and returns the first error
func (h *Harness) Verify() error {
	for _, p := range h.probes {
		if err := p.Run(); err != nil {
			log.Errorf("probe %s failed verification: %v", p.Name, err)
			return err
		}
		log.Debugf("probe %s verified", p.Name)
	}
	log.Infof("verified %d probes against reference sum %d", len(h.probes), h.workload.ReferenceSum)
	return nil
}
