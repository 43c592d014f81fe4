package engine

import (
	"fmt"
	"sort"
)

// Config selects engine preference order, mirroring how the reference
// hash-method factory lets callers prioritize ASIC over CUDA over
// software.
type Config struct {
	// PreferredOrder lists engine names from most to least preferred.
	PreferredOrder []string
}

// DefaultConfig prefers the widest engine whose CPU feature requirement
// is met, falling back to scalar.
func DefaultConfig() *Config {
	return &Config{
		PreferredOrder: []string{
			"width-16 (512-bit)",
			"width-8 (256-bit)",
			"width-4 (128-bit)",
			"scalar",
		},
	}
}

// Factory builds and selects among the width-specific engines.
type Factory struct {
	config  *Config
	engines map[string]Engine
	best    Engine
}

// NewFactory constructs every known engine, probes their availability
// and selects the best one per config's preference order.
func NewFactory(config *Config) *Factory {
	if config == nil {
		config = DefaultConfig()
	}

	f := &Factory{
		config:  config,
		engines: make(map[string]Engine),
	}

	for _, e := range []Engine{
		NewScalarMethod(),
		NewWidth4Method(),
		NewWidth8Method(),
		NewWidth16Method(),
	} {
		f.engines[e.Name()] = e
	}

	f.selectBest()
	return f
}

func (f *Factory) selectBest() {
	for _, name := range f.config.PreferredOrder {
		if e, ok := f.engines[name]; ok && e.IsAvailable() {
			f.best = e
			return
		}
	}
	f.best = f.engines["scalar"]
}

// Best returns the currently selected engine.
func (f *Factory) Best() Engine {
	return f.best
}

// Get returns a specific engine by name, or nil if unknown.
func (f *Factory) Get(name string) Engine {
	return f.engines[name]
}

// InitializeBest initializes the selected best engine.
func (f *Factory) InitializeBest() error {
	if f.best == nil {
		return fmt.Errorf("engine: no engine selected")
	}
	return f.best.Initialize()
}

// ShutdownAll shuts down every constructed engine.
func (f *Factory) ShutdownAll() error {
	for name, e := range f.engines {
		if err := e.Shutdown(); err != nil {
			return fmt.Errorf("engine: shutdown %s: %w", name, err)
		}
	}
	return nil
}

// Report describes the detection outcome for every known engine.
type Report struct {
	Engines    []*Status `json:"engines"`
	BestEngine string    `json:"best_engine"`
}

// Status describes a single engine's detection outcome.
type Status struct {
	Name         string        `json:"name"`
	Available    bool          `json:"available"`
	Priority     int           `json:"priority"`
	Capabilities *Capabilities `json:"capabilities"`
}

// DetectionReport builds a Report across every known engine, ordered by
// configured priority.
func (f *Factory) DetectionReport() *Report {
	report := &Report{}
	if f.best != nil {
		report.BestEngine = f.best.Name()
	}

	priority := func(name string) int {
		for i, p := range f.config.PreferredOrder {
			if p == name {
				return i
			}
		}
		return len(f.config.PreferredOrder)
	}

	for name, e := range f.engines {
		report.Engines = append(report.Engines, &Status{
			Name:         name,
			Available:    e.IsAvailable(),
			Priority:     priority(name),
			Capabilities: e.Capabilities(),
		})
	}

	sort.Slice(report.Engines, func(i, j int) bool {
		return report.Engines[i].Priority < report.Engines[j].Priority
	})

	return report
}
