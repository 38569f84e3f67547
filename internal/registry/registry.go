// Package registry provides a global registry for experiment factories.
// Experiments register themselves in init() functions, allowing the CLI
// to discover and run them without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrUnknownExperiment is returned by Create for unregistered IDs.
var ErrUnknownExperiment = errors.New("registry: unknown experiment")

// Experiment is a repeatable Monte Carlo estimate of some probability.
type Experiment interface {
	// ID returns a unique identifier (e.g., "montyhall", "family").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run performs p.Trials independent trials and reports the estimates.
	Run(ctx context.Context, p Params) (Report, error)
}

// Params are the knobs shared by all experiments. Experiments ignore the
// ones that do not apply to them.
type Params struct {
	Trials   int
	Seed     int64
	Strategy string // Monty Hall only
	Doors    int    // Monty Hall only
	Logger   *log.Logger
}

// Count is a raw tally from a run.
type Count struct {
	Name  string
	Value int
}

// Metric is an estimated probability next to its theoretical value.
type Metric struct {
	Name     string
	Value    float64
	Expected float64
	StdError float64
}

// Report is the outcome of one experiment run.
type Report struct {
	ExperimentID string
	Title        string
	Strategy     string // empty when not applicable
	Doors        int    // 0 when not applicable
	Trials       int
	Seed         int64
	Counts       []Count
	Metrics      []Metric
}

// Count returns the named tally, or 0 if absent.
func (r Report) Count(name string) int {
	for _, c := range r.Counts {
		if c.Name == name {
			return c.Value
		}
	}
	return 0
}

// ExperimentInfo contains metadata about a registered experiment.
type ExperimentInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of an experiment.
type Factory func() Experiment

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an experiment factory to the registry.
// Panics if an experiment with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: experiment %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered experiments, sorted by ID.
func List() []ExperimentInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ExperimentInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ExperimentInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new experiment by its ID.
func Create(id string) (Experiment, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownExperiment, id)
	}

	return f(), nil
}

// Exists checks if an experiment with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
