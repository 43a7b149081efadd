package scenario

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/zeusync/particles/internal/core/models"
	"github.com/zeusync/particles/internal/core/observability/log"
)

// Scenario is the contract between a scenario and the simulation driver.
//
// MakeWorld populates a new world and resets it once. ResetWorld starts a new
// episode by redrawing every entity's state in place. Reward and Observation
// read world state only and may be called concurrently for distinct agents.
type Scenario interface {
	Name() string
	MakeWorld(rng *rand.Rand) (*models.World, error)
	ResetWorld(w *models.World, rng *rand.Rand)
	Reward(agent *models.Agent, w *models.World) (float64, error)
	Observation(agent *models.Agent, w *models.World) ([]float64, error)
}

// TeamRewarder is implemented by scenarios whose reward does not depend on
// the querying agent. Drivers can compute it once per step.
type TeamRewarder interface {
	TeamReward(w *models.World) (float64, error)
}

const (
	DefaultCommDim = 2
	AgentSize      = 0.02
	LandmarkSize   = 0.02
	AgentMaxSpeed  = 1.0
)

type options struct {
	agents  int
	evaders int
	commDim int
	logger  log.Log
}

type Option func(*options)

// WithAgents sets the total number of agents.
func WithAgents(n int) Option {
	return func(o *options) { o.agents = n }
}

// WithEvaders sets how many of the agents are evaders. Only pursuit-evasion
// uses it.
func WithEvaders(n int) Option {
	return func(o *options) { o.evaders = n }
}

// WithCommDim sets the length of every agent's communication vector.
func WithCommDim(n int) Option {
	return func(o *options) { o.commDim = n }
}

func WithLogger(l log.Log) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(agents, evaders int, opts []Option) options {
	o := options{agents: agents, evaders: evaders, commDim: DefaultCommDim}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Provide()
	}
	return o
}

func (o options) validate() error {
	if o.agents < 1 {
		return fmt.Errorf("%w: need at least one agent, got %d", ErrInvalidPopulation, o.agents)
	}
	if o.commDim < 0 {
		return fmt.Errorf("%w: negative communication dimension %d", ErrInvalidPopulation, o.commDim)
	}
	return nil
}

// Factory builds a scenario from options.
type Factory func(opts ...Option) Scenario

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		PursuitEvasionName:     func(opts ...Option) Scenario { return NewPursuitEvasion(opts...) },
		RendezvousName:         func(opts ...Option) Scenario { return NewRendezvous(opts...) },
		LandmarkRendezvousName: func(opts ...Option) Scenario { return NewLandmarkRendezvous(opts...) },
	}
)

// Register adds a named scenario factory.
func Register(name string, f Factory) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateScenario, name)
	}
	registry[name] = f
	return nil
}

// New resolves a registered scenario by name.
func New(name string, opts ...Option) (Scenario, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return f(opts...), nil
}

// Names lists registered scenarios in lexical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkQuery(agent *models.Agent, w *models.World) error {
	switch {
	case agent == nil:
		return ErrNilAgent
	case w == nil:
		return ErrNilWorld
	case len(w.Agents) == 0:
		return ErrNoAgents
	}
	return nil
}
