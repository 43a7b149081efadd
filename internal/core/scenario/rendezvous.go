package scenario

import (
	"math/rand/v2"

	"github.com/zeusync/particles/internal/core/models"
	"github.com/zeusync/particles/internal/core/observability/log"
	phys "github.com/zeusync/particles/internal/core/systems/physics"
	"github.com/zeusync/particles/pkg/sequence"
)

const (
	RendezvousName          = "rendezvous"
	DefaultRendezvousAgents = 20
)

var (
	_ Scenario     = (*Rendezvous)(nil)
	_ TeamRewarder = (*Rendezvous)(nil)
)

// Rendezvous rewards the whole team for gathering: every agent receives the
// negated largest distance between any two agents.
type Rendezvous struct {
	opts options
	log  log.Log
}

func NewRendezvous(opts ...Option) *Rendezvous {
	o := newOptions(DefaultRendezvousAgents, 0, opts)
	return &Rendezvous{
		opts: o,
		log:  o.logger.With(log.String("scenario", RendezvousName)),
	}
}

func (s *Rendezvous) Name() string { return RendezvousName }

func (s *Rendezvous) MakeWorld(rng *rand.Rand) (*models.World, error) {
	if err := s.opts.validate(); err != nil {
		return nil, err
	}
	w := models.NewWorld(s.opts.commDim)
	populateAgents(w, s.opts.agents, func(int, *models.Agent) {})
	s.log.Debug("world populated", log.Int("agents", s.opts.agents))

	s.ResetWorld(w, rng)
	return w, nil
}

func (s *Rendezvous) ResetWorld(w *models.World, rng *rand.Rand) {
	resetAgents(w, rng, func(*models.Agent) models.Color { return RendezvousColor })
	s.log.Debug("world reset", log.Int("agents", len(w.Agents)))
}

func (s *Rendezvous) Reward(agent *models.Agent, w *models.World) (float64, error) {
	if err := checkQuery(agent, w); err != nil {
		return 0, err
	}
	return s.TeamReward(w)
}

// TeamReward is the negated diameter of the agent group.
func (s *Rendezvous) TeamReward(w *models.World) (float64, error) {
	if w == nil {
		return 0, ErrNilWorld
	}
	if len(w.Agents) == 0 {
		return 0, ErrNoAgents
	}
	return -phys.MaxPairwiseDistance(positions(w.Agents)), nil
}

func (s *Rendezvous) Observation(agent *models.Agent, w *models.World) ([]float64, error) {
	if err := checkQuery(agent, w); err != nil {
		return nil, err
	}
	obs := make([]float64, 0, 4+2*len(w.Agents))
	obs = agent.State.Velocity.Append(obs)
	obs = agent.State.Position.Append(obs)
	return appendRelative(obs, agent, w.Agents), nil
}

func positions(agents []*models.Agent) []phys.Vec2 {
	return sequence.Map(sequence.From(agents), func(a *models.Agent) phys.Vec2 {
		return a.State.Position
	}).Collect()
}

// appendRelative appends the offset of every agent but self, in order.
func appendRelative(dst []float64, self *models.Agent, agents []*models.Agent) []float64 {
	origin := self.State.Position
	for _, other := range agents {
		if other == self {
			continue
		}
		dst = other.State.Position.Sub(origin).Append(dst)
	}
	return dst
}
