package scenario

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/zeusync/particles/internal/core/models"
	"github.com/zeusync/particles/internal/core/observability/log"
	phys "github.com/zeusync/particles/internal/core/systems/physics"
)

const (
	PursuitEvasionName = "pursuit_evasion"

	DefaultPursuitAgents  = 5
	DefaultPursuitEvaders = 1

	// ViewRadius is how close a pursuer has to be to see an evader.
	ViewRadius = 0.12
	// ArenaBound is the half-width of the area an evader must stay in.
	ArenaBound = 1.0

	CollisionPenalty    = 1.0
	ProximityBonus      = 1.0
	EvaderSpeedWeight   = 1.0
	BoundaryPenalty     = 100.0
	EncirclementPenalty = 1.0
)

var _ Scenario = (*PursuitEvasion)(nil)

// PursuitEvasion pits a team of pursuers against one or more evaders.
// Pursuers share a penalty equal to the evaders' total speed and each earns
// a bonus for every evader in view. Evaders are rewarded for keeping away
// from the nearest pursuer, must stay inside the arena and are penalised for
// moving once every pursuer has them in view.
type PursuitEvasion struct {
	opts options
	log  log.Log
}

func NewPursuitEvasion(opts ...Option) *PursuitEvasion {
	o := newOptions(DefaultPursuitAgents, DefaultPursuitEvaders, opts)
	return &PursuitEvasion{
		opts: o,
		log:  o.logger.With(log.String("scenario", PursuitEvasionName)),
	}
}

func (s *PursuitEvasion) Name() string { return PursuitEvasionName }

func (s *PursuitEvasion) MakeWorld(rng *rand.Rand) (*models.World, error) {
	if err := s.opts.validate(); err != nil {
		return nil, err
	}
	if s.opts.evaders < 1 || s.opts.evaders >= s.opts.agents {
		return nil, fmt.Errorf("%w: need at least one evader and one pursuer, got %d evaders of %d agents",
			ErrInvalidPopulation, s.opts.evaders, s.opts.agents)
	}

	w := models.NewWorld(s.opts.commDim)
	populateAgents(w, s.opts.agents, func(i int, a *models.Agent) {
		a.Collide = true
		a.Role = models.RolePursuer
		if i < s.opts.evaders {
			a.Role = models.RoleEvader
		}
	})
	s.log.Debug("world populated",
		log.Int("agents", s.opts.agents),
		log.Int("evaders", s.opts.evaders),
		log.Int("comm_dim", s.opts.commDim),
	)

	s.ResetWorld(w, rng)
	return w, nil
}

func (s *PursuitEvasion) ResetWorld(w *models.World, rng *rand.Rand) {
	resetAgents(w, rng, func(a *models.Agent) models.Color {
		if a.IsEvader() {
			return EvaderColor
		}
		return PursuerColor
	})
	s.log.Debug("world reset", log.Int("agents", len(w.Agents)))
}

func (s *PursuitEvasion) Reward(agent *models.Agent, w *models.World) (float64, error) {
	if err := checkQuery(agent, w); err != nil {
		return 0, err
	}
	switch agent.Role {
	case models.RoleEvader:
		return evaderReward(agent, w)
	case models.RolePursuer:
		return pursuerReward(agent, w), nil
	default:
		return 0, fmt.Errorf("%w: %s is %s", ErrUnknownRole, agent.Name, agent.Role)
	}
}

// pursuerReward = collision term + shared term + private term.
// The shared term is the same for every pursuer in a given world state.
func pursuerReward(agent *models.Agent, w *models.World) float64 {
	collision := 0.0
	if agent.Collide {
		for _, other := range w.Agents {
			if other != agent && phys.IsCollision(other, agent) {
				collision -= CollisionPenalty
			}
		}
	}

	shared, private := 0.0, 0.0
	for _, e := range w.Evaders() {
		if phys.Distance(agent, e) < ViewRadius {
			private += ProximityBonus
		}
		shared -= EvaderSpeedWeight * e.State.Velocity.Norm()
	}
	return collision + shared + private
}

func evaderReward(agent *models.Agent, w *models.World) (float64, error) {
	pursuers := w.NonEvaders()
	if len(pursuers) == 0 {
		return 0, ErrNoPursuers
	}

	nearest := math.Inf(1)
	surrounded := true
	for _, p := range pursuers {
		d := phys.Distance(p, agent)
		nearest = math.Min(nearest, d)
		if d >= ViewRadius {
			surrounded = false
		}
	}

	reward := nearest
	pos := agent.State.Position
	if math.Abs(pos.X) > ArenaBound || math.Abs(pos.Y) > ArenaBound {
		reward -= BoundaryPenalty
	}
	if surrounded {
		reward -= EncirclementPenalty * agent.State.Velocity.Norm()
	}
	return reward, nil
}

// Observation is own velocity, own position, every evader relative to the
// agent, then every other non-evader relative to the agent. An evader sees
// itself among the evaders as a zero offset.
func (s *PursuitEvasion) Observation(agent *models.Agent, w *models.World) ([]float64, error) {
	if err := checkQuery(agent, w); err != nil {
		return nil, err
	}
	origin := agent.State.Position
	obs := make([]float64, 0, 4+2*len(w.Agents))
	obs = agent.State.Velocity.Append(obs)
	obs = origin.Append(obs)
	for _, e := range w.Evaders() {
		obs = e.State.Position.Sub(origin).Append(obs)
	}
	for _, other := range w.NonEvaders() {
		if other == agent {
			continue
		}
		obs = other.State.Position.Sub(origin).Append(obs)
	}
	return obs, nil
}
