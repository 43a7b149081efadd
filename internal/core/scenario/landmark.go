package scenario

import (
	"fmt"
	"math/rand/v2"

	"github.com/zeusync/particles/internal/core/models"
	"github.com/zeusync/particles/internal/core/observability/log"
	phys "github.com/zeusync/particles/internal/core/systems/physics"
)

const (
	LandmarkRendezvousName = "landmark_rendezvous"
	// LandmarkDistanceWeight scales the summed agent-to-landmark distance.
	LandmarkDistanceWeight = 0.5
)

var (
	_ Scenario     = (*LandmarkRendezvous)(nil)
	_ TeamRewarder = (*LandmarkRendezvous)(nil)
)

// LandmarkRendezvous asks every agent to gather on a single static landmark.
// The reward is shared: half the summed distance of all agents to it, negated.
type LandmarkRendezvous struct {
	opts options
	log  log.Log
}

func NewLandmarkRendezvous(opts ...Option) *LandmarkRendezvous {
	o := newOptions(DefaultRendezvousAgents, 0, opts)
	return &LandmarkRendezvous{
		opts: o,
		log:  o.logger.With(log.String("scenario", LandmarkRendezvousName)),
	}
}

func (s *LandmarkRendezvous) Name() string { return LandmarkRendezvousName }

func (s *LandmarkRendezvous) MakeWorld(rng *rand.Rand) (*models.World, error) {
	if err := s.opts.validate(); err != nil {
		return nil, err
	}
	w := models.NewWorld(s.opts.commDim)
	populateAgents(w, s.opts.agents, func(int, *models.Agent) {})
	populateLandmarks(w, 1)
	s.log.Debug("world populated",
		log.Int("agents", s.opts.agents),
		log.Int("landmarks", len(w.Landmarks)),
	)

	s.ResetWorld(w, rng)
	return w, nil
}

func (s *LandmarkRendezvous) ResetWorld(w *models.World, rng *rand.Rand) {
	resetAgents(w, rng, func(*models.Agent) models.Color { return LandmarkRendezvousColor })
	resetLandmarks(w, rng)
	s.log.Debug("world reset", log.Int("agents", len(w.Agents)))
}

func (s *LandmarkRendezvous) Reward(agent *models.Agent, w *models.World) (float64, error) {
	if err := checkQuery(agent, w); err != nil {
		return 0, err
	}
	return s.TeamReward(w)
}

func (s *LandmarkRendezvous) TeamReward(w *models.World) (float64, error) {
	if w == nil {
		return 0, ErrNilWorld
	}
	if len(w.Agents) == 0 {
		return 0, ErrNoAgents
	}
	landmark, err := soleLandmark(w)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, a := range w.Agents {
		total += phys.Distance(a, landmark)
	}
	return -LandmarkDistanceWeight * total, nil
}

// Observation is own velocity, own position, the landmark's absolute
// position, then every other agent relative to the caller.
func (s *LandmarkRendezvous) Observation(agent *models.Agent, w *models.World) ([]float64, error) {
	if err := checkQuery(agent, w); err != nil {
		return nil, err
	}
	landmark, err := soleLandmark(w)
	if err != nil {
		return nil, err
	}
	obs := make([]float64, 0, 6+2*len(w.Agents))
	obs = agent.State.Velocity.Append(obs)
	obs = agent.State.Position.Append(obs)
	obs = landmark.State.Position.Append(obs)
	return appendRelative(obs, agent, w.Agents), nil
}

func soleLandmark(w *models.World) (*models.Landmark, error) {
	if len(w.Landmarks) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrLandmarkCount, len(w.Landmarks))
	}
	return w.Landmarks[0], nil
}
