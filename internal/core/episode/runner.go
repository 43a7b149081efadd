package episode

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/particles/internal/core/events/bus"
	"github.com/zeusync/particles/internal/core/models"
	"github.com/zeusync/particles/internal/core/observability/log"
	"github.com/zeusync/particles/internal/core/scenario"
	"github.com/zeusync/particles/pkg/concurrent"
)

const (
	EventEpisodeStarted  = "episode.started"
	EventStepEvaluated   = "episode.step"
	EventEpisodeFinished = "episode.finished"
)

var ErrNotStarted = errors.New("episode not started")

// Stepper advances the world by one physics tick. It is the seam to the
// external physics engine and must finish all writes before returning.
type Stepper interface {
	Step(ctx context.Context, w *models.World) error
}

// Frozen is a Stepper that leaves the world untouched.
type Frozen struct{}

func (Frozen) Step(context.Context, *models.World) error { return nil }

type Settings struct {
	Seed uint64
	// Workers bounds concurrent per-agent evaluation; 0 means one per agent.
	Workers int
}

type Episode struct {
	ID    uuid.UUID
	Index int
}

type StepResult struct {
	Episode      uuid.UUID
	Step         int
	Rewards      []float64
	Observations [][]float64
}

type Summary struct {
	Episode Episode
	Steps   int
	// Returns holds every agent's summed reward, in world order.
	Returns  []float64
	Duration time.Duration
}

// Runner drives one scenario through episodes: it owns the world and the
// random source, delegates motion to a Stepper and evaluates every agent's
// reward and observation after each step.
type Runner struct {
	scenario scenario.Scenario
	physics  Stepper
	events   bus.EventBus
	log      log.Log
	workers  int
	rng      *rand.Rand

	world    *models.World
	current  Episode
	episodes int
	step     int
}

func NewRunner(sc scenario.Scenario, physics Stepper, events bus.EventBus, logger log.Log, settings Settings) *Runner {
	if physics == nil {
		physics = Frozen{}
	}
	if events == nil {
		events = bus.New()
	}
	if logger == nil {
		logger = log.Provide()
	}
	return &Runner{
		scenario: sc,
		physics:  physics,
		events:   events,
		log:      logger.With(log.String("scenario", sc.Name())),
		workers:  settings.Workers,
		rng:      scenario.NewRand(settings.Seed, sc.Name()),
	}
}

// World returns the runner's world, nil before the first Reset.
func (r *Runner) World() *models.World { return r.world }

// Reset starts a new episode. The world is built on the first call and
// reset in place afterwards.
func (r *Runner) Reset(ctx context.Context) (Episode, error) {
	if err := ctx.Err(); err != nil {
		return Episode{}, err
	}
	if r.world == nil {
		w, err := r.scenario.MakeWorld(r.rng)
		if err != nil {
			return Episode{}, fmt.Errorf("make world: %w", err)
		}
		r.world = w
	} else {
		r.scenario.ResetWorld(r.world, r.rng)
	}

	r.current = Episode{ID: uuid.New(), Index: r.episodes}
	r.episodes++
	r.step = 0

	r.log.Info("episode started",
		log.String("episode", r.current.ID.String()),
		log.Int("index", r.current.Index),
		log.Int("agents", len(r.world.Agents)),
	)
	if err := r.events.Publish(bus.NewEvent(EventEpisodeStarted, r.scenario.Name(), r.current)); err != nil {
		return r.current, fmt.Errorf("publish %s: %w", EventEpisodeStarted, err)
	}
	return r.current, nil
}

// Step advances physics once and evaluates every agent.
func (r *Runner) Step(ctx context.Context) (StepResult, error) {
	if r.world == nil {
		return StepResult{}, ErrNotStarted
	}
	if err := r.physics.Step(ctx, r.world); err != nil {
		return StepResult{}, fmt.Errorf("physics step: %w", err)
	}
	r.step++

	res, err := r.Evaluate(ctx)
	if err != nil {
		return StepResult{}, err
	}
	if err = r.events.Publish(bus.NewEvent(EventStepEvaluated, r.scenario.Name(), res)); err != nil {
		return res, fmt.Errorf("publish %s: %w", EventStepEvaluated, err)
	}
	return res, nil
}

type evaluation struct {
	reward float64
	obs    []float64
}

// Evaluate computes rewards and observations for the current world state
// without advancing it. Agent-invariant rewards are computed once.
func (r *Runner) Evaluate(ctx context.Context) (StepResult, error) {
	if r.world == nil {
		return StepResult{}, ErrNotStarted
	}
	w := r.world

	team, shared := r.scenario.(scenario.TeamRewarder)
	var teamReward float64
	if shared {
		var err error
		if teamReward, err = team.TeamReward(w); err != nil {
			return StepResult{}, fmt.Errorf("team reward: %w", err)
		}
	}

	evals, err := concurrent.Map(ctx, w.Agents, r.workers, func(_ context.Context, a *models.Agent) (evaluation, error) {
		ev := evaluation{reward: teamReward}
		if !shared {
			rew, err := r.scenario.Reward(a, w)
			if err != nil {
				return ev, fmt.Errorf("reward for %s: %w", a.Name, err)
			}
			ev.reward = rew
		}
		obs, err := r.scenario.Observation(a, w)
		if err != nil {
			return ev, fmt.Errorf("observation for %s: %w", a.Name, err)
		}
		ev.obs = obs
		return ev, nil
	})
	if err != nil {
		return StepResult{}, err
	}

	res := StepResult{
		Episode:      r.current.ID,
		Step:         r.step,
		Rewards:      make([]float64, len(evals)),
		Observations: make([][]float64, len(evals)),
	}
	for i, ev := range evals {
		res.Rewards[i] = ev.reward
		res.Observations[i] = ev.obs
	}
	return res, nil
}

// Run resets the world and plays steps ticks, accumulating every agent's
// return.
func (r *Runner) Run(ctx context.Context, steps int) (Summary, error) {
	start := time.Now()
	ep, err := r.Reset(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Episode: ep, Returns: make([]float64, len(r.world.Agents))}
	for i := 0; i < steps; i++ {
		res, err := r.Step(ctx)
		if err != nil {
			return sum, fmt.Errorf("episode %s step %d: %w", ep.ID, i+1, err)
		}
		for j, rew := range res.Rewards {
			sum.Returns[j] += rew
		}
		sum.Steps++
	}
	sum.Duration = time.Since(start)

	r.log.Info("episode finished",
		log.String("episode", ep.ID.String()),
		log.Int("steps", sum.Steps),
		log.Duration("duration", sum.Duration),
	)
	if err = r.events.Publish(bus.NewEvent(EventEpisodeFinished, r.scenario.Name(), sum)); err != nil {
		return sum, fmt.Errorf("publish %s: %w", EventEpisodeFinished, err)
	}
	return sum, nil
}
