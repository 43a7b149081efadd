package episode

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/particles/internal/core/events/bus"
	"github.com/zeusync/particles/internal/core/models"
	"github.com/zeusync/particles/internal/core/observability/log"
	"github.com/zeusync/particles/internal/core/scenario"
	phys "github.com/zeusync/particles/internal/core/systems/physics"
)

type stepperFunc func(ctx context.Context, w *models.World) error

func (f stepperFunc) Step(ctx context.Context, w *models.World) error { return f(ctx, w) }

type countingRendezvous struct {
	*scenario.Rendezvous
	rewards atomic.Int32
}

func (c *countingRendezvous) Reward(a *models.Agent, w *models.World) (float64, error) {
	c.rewards.Add(1)
	return c.Rendezvous.Reward(a, w)
}

var nop = log.NewNop()

func TestStepBeforeReset(t *testing.T) {
	r := NewRunner(scenario.NewRendezvous(scenario.WithLogger(nop)), nil, nil, nop, Settings{})
	_, err := r.Step(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)
	_, err = r.Evaluate(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.Nil(t, r.World())
}

func TestResetReusesWorld(t *testing.T) {
	r := NewRunner(scenario.NewRendezvous(scenario.WithLogger(nop), scenario.WithAgents(4)), Frozen{}, nil, nop, Settings{Seed: 3})

	ep1, err := r.Reset(context.Background())
	require.NoError(t, err)
	w := r.World()
	require.NotNil(t, w)
	first := w.Agents[0].State.Position

	ep2, err := r.Reset(context.Background())
	require.NoError(t, err)
	assert.Same(t, w, r.World())
	assert.NotEqual(t, ep1.ID, ep2.ID)
	assert.Equal(t, 0, ep1.Index)
	assert.Equal(t, 1, ep2.Index)
	assert.NotEqual(t, first, w.Agents[0].State.Position)
}

func TestRunnerReproducibleBySeed(t *testing.T) {
	positions := func() []phys.Vec2 {
		r := NewRunner(scenario.NewPursuitEvasion(scenario.WithLogger(nop)), nil, nil, nop, Settings{Seed: 77})
		_, err := r.Reset(context.Background())
		require.NoError(t, err)
		_, err = r.Reset(context.Background())
		require.NoError(t, err)
		out := make([]phys.Vec2, 0, len(r.World().Agents))
		for _, a := range r.World().Agents {
			out = append(out, a.State.Position)
		}
		return out
	}
	assert.Equal(t, positions(), positions())
}

func TestTeamRewardComputedOnce(t *testing.T) {
	sc := &countingRendezvous{Rendezvous: scenario.NewRendezvous(scenario.WithLogger(nop), scenario.WithAgents(6))}
	r := NewRunner(sc, Frozen{}, nil, nop, Settings{Workers: 2})
	_, err := r.Reset(context.Background())
	require.NoError(t, err)

	res, err := r.Step(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sc.rewards.Load())
	require.Len(t, res.Rewards, 6)

	want, err := sc.Rendezvous.Reward(r.World().Agents[0], r.World())
	require.NoError(t, err)
	for i, got := range res.Rewards {
		assert.Equal(t, want, got)
		assert.Len(t, res.Observations[i], 4+2*5)
	}
}

func TestStepAppliesPhysicsBeforeEvaluation(t *testing.T) {
	sc := scenario.NewPursuitEvasion(scenario.WithLogger(nop))
	push := stepperFunc(func(_ context.Context, w *models.World) error {
		for _, e := range w.Evaders() {
			e.State.Velocity = phys.Vec2{X: 0.3, Y: 0.4}
		}
		return nil
	})
	r := NewRunner(sc, push, nil, nop, Settings{Workers: 3})
	_, err := r.Reset(context.Background())
	require.NoError(t, err)

	res, err := r.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Step)

	for i, a := range r.World().Agents {
		want, err := sc.Reward(a, r.World())
		require.NoError(t, err)
		assert.Equal(t, want, res.Rewards[i], a.Name)
		if !a.IsEvader() {
			assert.LessOrEqual(t, res.Rewards[i], -0.5+float64(len(r.World().Evaders()))+1e-9)
		}
	}
}

func TestStepPhysicsError(t *testing.T) {
	boom := errors.New("integrator diverged")
	r := NewRunner(scenario.NewRendezvous(scenario.WithLogger(nop)), stepperFunc(func(context.Context, *models.World) error {
		return boom
	}), nil, nop, Settings{})
	_, err := r.Reset(context.Background())
	require.NoError(t, err)

	_, err = r.Step(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestStepCancelledContext(t *testing.T) {
	r := NewRunner(scenario.NewPursuitEvasion(scenario.WithLogger(nop)), nil, nil, nop, Settings{Workers: 1})
	_, err := r.Reset(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Step(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = r.Reset(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPublishesEventsAndAccumulates(t *testing.T) {
	events := bus.New()
	var started, steps, finished int
	var summary Summary
	for typ, fn := range map[string]func(bus.Event){
		EventEpisodeStarted: func(bus.Event) { started++ },
		EventStepEvaluated:  func(bus.Event) { steps++ },
		EventEpisodeFinished: func(e bus.Event) {
			finished++
			summary = e.Data().(Summary)
		},
	} {
		_, err := events.Subscribe(typ, func(e bus.Event) error {
			fn(e)
			return nil
		})
		require.NoError(t, err)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	sc := scenario.NewLandmarkRendezvous(scenario.WithLogger(nop), scenario.WithAgents(5))
	r := NewRunner(sc, Frozen{}, events, log.NewWithCore(core), Settings{Seed: 5})

	sum, err := r.Run(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 1, started)
	assert.Equal(t, 4, steps)
	assert.Equal(t, 1, finished)
	assert.Equal(t, 4, sum.Steps)
	assert.Equal(t, sum.Episode, summary.Episode)

	team, err := sc.TeamReward(r.World())
	require.NoError(t, err)
	require.Len(t, sum.Returns, 5)
	for _, ret := range sum.Returns {
		assert.InDelta(t, 4*team, ret, 1e-9)
	}

	assert.Equal(t, 1, logs.FilterMessage("episode started").Len())
	assert.Equal(t, 1, logs.FilterMessage("episode finished").Len())
}

func TestRunFailsOnInvalidPopulation(t *testing.T) {
	sc := scenario.NewPursuitEvasion(scenario.WithLogger(nop), scenario.WithEvaders(0))
	r := NewRunner(sc, nil, nil, nop, Settings{})
	_, err := r.Run(context.Background(), 1)
	assert.ErrorIs(t, err, scenario.ErrInvalidPopulation)
}

func TestHandlerErrorSurfaces(t *testing.T) {
	events := bus.New()
	rejected := errors.New("rejected")
	_, err := events.Subscribe(EventStepEvaluated, func(bus.Event) error { return rejected })
	require.NoError(t, err)

	r := NewRunner(scenario.NewRendezvous(scenario.WithLogger(nop), scenario.WithAgents(2)), nil, events, nop, Settings{})
	_, err = r.Reset(context.Background())
	require.NoError(t, err)
	_, err = r.Step(context.Background())
	assert.ErrorIs(t, err, rejected)
}
