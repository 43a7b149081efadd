package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/particles/internal/config"
	"github.com/zeusync/particles/internal/core/episode"
	"github.com/zeusync/particles/internal/core/events/bus"
	"github.com/zeusync/particles/internal/core/observability/log"
	"github.com/zeusync/particles/internal/core/scenario"
)

// App bundles everything the smoke harness needs.
type App struct {
	Config *config.Config
	Runner *episode.Runner
	Events bus.EventBus
	Log    log.Log
}

func ProvideLogger(cfg *config.Config) log.Log {
	return log.New(cfg.Level())
}

func ProvideScenario(cfg *config.Config, logger log.Log) (scenario.Scenario, error) {
	opts := append(cfg.ScenarioOptions(), scenario.WithLogger(logger))
	return scenario.New(cfg.Scenario, opts...)
}

func ProvideSettings(cfg *config.Config) episode.Settings {
	return episode.Settings{Seed: cfg.Seed, Workers: cfg.Workers}
}

// ProvideStepper returns a frozen world; physics is supplied by the embedding
// simulator, not by this module.
func ProvideStepper() episode.Stepper {
	return episode.Frozen{}
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

var AppSet = wire.NewSet(
	ProvideLogger,
	ProvideScenario,
	ProvideSettings,
	ProvideStepper,
	ProvideEventBus,
	episode.NewRunner,
	wire.Struct(new(App), "*"),
)
