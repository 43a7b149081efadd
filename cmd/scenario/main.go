package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeusync/particles/internal/config"
	"github.com/zeusync/particles/internal/core/episode"
	"github.com/zeusync/particles/internal/core/events/bus"
	"github.com/zeusync/particles/internal/core/observability/log"
	"github.com/zeusync/particles/internal/core/scenario"
	"github.com/zeusync/particles/internal/injector"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scenario",
		Short:        "Smoke-test harness for particle scenarios",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range scenario.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		seed       uint64
		episodes   int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play episodes on a frozen world and log every agent's return",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("episodes") {
				cfg.Episodes = episodes
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML run configuration")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "override the configured seed")
	cmd.Flags().IntVar(&episodes, "episodes", 0, "override the configured episode count")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}

	if app.Log.Enabled(log.LevelDebug) {
		_, err = app.Events.Subscribe(episode.EventStepEvaluated, func(e bus.Event) error {
			res := e.Data().(episode.StepResult)
			app.Log.Debug("step evaluated",
				log.String("episode", res.Episode.String()),
				log.Int("step", res.Step),
				log.Float64s("rewards", res.Rewards),
			)
			return nil
		})
		if err != nil {
			return err
		}
	}

	for i := 0; i < cfg.Episodes; i++ {
		sum, err := app.Runner.Run(ctx, cfg.Steps)
		if err != nil {
			return err
		}
		app.Log.Info("episode returns",
			log.String("episode", sum.Episode.ID.String()),
			log.Float64s("returns", sum.Returns),
		)
	}
	return nil
}
