package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abelzeko/water-quality/internal/api/web"
	"github.com/abelzeko/water-quality/internal/integration"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the predictor page and JSON API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap()
		if err != nil {
			return err
		}

		stopWatcher, err := startWatcher(a)
		if err != nil {
			return err
		}
		defer stopWatcher()

		srv, err := web.NewServer(cfg.Server, cfg.Input, a.useCase, a.metrics, logger)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

// startWatcher schedules the artifact check unless it is disabled
func startWatcher(a *app) (func(), error) {
	if cfg.Artifacts.CheckSchedule == "" {
		return func() {}, nil
	}

	watcher, err := integration.NewArtifactWatcher(a.sources, a.metrics, logger)
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(cfg.Artifacts.CheckSchedule); err != nil {
		return nil, err
	}
	return watcher.Stop, nil
}
