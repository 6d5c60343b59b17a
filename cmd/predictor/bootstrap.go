package main

import (
	"fmt"

	"github.com/abelzeko/water-quality/internal/metrics"
	"github.com/abelzeko/water-quality/internal/repository"
	"github.com/abelzeko/water-quality/internal/usecases"
)

// app holds the components every subcommand shares
type app struct {
	useCase *usecases.PredictionUseCase
	metrics *metrics.Metrics
	sources []string
}

// bootstrap loads both artifacts once. Any artifact problem is fatal here.
func bootstrap() (*app, error) {
	repo, err := repository.Open(cfg.Artifacts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifacts: %w", err)
	}
	defer repo.Close()

	schema, err := repo.LoadSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to load model columns: %w", err)
	}
	reg, err := repo.LoadModel()
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	m := metrics.New()
	useCase, err := usecases.NewPredictionUseCase(schema, reg, m, logger)
	if err != nil {
		return nil, err
	}

	return &app{useCase: useCase, metrics: m, sources: repo.Sources()}, nil
}
