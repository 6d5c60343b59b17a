// Package usecases contains the application's business logic
package usecases

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/features"
	"github.com/abelzeko/water-quality/internal/metrics"
	"github.com/abelzeko/water-quality/internal/model"
	"github.com/abelzeko/water-quality/internal/verdict"
)

// PredictionUseCase runs align, predict and classify for one query.
// The schema and model are loaded once and only read afterwards.
type PredictionUseCase struct {
	schema  entities.FeatureSchema
	model   model.Regressor
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// NewPredictionUseCase checks that the model and schema agree and wires the use case
func NewPredictionUseCase(schema entities.FeatureSchema, reg model.Regressor, m *metrics.Metrics, logger *zap.SugaredLogger) (*PredictionUseCase, error) {
	if schema.Len() == 0 {
		return nil, fmt.Errorf("%w: schema has no columns", entities.ErrSchemaMismatch)
	}
	if err := model.CheckCompatible(reg, schema); err != nil {
		return nil, err
	}

	return &PredictionUseCase{
		schema:  schema,
		model:   reg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Schema returns the feature schema the use case aligns against
func (uc *PredictionUseCase) Schema() entities.FeatureSchema {
	return uc.schema
}

// KnownStations lists the station ids the model was trained on
func (uc *PredictionUseCase) KnownStations() []string {
	return features.KnownStations(uc.schema)
}

// Predict validates the query and runs the pipeline.
// A blank station id returns ErrEmptyStationID without touching the model.
func (uc *PredictionUseCase) Predict(query entities.RawQuery) (*entities.Prediction, error) {
	start := uc.now()
	id := uuid.New()

	query.StationID = strings.TrimSpace(query.StationID)
	if query.StationID == "" {
		uc.metrics.PredictionsFailed.WithLabelValues(metrics.ReasonEmptyStation).Inc()
		return nil, entities.ErrEmptyStationID
	}

	uc.logger.Infof("Prediction %s: station '%s', year %d", id, query.StationID, query.Year)
	if !uc.schema.Contains(features.StationColumn(query.StationID)) {
		uc.metrics.UnknownStations.Inc()
		uc.logger.Warnf("Prediction %s: station '%s' was not seen during training, all station indicators are zero", id, query.StationID)
	}

	encoded, err := features.Align(query, uc.schema)
	if err != nil {
		uc.metrics.PredictionsFailed.WithLabelValues(metrics.ReasonAlignment).Inc()
		return nil, fmt.Errorf("failed to align features: %w", err)
	}

	values, err := model.SafePredict(uc.model, encoded)
	if err != nil {
		uc.metrics.PredictionsFailed.WithLabelValues(metrics.ReasonModel).Inc()
		uc.logger.Errorf("Prediction %s failed: %v", id, err)
		return nil, err
	}

	verdicts := verdict.ClassifyAll(values)
	for _, v := range verdicts {
		if !v.Healthy {
			uc.metrics.UnhealthyVerdicts.WithLabelValues(string(v.Pollutant)).Inc()
		}
	}

	uc.metrics.PredictionsServed.Inc()
	uc.metrics.PredictionDuration.Observe(uc.now().Sub(start).Seconds())

	return &entities.Prediction{
		ID:        id,
		Query:     query,
		Features:  encoded,
		Values:    values,
		Verdicts:  verdicts,
		CreatedAt: start.UTC(),
	}, nil
}

// UserMessage turns a pipeline error into text that is safe to show to a user
func UserMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrEmptyStationID):
		return "Please enter the station ID"
	case errors.Is(err, entities.ErrInvalidYear):
		return "Please enter a year within the supported range."
	case errors.Is(err, entities.ErrModelInvocation):
		return "The model could not produce a prediction for this input. Please try again later."
	default:
		return "Something went wrong while predicting. Please try again later."
	}
}

// Subheader renders the title line above the per-pollutant results
func Subheader(query entities.RawQuery) string {
	return fmt.Sprintf("Predicted pollutant levels for the station '%s' in %d:", query.StationID, query.Year)
}

// FormatPrediction formats a prediction for plain-text sinks
func (uc *PredictionUseCase) FormatPrediction(p *entities.Prediction) string {
	var result strings.Builder
	result.WriteString(Subheader(p.Query))
	result.WriteString("\n\n")

	for _, v := range p.Verdicts {
		result.WriteString(verdict.Header(v))
		result.WriteString("\n")
		result.WriteString(v.Message)
		result.WriteString("\n\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// IdealProportions returns the static reference chart data
func (uc *PredictionUseCase) IdealProportions() []entities.Proportion {
	return entities.IdealProportions()
}

// FormatProportions renders the reference chart as text bars, one per pollutant
func (uc *PredictionUseCase) FormatProportions() string {
	proportions := entities.IdealProportions()
	var total float64
	for _, p := range proportions {
		total += p.Share
	}

	var result strings.Builder
	result.WriteString("Ideal Pollutant Proportions for Healthy Water\n\n")
	for _, p := range proportions {
		pct := p.Share / total * 100
		result.WriteString(fmt.Sprintf("%-4s %s %.1f%%\n", p.Pollutant, strings.Repeat("█", int(pct/2.5+0.5)), pct))
	}
	return strings.TrimRight(result.String(), "\n")
}
