package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/abelzeko/water-quality/internal/entities"
)

// Linear computes y = W·x + b for all six outputs at once
type Linear struct {
	weights  *mat.Dense
	bias     *mat.VecDense
	features []string
}

func newLinear(doc *Document) (*Linear, error) {
	rows := len(entities.Pollutants)
	if len(doc.Coefficients) != rows {
		return nil, fmt.Errorf("%w: linear model has %d coefficient rows, want %d", entities.ErrSchemaMismatch, len(doc.Coefficients), rows)
	}
	if len(doc.Intercepts) != rows {
		return nil, fmt.Errorf("%w: linear model has %d intercepts, want %d", entities.ErrSchemaMismatch, len(doc.Intercepts), rows)
	}

	cols := len(doc.Coefficients[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: linear model has no features", entities.ErrSchemaMismatch)
	}
	if len(doc.Features) > 0 && len(doc.Features) != cols {
		return nil, fmt.Errorf("%w: linear model lists %d features but has %d coefficients per output", entities.ErrSchemaMismatch, len(doc.Features), cols)
	}

	data := make([]float64, 0, rows*cols)
	for i, row := range doc.Coefficients {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: coefficient row %d has %d values, want %d", entities.ErrSchemaMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}

	return &Linear{
		weights:  mat.NewDense(rows, cols, data),
		bias:     mat.NewVecDense(rows, append([]float64(nil), doc.Intercepts...)),
		features: append([]string(nil), doc.Features...),
	}, nil
}

// NumFeatures returns the expected row width
func (l *Linear) NumFeatures() int {
	_, c := l.weights.Dims()
	return c
}

// FeatureNames returns the training columns if the artifact listed them
func (l *Linear) FeatureNames() []string {
	return append([]string(nil), l.features...)
}

// Predict evaluates the model on one aligned row
func (l *Linear) Predict(features entities.EncodedFeatures) (entities.PredictionVector, error) {
	var out entities.PredictionVector
	if features.Len() != l.NumFeatures() {
		return out, fmt.Errorf("%w: got %d features, want %d", entities.ErrModelInvocation, features.Len(), l.NumFeatures())
	}

	x := mat.NewVecDense(features.Len(), features.Values())
	var y mat.VecDense
	y.MulVec(l.weights, x)
	y.AddVec(&y, l.bias)

	for i := range out {
		out[i] = y.AtVec(i)
	}
	return out, checkFinite(out)
}

func checkFinite(out entities.PredictionVector) error {
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s prediction is not finite", entities.ErrModelInvocation, entities.Pollutants[i])
		}
	}
	return nil
}
