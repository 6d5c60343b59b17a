// Package model evaluates the trained pollutant regressor loaded from an artifact
package model

import (
	"fmt"

	"github.com/abelzeko/water-quality/internal/entities"
)

const (
	// KindLinear is a multi-output linear regression
	KindLinear = "linear"
	// KindForest is an ensemble of multi-output regression trees averaged together
	KindForest = "forest"
)

// Document is the decoded model artifact
type Document struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Version  string   `json:"version,omitempty" yaml:"version,omitempty"`
	Outputs  []string `json:"outputs" yaml:"outputs"`
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`

	// linear
	Coefficients [][]float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercepts   []float64   `json:"intercepts,omitempty" yaml:"intercepts,omitempty"`

	// forest
	NumFeatures int    `json:"n_features,omitempty" yaml:"n_features,omitempty"`
	Trees       []Tree `json:"trees,omitempty" yaml:"trees,omitempty"`
}

// Tree is a flattened regression tree. Node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Node is either a split (Leaf empty) or a leaf holding one value per output
type Node struct {
	Feature   int       `json:"feature,omitempty" yaml:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Left      int       `json:"left,omitempty" yaml:"left,omitempty"`
	Right     int       `json:"right,omitempty" yaml:"right,omitempty"`
	Leaf      []float64 `json:"leaf,omitempty" yaml:"leaf,omitempty"`
}

// Regressor is the trained model: one feature row in, six pollutant values out
type Regressor interface {
	Predict(features entities.EncodedFeatures) (entities.PredictionVector, error)
	NumFeatures() int
	FeatureNames() []string
}

// Build validates the document and returns the regressor it describes
func Build(doc *Document) (Regressor, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: model artifact is empty", entities.ErrSchemaMismatch)
	}
	if err := checkOutputs(doc.Outputs); err != nil {
		return nil, err
	}

	switch doc.Kind {
	case KindLinear:
		return newLinear(doc)
	case KindForest:
		return newForest(doc)
	default:
		return nil, fmt.Errorf("%w: unsupported model kind %q", entities.ErrSchemaMismatch, doc.Kind)
	}
}

func checkOutputs(outputs []string) error {
	if len(outputs) != len(entities.Pollutants) {
		return fmt.Errorf("%w: model has %d outputs, want %d", entities.ErrSchemaMismatch, len(outputs), len(entities.Pollutants))
	}
	for i, p := range entities.Pollutants {
		if outputs[i] != string(p) {
			return fmt.Errorf("%w: output %d is %q, want %q", entities.ErrSchemaMismatch, i, outputs[i], p)
		}
	}
	return nil
}

// CheckCompatible verifies at startup that the model consumes exactly the schema's columns
func CheckCompatible(reg Regressor, schema entities.FeatureSchema) error {
	if reg.NumFeatures() != schema.Len() {
		return fmt.Errorf("%w: model expects %d features, schema has %d columns", entities.ErrSchemaMismatch, reg.NumFeatures(), schema.Len())
	}

	names := reg.FeatureNames()
	if len(names) == 0 {
		return nil
	}
	for i, col := range schema.Columns() {
		if names[i] != col {
			return fmt.Errorf("%w: model feature %d is %q, schema column is %q", entities.ErrSchemaMismatch, i, names[i], col)
		}
	}
	return nil
}
