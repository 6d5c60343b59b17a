package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzeko/water-quality/internal/entities"
)

var outputs = []string{"O2", "NO3", "NO2", "SO4", "PO4", "CL"}

func row(t *testing.T, cols []string, vals ...float64) entities.EncodedFeatures {
	t.Helper()
	f, err := entities.NewEncodedFeatures(cols, vals)
	require.NoError(t, err)
	return f
}

func linearDoc() *Document {
	return &Document{
		Kind:     KindLinear,
		Outputs:  outputs,
		Features: []string{"year", "id_1", "id_2"},
		Coefficients: [][]float64{
			{0.001, 1, -1},
			{0, 2, 0},
			{0, 0, 0.5},
			{0.1, 0, 0},
			{0, 0.01, 0},
			{0, 0, 10},
		},
		Intercepts: []float64{5, 1, 0, 0, 0.05, 100},
	}
}

func TestLinear_Predict(t *testing.T) {
	reg, err := Build(linearDoc())
	require.NoError(t, err)

	got, err := reg.Predict(row(t, []string{"year", "id_1", "id_2"}, 2000, 1, 0))
	require.NoError(t, err)

	want := entities.PredictionVector{8, 3, 0, 200, 0.06, 100}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "output %s", outputs[i])
	}
}

func TestLinear_WrongArity(t *testing.T) {
	reg, err := Build(linearDoc())
	require.NoError(t, err)

	_, err = reg.Predict(row(t, []string{"year", "id_1"}, 2000, 1))
	assert.ErrorIs(t, err, entities.ErrModelInvocation)
}

func TestLinear_NonFinite(t *testing.T) {
	reg, err := Build(linearDoc())
	require.NoError(t, err)

	_, err = reg.Predict(row(t, []string{"year", "id_1", "id_2"}, math.Inf(1), 0, 0))
	assert.ErrorIs(t, err, entities.ErrModelInvocation)
}

func TestBuild_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
	}{
		{"unknown kind", func(d *Document) { d.Kind = "svm" }},
		{"wrong output order", func(d *Document) { d.Outputs = []string{"NO3", "O2", "NO2", "SO4", "PO4", "CL"} }},
		{"too few outputs", func(d *Document) { d.Outputs = outputs[:5] }},
		{"missing coefficient row", func(d *Document) { d.Coefficients = d.Coefficients[:5] }},
		{"ragged coefficients", func(d *Document) { d.Coefficients[3] = []float64{1} }},
		{"missing intercept", func(d *Document) { d.Intercepts = d.Intercepts[:2] }},
		{"feature names mismatch", func(d *Document) { d.Features = []string{"year"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := linearDoc()
			tt.mutate(doc)
			_, err := Build(doc)
			assert.ErrorIs(t, err, entities.ErrSchemaMismatch)
		})
	}

	_, err := Build(nil)
	assert.ErrorIs(t, err, entities.ErrSchemaMismatch)
}

func forestDoc() *Document {
	leaf := func(v float64) Node {
		return Node{Leaf: []float64{v, v, v, v, v, v}}
	}
	return &Document{
		Kind:        KindForest,
		Outputs:     outputs,
		NumFeatures: 3,
		Trees: []Tree{
			{Nodes: []Node{
				{Feature: 1, Threshold: 0.5, Left: 1, Right: 2},
				leaf(2),
				leaf(4),
			}},
			{Nodes: []Node{
				{Feature: 0, Threshold: 2010, Left: 1, Right: 2},
				leaf(10),
				{Feature: 2, Threshold: 0.5, Left: 3, Right: 4},
				leaf(20),
				leaf(30),
			}},
		},
	}
}

func TestForest_Predict(t *testing.T) {
	reg, err := Build(forestDoc())
	require.NoError(t, err)
	assert.Equal(t, 3, reg.NumFeatures())

	cols := []string{"year", "id_1", "id_2"}
	tests := []struct {
		vals []float64
		want float64
	}{
		{[]float64{2005, 1, 0}, (4 + 10) / 2.0},
		{[]float64{2022, 0, 0}, (2 + 20) / 2.0},
		{[]float64{2022, 0, 1}, (2 + 30) / 2.0},
	}
	for _, tt := range tests {
		got, err := reg.Predict(row(t, cols, tt.vals...))
		require.NoError(t, err)
		for i := range got {
			assert.InDelta(t, tt.want, got[i], 1e-9)
		}
	}
}

func TestForest_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
	}{
		{"no trees", func(d *Document) { d.Trees = nil }},
		{"no feature count", func(d *Document) { d.NumFeatures = 0 }},
		{"feature out of range", func(d *Document) { d.Trees[0].Nodes[0].Feature = 3 }},
		{"backward child", func(d *Document) { d.Trees[1].Nodes[2].Left = 1 }},
		{"short leaf", func(d *Document) { d.Trees[0].Nodes[1].Leaf = []float64{1} }},
		{"empty tree", func(d *Document) { d.Trees[0].Nodes = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := forestDoc()
			tt.mutate(doc)
			_, err := Build(doc)
			assert.ErrorIs(t, err, entities.ErrSchemaMismatch)
		})
	}
}

func TestCheckCompatible(t *testing.T) {
	reg, err := Build(linearDoc())
	require.NoError(t, err)

	ok, err := entities.NewFeatureSchema([]string{"year", "id_1", "id_2"})
	require.NoError(t, err)
	assert.NoError(t, CheckCompatible(reg, ok))

	short, err := entities.NewFeatureSchema([]string{"year", "id_1"})
	require.NoError(t, err)
	assert.ErrorIs(t, CheckCompatible(reg, short), entities.ErrSchemaMismatch)

	reordered, err := entities.NewFeatureSchema([]string{"id_1", "year", "id_2"})
	require.NoError(t, err)
	assert.ErrorIs(t, CheckCompatible(reg, reordered), entities.ErrSchemaMismatch)
}

type panickingRegressor struct{}

func (panickingRegressor) Predict(entities.EncodedFeatures) (entities.PredictionVector, error) {
	panic("index out of range")
}
func (panickingRegressor) NumFeatures() int        { return 1 }
func (panickingRegressor) FeatureNames() []string { return nil }

func TestSafePredict_RecoversPanic(t *testing.T) {
	_, err := SafePredict(panickingRegressor{}, entities.EncodedFeatures{})
	assert.ErrorIs(t, err, entities.ErrModelInvocation)
	assert.Contains(t, err.Error(), "index out of range")
}
