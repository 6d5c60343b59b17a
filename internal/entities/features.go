package entities

import (
	"fmt"
	"strings"
)

// FeatureSchema is the ordered list of columns the model was trained on
type FeatureSchema struct {
	columns []string
	index   map[string]int
}

// NewFeatureSchema validates and copies the column list loaded from the schema artifact
func NewFeatureSchema(columns []string) (FeatureSchema, error) {
	if len(columns) == 0 {
		return FeatureSchema{}, fmt.Errorf("%w: schema has no columns", ErrSchemaMismatch)
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if strings.TrimSpace(col) == "" {
			return FeatureSchema{}, fmt.Errorf("%w: blank column name at position %d", ErrSchemaMismatch, i)
		}
		if prev, ok := index[col]; ok {
			return FeatureSchema{}, fmt.Errorf("%w: duplicate column %q at positions %d and %d", ErrSchemaMismatch, col, prev, i)
		}
		index[col] = i
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return FeatureSchema{columns: cols, index: index}, nil
}

// Columns returns a copy of the column names in model order
func (s FeatureSchema) Columns() []string {
	cols := make([]string, len(s.columns))
	copy(cols, s.columns)
	return cols
}

// Len returns the number of columns
func (s FeatureSchema) Len() int {
	return len(s.columns)
}

// Contains reports whether the schema has the named column
func (s FeatureSchema) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// EncodedFeatures is a single row aligned to a FeatureSchema
type EncodedFeatures struct {
	columns []string
	values  []float64
}

// NewEncodedFeatures pairs column names with values. Both slices must have the same length.
func NewEncodedFeatures(columns []string, values []float64) (EncodedFeatures, error) {
	if len(columns) != len(values) {
		return EncodedFeatures{}, fmt.Errorf("%w: %d columns but %d values", ErrSchemaMismatch, len(columns), len(values))
	}
	return EncodedFeatures{columns: columns, values: values}, nil
}

// Columns returns a copy of the column names
func (f EncodedFeatures) Columns() []string {
	cols := make([]string, len(f.columns))
	copy(cols, f.columns)
	return cols
}

// Values returns a copy of the row values in column order
func (f EncodedFeatures) Values() []float64 {
	vals := make([]float64, len(f.values))
	copy(vals, f.values)
	return vals
}

// Len returns the number of columns
func (f EncodedFeatures) Len() int {
	return len(f.columns)
}

// Get returns the value of a named column
func (f EncodedFeatures) Get(name string) (float64, bool) {
	for i, col := range f.columns {
		if col == name {
			return f.values[i], true
		}
	}
	return 0, false
}
