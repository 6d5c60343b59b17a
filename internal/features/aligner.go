// Package features turns a raw query into the feature row the model was trained on
package features

import (
	"fmt"
	"strings"

	"github.com/abelzeko/water-quality/internal/entities"
)

const (
	// YearColumn is the numeric year feature
	YearColumn = "year"
	// StationPrefix prefixes the one-hot station indicator columns
	StationPrefix = "id_"
)

// StationColumn returns the indicator column name for a station id
func StationColumn(stationID string) string {
	return StationPrefix + stationID
}

// Encode builds the unaligned record for a single query: the year and exactly one
// station indicator. A lone row can only ever produce one indicator column.
func Encode(query entities.RawQuery) map[string]float64 {
	record := make(map[string]float64, 2)
	record[YearColumn] = float64(query.Year)
	record[StationColumn(query.StationID)] = 1
	return record
}

// Project aligns a record to the schema: missing columns are zero, unknown columns are dropped
func Project(record map[string]float64, schema entities.FeatureSchema) (entities.EncodedFeatures, error) {
	if schema.Len() == 0 {
		return entities.EncodedFeatures{}, fmt.Errorf("%w: schema has no columns", entities.ErrSchemaMismatch)
	}

	columns := schema.Columns()
	values := make([]float64, len(columns))
	for i, col := range columns {
		values[i] = record[col]
	}
	return entities.NewEncodedFeatures(columns, values)
}

// Align encodes the query and projects it onto the schema.
// The caller must reject blank station ids before calling Align.
func Align(query entities.RawQuery, schema entities.FeatureSchema) (entities.EncodedFeatures, error) {
	return Project(Encode(query), schema)
}

// KnownStations lists the station ids that have an indicator column in the schema
func KnownStations(schema entities.FeatureSchema) []string {
	var stations []string
	for _, col := range schema.Columns() {
		if id, ok := strings.CutPrefix(col, StationPrefix); ok && id != "" {
			stations = append(stations, id)
		}
	}
	return stations
}
