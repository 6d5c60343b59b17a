// Package entities contains the core domain objects for the water-quality predictor
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Pollutant is the label of one of the six predicted water-quality indicators
type Pollutant string

const (
	O2  Pollutant = "O2"
	NO3 Pollutant = "NO3"
	NO2 Pollutant = "NO2"
	SO4 Pollutant = "SO4"
	PO4 Pollutant = "PO4"
	CL  Pollutant = "CL"
)

// Pollutants is the fixed output order of every prediction
var Pollutants = [6]Pollutant{O2, NO3, NO2, SO4, PO4, CL}

// RawQuery is a single user submission
type RawQuery struct {
	Year      int    `json:"year"`
	StationID string `json:"station_id"`
}

// PredictionVector holds one predicted value per pollutant, positionally aligned to Pollutants
type PredictionVector [6]float64

// Value returns the predicted value for a pollutant
func (v PredictionVector) Value(p Pollutant) (float64, bool) {
	for i, label := range Pollutants {
		if label == p {
			return v[i], true
		}
	}
	return 0, false
}

// VerdictEntry is the classifier output for one pollutant
type VerdictEntry struct {
	Pollutant Pollutant `json:"pollutant"`
	Value     float64   `json:"value"`
	Healthy   bool      `json:"healthy"`
	Message   string    `json:"message"`
}

// Prediction is the result of one pipeline run. It is never persisted.
type Prediction struct {
	ID        uuid.UUID        `json:"id"`
	Query     RawQuery         `json:"query"`
	Features  EncodedFeatures  `json:"-"`
	Values    PredictionVector `json:"values"`
	Verdicts  []VerdictEntry   `json:"verdicts"`
	CreatedAt time.Time        `json:"created_at"`
}

// Proportion is one slice of the reference chart
type Proportion struct {
	Pollutant Pollutant `json:"pollutant"`
	Share     float64   `json:"share"`
	Color     string    `json:"color"`
}

// IdealProportions returns the static "healthy water" reference chart data.
// It is illustrative only and unrelated to any prediction.
func IdealProportions() []Proportion {
	return []Proportion{
		{Pollutant: O2, Share: 40, Color: "#66c2a5"},
		{Pollutant: NO3, Share: 15, Color: "#fc8d62"},
		{Pollutant: NO2, Share: 5, Color: "#8da0cb"},
		{Pollutant: SO4, Share: 15, Color: "#e78ac3"},
		{Pollutant: PO4, Share: 5, Color: "#a6d854"},
		{Pollutant: CL, Share: 20, Color: "#ffd92f"},
	}
}
