package entities

import "errors"

var (
	// ErrEmptyStationID is returned when a prediction is requested without a station id
	ErrEmptyStationID = errors.New("station id is empty")

	// ErrSchemaMismatch marks an empty or malformed artifact. It is fatal at startup.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrModelInvocation wraps every failure of the model's predict call
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrUnknownPollutant is returned by the classifier for labels outside Pollutants
	ErrUnknownPollutant = errors.New("unknown pollutant")

	// ErrInvalidYear is returned by the presentation layer for years outside the allowed range
	ErrInvalidYear = errors.New("year out of range")
)
