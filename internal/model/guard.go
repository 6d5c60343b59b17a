package model

import (
	"fmt"

	"github.com/abelzeko/water-quality/internal/entities"
)

// SafePredict calls reg.Predict and converts a panic inside the model into ErrModelInvocation
func SafePredict(reg Regressor, features entities.EncodedFeatures) (out entities.PredictionVector, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", entities.ErrModelInvocation, r)
		}
	}()
	return reg.Predict(features)
}
