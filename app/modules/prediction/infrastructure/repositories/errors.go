package predictiondb

import "errors"

// ErrPredictionNotFound indicates the requested prediction does not exist.
var ErrPredictionNotFound = errors.New("prediction not found")
