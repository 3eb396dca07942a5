package calculator

import (
	"errors"

	"github.com/guregu/null/v6"
	"github.com/markcheno/go-talib"
)

// RollingSMA returns the trailing simple mean of values over period at every index.
// Indexes before the window fills are null.
func RollingSMA(values []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]null.Float, len(values))
	if len(values) < period {
		return out, nil
	}
	sma := talib.Sma(values, period)
	for i := period - 1; i < len(values); i++ {
		out[i] = null.FloatFrom(sma[i])
	}
	return out, nil
}
