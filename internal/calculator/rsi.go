package calculator

import (
	"errors"
	"math"

	"github.com/guregu/null/v6"
	"github.com/markcheno/go-talib"
)

// RSI computes the Relative Strength Index from simple trailing means of gains
// and losses over period. The first value is available at index period, once
// period price changes exist. A window with no losses yields 100.
func RSI(closes []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]null.Float, len(closes))
	if len(closes) <= period {
		return out, nil
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := talib.Sma(gains, period)
	avgLoss := talib.Sma(losses, period)
	for i := period; i < len(closes); i++ {
		out[i] = null.FloatFrom(rsiValue(avgGain[i], avgLoss[i]))
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	// Running sums can leave a tiny residue instead of an exact zero.
	if avgLoss <= 1e-12 {
		return 100.0
	}
	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	return math.Max(0, math.Min(100, rsi))
}
