package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"StockAdvisor/internal/model"
)

const (
	tradingDaysPerYear = 252
)

// Calculate52WeekRange scans the most recent 252 trading days and returns the high and low.
func Calculate52WeekRange(bars []model.PriceBar) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	start := len(bars) - tradingDaysPerYear
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars[start:] {
		high = math.Max(high, b.High)
		low = math.Min(low, b.Low)
	}
	return high, low, nil
}

// Calculate52WeekPosition returns where the current price sits within the 52-week range (0.0~1.0).
func Calculate52WeekPosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Max(0, math.Min(1, pos)), nil
}

// AnnualizedVolatility returns the standard deviation of daily simple returns
// scaled by sqrt(252). Fewer than three closes yields 0.
func AnnualizedVolatility(closes []float64) float64 {
	if len(closes) < 3 {
		return 0
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = closes[i]/closes[i-1] - 1
	}
	if floats.HasNaN(returns) {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear)
}

// Stats computes the descriptive statistics for a validated series.
func Stats(series model.PriceSeries) (model.MarketStats, error) {
	last, ok := series.Last()
	if !ok {
		return model.MarketStats{}, ErrInsufficientData
	}
	high, low, err := Calculate52WeekRange(series.Bars)
	if err != nil {
		return model.MarketStats{}, err
	}
	pos, err := Calculate52WeekPosition(last.Close, high, low)
	if err != nil {
		return model.MarketStats{}, err
	}
	return model.MarketStats{
		High52w:     high,
		Low52w:      low,
		Position52w: pos,
		Volatility:  AnnualizedVolatility(series.Closes()),
	}, nil
}
