package collector

import "fmt"

// periodBars maps supported lookback periods to an approximate trading-day count.
var periodBars = map[string]int{
	"1mo": 21,
	"3mo": 63,
	"6mo": 126,
	"1y":  252,
	"2y":  504,
	"5y":  1260,
}

// PeriodBars returns the approximate number of daily bars in period.
func PeriodBars(period string) (int, error) {
	n, ok := periodBars[period]
	if !ok {
		return 0, fmt.Errorf("unsupported period %q (want 1mo, 3mo, 6mo, 1y, 2y or 5y)", period)
	}
	return n, nil
}
