package calculator

import "errors"

// EMA returns the exponentially weighted mean of values for the given span.
// The smoothing factor is 2/(span+1); the recurrence is seeded with the first
// value and carries no bias adjustment, so every index has a value.
func EMA(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
