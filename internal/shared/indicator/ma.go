// Package indicator computes moving-average indicators over closing prices.
package indicator

import "errors"

// ErrInvalidPeriod is returned for a non-positive window.
var ErrInvalidPeriod = errors.New("indicator: period must be positive")

// SMA returns the simple moving average series of values over period.
// out[k] is the mean of values[k : k+period], so the result is aligned with
// values[period-1:]. Fewer values than period yields an empty series.
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(values) < period {
		return []float64{}, nil
	}
	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out, nil
}

// EMA returns the exponential moving average with alpha = 2/(span+1), seeded
// with the first value (pandas ewm(span, adjust=False)). The result has the
// same length as values.
func EMA(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, ErrInvalidPeriod
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	alpha := 2 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
