package stats

import "math"

// Winsorize clips the non-NaN entries of x to the given lower and upper
// quantiles (0 <= lower < upper <= 1) and returns a new slice. NaN entries
// pass through unchanged.
func Winsorize(x []float64, lower, upper float64) []float64 {
	lo := Quantile(x, lower)
	hi := Quantile(x, upper)
	out := make([]float64, len(x))
	for i, v := range x {
		switch {
		case math.IsNaN(v):
			out[i] = v
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out
}

// TrimAbove reports, for each entry, whether it is at or below the given
// upper quantile of x. NaN entries report false. Useful as a row filter
// before fitting, when a long tail would dominate the trend.
func TrimAbove(x []float64, upper float64) []bool {
	hi := Quantile(x, upper)
	out := make([]bool, len(x))
	for i, v := range x {
		out[i] = !math.IsNaN(v) && v <= hi
	}
	return out
}
