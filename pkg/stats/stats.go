// Package stats provides descriptive statistics over columns that may
// carry NaN for missing values. Every function skips NaN cells; the
// numeric core is delegated to gonum/stat.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Drop returns x without its NaN entries. The input is not modified.
func Drop(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Count returns the number of non-NaN entries.
func Count(x []float64) int {
	n := 0
	for _, v := range x {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Sum returns the sum of the non-NaN entries.
func Sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		if !math.IsNaN(v) {
			s += v
		}
	}
	return s
}

// Mean computes the average of the non-NaN entries.
func Mean(x []float64) float64 {
	xs := Drop(x)
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Variance computes the unbiased sample variance of the non-NaN entries.
func Variance(x []float64) float64 {
	xs := Drop(x)
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Variance(xs, nil)
}

// Std computes the sample standard deviation of the non-NaN entries.
func Std(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// MinMax returns the smallest and largest non-NaN entries.
func MinMax(x []float64) (float64, float64) {
	min, max := math.NaN(), math.NaN()
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return min, max
}

// Quantile returns the p-th quantile (0 <= p <= 1) of the non-NaN entries,
// with linear interpolation between order statistics.
func Quantile(x []float64, p float64) float64 {
	xs := Drop(x)
	if len(xs) == 0 {
		return math.NaN()
	}
	sort.Float64s(xs)
	if p <= 0 {
		return xs[0]
	}
	if p >= 1 {
		return xs[len(xs)-1]
	}
	rank := p * float64(len(xs)-1)
	lo := int(rank)
	w := rank - float64(lo)
	if lo+1 >= len(xs) {
		return xs[lo]
	}
	return xs[lo]*(1-w) + xs[lo+1]*w
}

// Median returns the 0.5 quantile of the non-NaN entries.
func Median(x []float64) float64 {
	return Quantile(x, 0.5)
}

// Correlation computes the Pearson correlation over rows where both
// entries are non-NaN.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) {
		return math.NaN()
	}
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
