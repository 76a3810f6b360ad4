package model

import "math"

// Regression metrics. Pairs where either value is NaN are skipped, so
// these work directly on augmented columns with dropped rows.

func MSE(yTrue, yPred []float64) float64 {
	s, n := 0.0, 0
	for i := range yTrue {
		if math.IsNaN(yTrue[i]) || math.IsNaN(yPred[i]) {
			continue
		}
		d := yPred[i] - yTrue[i]
		s += d * d
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return s / float64(n)
}

func MAE(yTrue, yPred []float64) float64 {
	s, n := 0.0, 0
	for i := range yTrue {
		if math.IsNaN(yTrue[i]) || math.IsNaN(yPred[i]) {
			continue
		}
		s += math.Abs(yPred[i] - yTrue[i])
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return s / float64(n)
}

func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

func R2(yTrue, yPred []float64) float64 {
	mean, n := 0.0, 0
	for i := range yTrue {
		if math.IsNaN(yTrue[i]) || math.IsNaN(yPred[i]) {
			continue
		}
		mean += yTrue[i]
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	mean /= float64(n)
	ssTot, ssRes := 0.0, 0.0
	for i := range yTrue {
		if math.IsNaN(yTrue[i]) || math.IsNaN(yPred[i]) {
			continue
		}
		d := yTrue[i] - mean
		ssTot += d * d
		r := yTrue[i] - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
