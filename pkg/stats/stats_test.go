package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var nan = math.NaN()

func TestMeanSkipsNaN(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, nan, 3}))
	assert.True(t, math.IsNaN(Mean([]float64{nan, nan})))
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestCountAndSum(t *testing.T) {
	x := []float64{1, nan, 2, nan, 3}
	assert.Equal(t, 3, Count(x))
	assert.Equal(t, 6.0, Sum(x))
}

func TestVarianceIsSampleVariance(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 32.0/7.0, Variance(x), 1e-12)
	assert.True(t, math.IsNaN(Variance([]float64{1})))
}

func TestQuantileInterpolates(t *testing.T) {
	x := []float64{nan, 1, 2, 3, 4}
	assert.Equal(t, 1.0, Quantile(x, 0))
	assert.Equal(t, 4.0, Quantile(x, 1))
	assert.Equal(t, 2.5, Median(x))
	assert.InDelta(t, 1.75, Quantile(x, 0.25), 1e-12)
}

func TestMinMax(t *testing.T) {
	min, max := MinMax([]float64{nan, 3, -1, 2})
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 3.0, max)

	min, max = MinMax([]float64{nan})
	assert.True(t, math.IsNaN(min))
	assert.True(t, math.IsNaN(max))
}

func TestCorrelationPairwiseComplete(t *testing.T) {
	x := []float64{1, 2, 3, 4, nan}
	y := []float64{2, 4, 6, 8, 1}
	assert.InDelta(t, 1.0, Correlation(x, y), 1e-12)

	assert.True(t, math.IsNaN(Correlation([]float64{1, 2}, []float64{1})))
}

func TestWinsorize(t *testing.T) {
	x := []float64{1, 2, 3, 4, 100}
	got := Winsorize(x, 0, 0.75)
	_, max := MinMax(got)
	assert.Equal(t, 4.0, max)
	assert.Equal(t, 1.0, got[0])
}

func TestTrimAbove(t *testing.T) {
	x := []float64{1, 2, 3, 4, nan}
	keep := TrimAbove(x, 0.5)
	assert.Equal(t, []bool{true, true, false, false, false}, keep)
}
