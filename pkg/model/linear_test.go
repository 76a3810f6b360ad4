package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendviz/pkg/frame"
)

// Hand-checked simple regression: x = 1..5, y = 2,4,5,4,5 gives
// slope 0.6, intercept 2.2, R2 0.6, sigma^2 0.8 on 3 df.
func smallFit(t *testing.T) *Fitted {
	t.Helper()
	f, err := frame.New(
		frame.NumericCol("x", []float64{1, 2, 3, 4, 5}),
		frame.NumericCol("y", []float64{2, 4, 5, 4, 5}),
	)
	require.NoError(t, err)
	m, err := Fit(f, Spec{Response: "y", Terms: []Term{Numeric("x")}})
	require.NoError(t, err)
	return m
}

func TestFitSimpleRegression(t *testing.T) {
	m := smallFit(t)
	require.Equal(t, []string{"(Intercept)", "x"}, m.Names)
	assert.InDelta(t, 2.2, m.Coef[0], 1e-12)
	assert.InDelta(t, 0.6, m.Coef[1], 1e-12)
	assert.InDelta(t, 0.6, m.R2(), 1e-12)
	assert.InDelta(t, 2.4, m.RSS, 1e-12)
	assert.InDelta(t, math.Sqrt(0.8), m.Sigma(), 1e-12)
	assert.Equal(t, 3, m.DFResidual())

	assert.InDelta(t, 2.8, m.Fitted[0], 1e-12)
	assert.InDelta(t, -0.8, m.Resid[0], 1e-12)
}

func TestFitRecoversKnownCoefficients(t *testing.T) {
	// Exact linear data: y = 3 - 2*a + 0.5*b.
	n := 40
	a := make([]float64, n)
	b := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = float64(i % 7)
		b[i] = float64((i * i) % 11)
		y[i] = 3 - 2*a[i] + 0.5*b[i]
	}
	f, err := frame.New(
		frame.NumericCol("a", a),
		frame.NumericCol("b", b),
		frame.NumericCol("y", y),
	)
	require.NoError(t, err)

	m, err := Fit(f, Spec{Response: "y", Terms: []Term{Numeric("a"), Numeric("b")}})
	require.NoError(t, err)
	assert.InDelta(t, 3, m.Coef[0], 1e-9)
	assert.InDelta(t, -2, m.Coef[1], 1e-9)
	assert.InDelta(t, 0.5, m.Coef[2], 1e-9)
	assert.InDelta(t, 1, m.R2(), 1e-12)
}

func TestFitFactorTerm(t *testing.T) {
	f, err := frame.New(
		frame.StringCol("g", []string{"a", "a", "b", "b", "c", "c", "a", "b"}),
		frame.NumericCol("y", []float64{1, 1, 3, 3, 6, 6, 1, 3}),
	)
	require.NoError(t, err)

	m, err := Fit(f, Spec{Response: "y", Terms: []Term{Factor("g")}})
	require.NoError(t, err)
	require.Equal(t, []string{"(Intercept)", "gb", "gc"}, m.Names)
	assert.InDelta(t, 1, m.Coef[0], 1e-12)
	assert.InDelta(t, 2, m.Coef[1], 1e-12)
	assert.InDelta(t, 5, m.Coef[2], 1e-12)
	assert.Equal(t, []string{"a", "b", "c"}, m.Levels("g"))
}

func TestFitNumericFactorSortsNumerically(t *testing.T) {
	// Months out of order and reaching 10+ would sort wrong lexically.
	month := []float64{10, 1, 2, 10, 1, 2, 10, 1, 2}
	y := []float64{5, 1, 2, 5, 1, 2, 5, 1, 2}
	f, err := frame.New(
		frame.NumericCol("month", month),
		frame.NumericCol("y", y),
	)
	require.NoError(t, err)

	m, err := Fit(f, Spec{Response: "y", Terms: []Term{Factor("month")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "10"}, m.Levels("month"))
	require.Equal(t, []string{"(Intercept)", "month2", "month10"}, m.Names)
	assert.InDelta(t, 1, m.Coef[0], 1e-12)
	assert.InDelta(t, 4, m.Coef[2], 1e-12)
}

func TestFitDropsMissingRows(t *testing.T) {
	nan := math.NaN()
	f, err := frame.New(
		frame.NumericCol("x", []float64{1, 2, nan, 4, 5, 6}),
		frame.NumericCol("y", []float64{2, 4, 6, nan, 10, 12}),
	)
	require.NoError(t, err)

	m, err := Fit(f, Spec{Response: "y", Terms: []Term{Numeric("x")}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4, 5}, m.Rows)
	assert.Equal(t, 4, m.N)
	assert.InDelta(t, 2, m.Coef[1], 1e-9)

	require.NoError(t, m.Augment(f, "m"))
	resid, err := f.Numeric("m.resid")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(resid[2]))
	assert.True(t, math.IsNaN(resid[3]))
	assert.InDelta(t, 0, resid[0], 1e-9)
}

func TestFitErrors(t *testing.T) {
	f, err := frame.New(
		frame.NumericCol("x", []float64{1, 2}),
		frame.NumericCol("y", []float64{1, 2}),
	)
	require.NoError(t, err)

	_, err = Fit(f, Spec{Response: "y"})
	assert.Error(t, err, "no terms")

	_, err = Fit(f, Spec{Response: "y", Terms: []Term{Numeric("x")}})
	assert.Error(t, err, "too few rows for two coefficients")

	_, err = Fit(f, Spec{Response: "nope", Terms: []Term{Numeric("x")}})
	assert.Error(t, err)
}

func TestFitAllRowsMissing(t *testing.T) {
	nan := math.NaN()
	f, err := frame.New(
		frame.NumericCol("x", []float64{nan, nan, nan}),
		frame.NumericCol("y", []float64{1, 2, 3}),
	)
	require.NoError(t, err)

	_, err = Fit(f, Spec{Response: "y", Terms: []Term{Numeric("x")}})
	require.ErrorContains(t, err, "no usable rows")

	// Same when the response side is the all-missing one, with a factor
	// term in play.
	f, err = frame.New(
		frame.StringCol("g", []string{"a", "b", "a"}),
		frame.NumericCol("y", []float64{nan, nan, nan}),
	)
	require.NoError(t, err)
	_, err = Fit(f, Spec{Response: "y", Terms: []Term{Factor("g")}})
	require.ErrorContains(t, err, "no usable rows")
}

func TestFitFactorLevelsComeFromUsableRows(t *testing.T) {
	// Level c only appears on rows whose response is missing; it must not
	// become an all-zero dummy column.
	nan := math.NaN()
	f, err := frame.New(
		frame.StringCol("g", []string{"a", "a", "b", "b", "c", "c", "a", "b"}),
		frame.NumericCol("y", []float64{1, 2, 3, 4, nan, nan, 1.5, 3.5}),
	)
	require.NoError(t, err)

	m, err := Fit(f, Spec{Response: "y", Terms: []Term{Factor("g")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Levels("g"))
	require.Equal(t, []string{"(Intercept)", "gb"}, m.Names)
	assert.InDelta(t, 1.5, m.Coef[0], 1e-12)
	assert.InDelta(t, 2, m.Coef[1], 1e-12)

	// The level the fit never used is unseen at predict time.
	nf, err := frame.New(frame.StringCol("g", []string{"c"}))
	require.NoError(t, err)
	_, err = m.Predict(nf)
	assert.ErrorContains(t, err, "unseen level")
}

func TestPredictAllRowsMissing(t *testing.T) {
	m := smallFit(t)
	nan := math.NaN()
	nf, err := frame.New(frame.NumericCol("x", []float64{nan, nan}))
	require.NoError(t, err)

	got, err := m.Predict(nf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
}

func TestFitCollinearDesignFails(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	x2 := make([]float64, len(x))
	y := make([]float64, len(x))
	for i, v := range x {
		x2[i] = 2 * v
		y[i] = 1 + v
	}
	f, err := frame.New(
		frame.NumericCol("x", x),
		frame.NumericCol("x2", x2),
		frame.NumericCol("y", y),
	)
	require.NoError(t, err)

	_, err = Fit(f, Spec{Response: "y", Terms: []Term{Numeric("x"), Numeric("x2")}})
	assert.Error(t, err)
}

func TestPredict(t *testing.T) {
	m := smallFit(t)

	nf, err := frame.New(frame.NumericCol("x", []float64{0, 10, math.NaN()}))
	require.NoError(t, err)
	got, err := m.Predict(nf)
	require.NoError(t, err)
	assert.InDelta(t, 2.2, got[0], 1e-12)
	assert.InDelta(t, 8.2, got[1], 1e-12)
	assert.True(t, math.IsNaN(got[2]))
}

func TestPredictUnseenFactorLevel(t *testing.T) {
	f, err := frame.New(
		frame.StringCol("g", []string{"a", "a", "b", "b", "a", "b"}),
		frame.NumericCol("y", []float64{1, 1.5, 3, 3.5, 1.2, 3.2}),
	)
	require.NoError(t, err)
	m, err := Fit(f, Spec{Response: "y", Terms: []Term{Factor("g")}})
	require.NoError(t, err)

	nf, err := frame.New(frame.StringCol("g", []string{"a", "zz"}))
	require.NoError(t, err)
	_, err = m.Predict(nf)
	assert.ErrorContains(t, err, "unseen level")
}
