package viz

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestScatterWithFit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fit.png")

	x := []float64{1, 2, 3, 4, math.NaN()}
	y := []float64{2, 4, 5, 4, 9}
	err := ScatterWithFit(x, y, []float64{1, 4}, []float64{2.8, 4.6},
		Labels{Title: "fit", X: "x", Y: "y"}, path)
	require.NoError(t, err)
	requireFile(t, path)
}

func TestScatterWithFitRejectsEmpty(t *testing.T) {
	nan := math.NaN()
	err := ScatterWithFit([]float64{nan}, []float64{nan}, nil, nil, Labels{}, "unused.png")
	assert.Error(t, err)
}

func TestResiduals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resid.png")
	err := Residuals(
		[]float64{1, 2, 3, 4},
		[]float64{0.1, -0.2, 0.05, math.NaN()},
		Labels{Title: "residuals", X: "x", Y: "resid"}, path)
	require.NoError(t, err)
	requireFile(t, path)
}

func TestGroupedSeries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series.png")
	err := GroupedSeries([]Series{
		{Name: "a", X: []float64{1, 2, 3}, Y: []float64{1, 2, 3}},
		{Name: "b", X: []float64{1, 2, 3}, Y: []float64{3, 2, 1}},
		{Name: "empty", X: []float64{math.NaN()}, Y: []float64{math.NaN()}},
	}, Labels{Title: "series"}, path)
	require.NoError(t, err)
	requireFile(t, path)

	assert.Error(t, GroupedSeries(nil, Labels{}, path))
}

func TestHistogram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hist.png")
	vals := []float64{-1, -0.5, 0, 0, 0.2, 0.5, 1, math.NaN()}
	require.NoError(t, Histogram(vals, 5, Labels{Title: "hist"}, path))
	requireFile(t, path)
}
