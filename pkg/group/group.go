// Package group runs per-group computations over a frame partition:
// NaN-aware summary aggregates and one regression model per group.
package group

import (
	"math"
	"runtime"
	"sync"

	"trendviz/pkg/frame"
	"trendviz/pkg/model"
	"trendviz/pkg/stats"
)

// Agg is one named aggregate over a numeric column.
type Agg struct {
	Col string
	As  string
	Fn  func([]float64) float64
}

// Mean, Median, Sum build the common aggregates.
func Mean(col, as string) Agg   { return Agg{Col: col, As: as, Fn: stats.Mean} }
func Median(col, as string) Agg { return Agg{Col: col, As: as, Fn: stats.Median} }
func Sum(col, as string) Agg    { return Agg{Col: col, As: as, Fn: stats.Sum} }

// Summarize computes per-group aggregates, one output row per group in
// first-appearance order. The result has the key column, an "n" row
// count, and one column per aggregate.
func Summarize(f *frame.Frame, key string, aggs ...Agg) (*frame.Frame, error) {
	groups, err := f.GroupBy(key)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(groups))
	ns := make([]float64, len(groups))
	vals := make([][]float64, len(aggs))
	for ai := range aggs {
		vals[ai] = make([]float64, len(groups))
	}

	for gi, g := range groups {
		keys[gi] = g.Key
		ns[gi] = float64(len(g.Rows))
		for ai, agg := range aggs {
			col, err := g.Frame.Numeric(agg.Col)
			if err != nil {
				return nil, err
			}
			vals[ai][gi] = agg.Fn(col)
		}
	}

	cols := []frame.Column{
		frame.StringCol(key, keys),
		frame.NumericCol("n", ns),
	}
	for ai, agg := range aggs {
		cols = append(cols, frame.NumericCol(agg.As, vals[ai]))
	}
	return frame.New(cols...)
}

// FitResult is the outcome of fitting one group. Err is set when the
// group could not be fit (typically too few usable rows); the other
// groups are unaffected.
type FitResult struct {
	Key   string
	Rows  []int // row indices in the parent frame
	Model *model.Fitted
	Err   error
}

// FitEach fits the spec once per group of the key column, in parallel
// across CPU cores. Results come back in the partition's first-appearance
// order regardless of scheduling.
func FitEach(f *frame.Frame, key string, spec model.Spec) ([]FitResult, error) {
	groups, err := f.GroupBy(key)
	if err != nil {
		return nil, err
	}

	out := make([]FitResult, len(groups))
	workers := runtime.GOMAXPROCS(0)
	perWorker := (len(groups) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		s := w * perWorker
		e := s + perWorker
		if e > len(groups) {
			e = len(groups)
		}
		if s >= e {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for gi := s; gi < e; gi++ {
				g := groups[gi]
				m, err := model.Fit(g.Frame, spec)
				out[gi] = FitResult{Key: g.Key, Rows: g.Rows, Model: m, Err: err}
			}
		}(s, e)
	}
	wg.Wait()
	return out, nil
}

// Glance collects each successful fit's quality summary into a frame,
// one row per group: key, r.squared, adj.r.squared, sigma, aic, nobs.
// Failed groups are skipped.
func Glance(key string, results []FitResult) (*frame.Frame, error) {
	var (
		keys   []string
		r2     []float64
		adjR2  []float64
		sigmas []float64
		aics   []float64
		nobs   []float64
	)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		g := res.Model.Glance()
		keys = append(keys, res.Key)
		r2 = append(r2, g.RSquared)
		adjR2 = append(adjR2, g.AdjRSquared)
		sigmas = append(sigmas, g.Sigma)
		aics = append(aics, g.AIC)
		nobs = append(nobs, float64(g.NObs))
	}
	return frame.New(
		frame.StringCol(key, keys),
		frame.NumericCol("r.squared", r2),
		frame.NumericCol("adj.r.squared", adjR2),
		frame.NumericCol("sigma", sigmas),
		frame.NumericCol("aic", aics),
		frame.NumericCol("nobs", nobs),
	)
}

// AugmentEach writes row-level fitted values and residuals from the
// per-group fits back onto the parent frame, as name+".fitted" and
// name+".resid". Rows in failed or dropped groups stay NaN.
func AugmentEach(f *frame.Frame, results []FitResult, name string) error {
	fitted := make([]float64, f.Len())
	resid := make([]float64, f.Len())
	for i := range fitted {
		fitted[i] = math.NaN()
		resid[i] = math.NaN()
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for ri, sub := range res.Model.Rows {
			parent := res.Rows[sub]
			fitted[parent] = res.Model.Fitted[ri]
			resid[parent] = res.Model.Resid[ri]
		}
	}
	if err := f.Mutate(name+".fitted", fitted); err != nil {
		return err
	}
	return f.Mutate(name+".resid", resid)
}
