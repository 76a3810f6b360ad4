// Package model fits ordinary least squares regressions against frame
// columns and extracts tidy summaries from the fit: coefficients with
// standard errors, fit-quality statistics, and row-level residuals for
// detrending.
package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"trendviz/pkg/frame"
)

// Term is one right-hand-side term of a model spec.
type Term struct {
	Col    string
	factor bool
}

// Numeric builds a term that enters the design as-is.
func Numeric(col string) Term { return Term{Col: col} }

// Factor builds a term whose column is treated as categorical and
// expanded to dummy columns against its first level.
func Factor(col string) Term { return Term{Col: col, factor: true} }

// Spec describes a regression: response ~ terms. The intercept is
// included unless NoIntercept is set.
type Spec struct {
	Response    string
	Terms       []Term
	NoIntercept bool
}

// cellReader yields string keys and float values for one column, plus a
// missingness test, so factor expansion works for both column kinds.
type cellReader struct {
	floats []float64
	strs   []string
}

func newCellReader(f *frame.Frame, col string) (cellReader, error) {
	c, err := f.Col(col)
	if err != nil {
		return cellReader{}, err
	}
	if c.Kind == frame.String {
		return cellReader{strs: c.Strs}, nil
	}
	return cellReader{floats: c.Floats}, nil
}

func (r cellReader) missing(i int) bool {
	if r.strs != nil {
		return r.strs[i] == ""
	}
	return math.IsNaN(r.floats[i])
}

// label formats the cell for use as a factor level key.
func (r cellReader) label(i int) string {
	if r.strs != nil {
		return r.strs[i]
	}
	return strconv.FormatFloat(r.floats[i], 'g', -1, 64)
}

// factorLevels collects the sorted distinct levels of a column over the
// given rows. Numeric columns sort numerically, string columns lexically;
// the first level is the dummy-coding reference.
func factorLevels(r cellReader, rows []int) []string {
	seen := map[string]bool{}
	var levels []string
	for _, i := range rows {
		k := r.label(i)
		if !seen[k] {
			seen[k] = true
			levels = append(levels, k)
		}
	}
	if r.strs != nil {
		sort.Strings(levels)
		return levels
	}
	sort.Slice(levels, func(a, b int) bool {
		x, _ := strconv.ParseFloat(levels[a], 64)
		y, _ := strconv.ParseFloat(levels[b], 64)
		return x < y
	})
	return levels
}

// design is a realized model matrix: the rows of the frame that were
// usable, the expanded column names, and the matrix itself.
type design struct {
	names  []string
	rows   []int
	x      *mat.Dense
	levels map[string][]string
}

// buildDesign expands a spec against a frame. Rows with a missing cell
// in any used column are dropped. When levels is nil the factor levels
// are learned from the data; otherwise they must cover every level
// present, or an error is returned (the Predict path).
func buildDesign(f *frame.Frame, s Spec, levels map[string][]string, withResponse bool) (*design, []float64, error) {
	readers := make([]cellReader, len(s.Terms))
	for ti, term := range s.Terms {
		r, err := newCellReader(f, term.Col)
		if err != nil {
			return nil, nil, err
		}
		if !term.factor && r.strs != nil {
			return nil, nil, fmt.Errorf("model: numeric term %q over a string column", term.Col)
		}
		readers[ti] = r
	}
	var resp []float64
	if withResponse {
		var err error
		resp, err = f.Numeric(s.Response)
		if err != nil {
			return nil, nil, err
		}
	}

	var rows []int
	for i := 0; i < f.Len(); i++ {
		ok := true
		for _, r := range readers {
			if r.missing(i) {
				ok = false
				break
			}
		}
		if ok && withResponse && math.IsNaN(resp[i]) {
			ok = false
		}
		if ok {
			rows = append(rows, i)
		}
	}
	if withResponse && len(rows) == 0 {
		return nil, nil, fmt.Errorf("model: no usable rows after dropping missing values")
	}

	// Levels are learned over the usable rows only: a level confined to
	// rows dropped for a missing response must not become an all-zero
	// dummy column.
	learned := levels == nil
	if learned {
		levels = map[string][]string{}
		for ti, term := range s.Terms {
			if term.factor {
				levels[term.Col] = factorLevels(readers[ti], rows)
			}
		}
	}

	names := []string{}
	if !s.NoIntercept {
		names = append(names, "(Intercept)")
	}
	levelIndex := map[string]map[string]int{}
	for _, term := range s.Terms {
		if !term.factor {
			names = append(names, term.Col)
			continue
		}
		lv := levels[term.Col]
		if len(lv) < 2 {
			return nil, nil, fmt.Errorf("model: factor %q has fewer than two levels", term.Col)
		}
		idx := make(map[string]int, len(lv))
		for li, l := range lv {
			idx[l] = li
		}
		levelIndex[term.Col] = idx
		for _, l := range lv[1:] {
			names = append(names, term.Col+l)
		}
	}

	// mat.NewDense rejects a zero dimension; a predict call where every
	// row is missing yields an empty design and an all-NaN prediction.
	if len(rows) == 0 {
		return &design{names: names, levels: levels}, nil, nil
	}

	x := mat.NewDense(len(rows), len(names), nil)
	var y []float64
	if withResponse {
		y = make([]float64, len(rows))
	}
	for ri, row := range rows {
		col := 0
		if !s.NoIntercept {
			x.Set(ri, col, 1)
			col++
		}
		for ti, term := range s.Terms {
			r := readers[ti]
			if !term.factor {
				x.Set(ri, col, r.floats[row])
				col++
				continue
			}
			lv := levels[term.Col]
			li, ok := levelIndex[term.Col][r.label(row)]
			if !ok {
				return nil, nil, fmt.Errorf("model: factor %q has unseen level %q", term.Col, r.label(row))
			}
			for k := 1; k < len(lv); k++ {
				if li == k {
					x.Set(ri, col, 1)
				}
				col++
			}
		}
		if withResponse {
			y[ri] = resp[row]
		}
	}
	return &design{names: names, rows: rows, x: x, levels: levels}, y, nil
}
