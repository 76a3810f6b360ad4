package data

import (
	"fmt"
	"math"
	"strconv"

	"trendviz/pkg/frame"
	"trendviz/pkg/stats"
)

// Diamonds column names, as shipped in diamonds.csv.
const (
	ColCarat   = "carat"
	ColCut     = "cut"
	ColColor   = "color"
	ColClarity = "clarity"
	ColPrice   = "price"
)

var diamondStringCols = map[string]bool{
	ColCut: true, ColColor: true, ColClarity: true,
}

// LoadDiamonds streams diamonds.csv into a frame. Categorical columns
// (cut, color, clarity) stay strings; everything else is numeric.
func LoadDiamonds(path string) (*frame.Frame, error) {
	rows := make(chan []string, 256)
	header, _, err := StreamCSV(path, rows)
	if err != nil {
		return nil, err
	}
	f, err := collectFrame(header, rows, diamondStringCols)
	if err != nil {
		return nil, fmt.Errorf("data: diamonds: %w", err)
	}
	for _, col := range []string{ColCarat, ColPrice, ColCut} {
		if !f.Has(col) {
			return nil, fmt.Errorf("data: diamonds: missing column %q", col)
		}
	}
	return f, nil
}

// PrepDiamonds applies the transformations the detrending analysis
// expects: drop the sparse tail above 2 carats, then add log2-scaled
// carat and price columns (lcarat, lprice). Log2 keeps the scale
// interpretable: +1 means doubling.
func PrepDiamonds(f *frame.Frame) (*frame.Frame, error) {
	carat, err := f.Numeric(ColCarat)
	if err != nil {
		return nil, err
	}
	out := f.Filter(func(i int) bool {
		return !math.IsNaN(carat[i]) && carat[i] <= 2
	})

	carat, _ = out.Numeric(ColCarat)
	price, err := out.Numeric(ColPrice)
	if err != nil {
		return nil, err
	}
	if err := out.MutateFn("lcarat", func(i int) float64 { return math.Log2(carat[i]) }); err != nil {
		return nil, err
	}
	if err := out.MutateFn("lprice", func(i int) float64 { return math.Log2(price[i]) }); err != nil {
		return nil, err
	}
	return out, nil
}

// TrimPriceTail drops the diamonds above the q quantile of price
// (0 < q < 1). The priciest few stretch every axis they appear on;
// trimming them keeps the bulk of the trend readable. q >= 1 keeps
// every row.
func TrimPriceTail(f *frame.Frame, q float64) (*frame.Frame, error) {
	if q >= 1 {
		return f, nil
	}
	price, err := f.Numeric(ColPrice)
	if err != nil {
		return nil, err
	}
	keep := stats.TrimAbove(price, q)
	return f.Filter(func(i int) bool { return keep[i] }), nil
}

// collectFrame drains a record channel into typed columns. Columns named
// in stringCols hold strings; all others parse as float64 with NA/empty
// becoming NaN.
func collectFrame(header []string, rows <-chan []string, stringCols map[string]bool) (*frame.Frame, error) {
	floats := make([][]float64, len(header))
	strs := make([][]string, len(header))

	for rec := range rows {
		if len(rec) != len(header) {
			continue
		}
		for j, cell := range rec {
			if stringCols[header[j]] {
				if frame.IsNA(cell) {
					cell = ""
				}
				strs[j] = append(strs[j], cell)
				continue
			}
			v := math.NaN()
			if !frame.IsNA(cell) {
				parsed, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("column %q: bad cell %q", header[j], cell)
				}
				v = parsed
			}
			floats[j] = append(floats[j], v)
		}
	}

	cols := make([]frame.Column, len(header))
	for j, name := range header {
		if stringCols[name] {
			cols[j] = frame.StringCol(name, strs[j])
		} else {
			cols[j] = frame.NumericCol(name, floats[j])
		}
	}
	return frame.New(cols...)
}
