package data

import (
	"fmt"
	"math"

	"trendviz/pkg/frame"
)

// Texas housing column names, as shipped in txhousing.csv.
const (
	ColCity  = "city"
	ColYear  = "year"
	ColMonth = "month"
	ColSales = "sales"
	ColDate  = "date"
)

var housingStringCols = map[string]bool{ColCity: true}

// LoadHousing streams txhousing.csv into a frame. The source file marks
// missing cells with NA; those become NaN and are never imputed.
func LoadHousing(path string) (*frame.Frame, error) {
	rows := make(chan []string, 256)
	header, _, err := StreamCSV(path, rows)
	if err != nil {
		return nil, err
	}
	f, err := collectFrame(header, rows, housingStringCols)
	if err != nil {
		return nil, fmt.Errorf("data: txhousing: %w", err)
	}
	for _, col := range []string{ColCity, ColYear, ColMonth, ColSales} {
		if !f.Has(col) {
			return nil, fmt.Errorf("data: txhousing: missing column %q", col)
		}
	}
	return f, nil
}

// PrepHousing adds the columns the seasonal analysis fits against:
// a fractional date (year + (month-1)/12) when the source lacks one,
// and lsales = log(sales). NaN sales stay NaN.
func PrepHousing(f *frame.Frame) (*frame.Frame, error) {
	year, err := f.Numeric(ColYear)
	if err != nil {
		return nil, err
	}
	month, err := f.Numeric(ColMonth)
	if err != nil {
		return nil, err
	}
	if !f.Has(ColDate) {
		err := f.MutateFn(ColDate, func(i int) float64 {
			return year[i] + (month[i]-1)/12
		})
		if err != nil {
			return nil, err
		}
	}
	sales, err := f.Numeric(ColSales)
	if err != nil {
		return nil, err
	}
	if err := f.MutateFn("lsales", func(i int) float64 { return math.Log(sales[i]) }); err != nil {
		return nil, err
	}
	return f, nil
}
