package frame

import (
	"math"
	"sort"
)

// SortBy returns a new frame with rows ordered by a numeric column,
// ascending (or descending). NaN rows sort last either way. The sort is
// stable, so ties keep their input order.
func (f *Frame) SortBy(col string, desc bool) (*Frame, error) {
	vals, err := f.Numeric(col)
	if err != nil {
		return nil, err
	}
	rows := make([]int, f.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		va, vb := vals[rows[a]], vals[rows[b]]
		if math.IsNaN(va) {
			return false
		}
		if math.IsNaN(vb) {
			return true
		}
		if desc {
			return va > vb
		}
		return va < vb
	})
	return f.Take(rows), nil
}
