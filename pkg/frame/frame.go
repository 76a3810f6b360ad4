package frame

import (
	"errors"
	"fmt"
)

// Kind marks how a column stores its cells.
type Kind int

const (
	Numeric Kind = iota // float64 cells, NaN for missing
	String              // string cells, "" for missing
)

// Column is a single named column. Exactly one of Floats/Strs is set,
// according to Kind.
type Column struct {
	Name   string
	Kind   Kind
	Floats []float64
	Strs   []string
}

// NumericCol builds a numeric column.
func NumericCol(name string, vals []float64) Column {
	return Column{Name: name, Kind: Numeric, Floats: vals}
}

// StringCol builds a string column.
func StringCol(name string, vals []string) Column {
	return Column{Name: name, Kind: String, Strs: vals}
}

func (c Column) len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strs)
}

// Frame is an in-memory table of equal-length columns.
type Frame struct {
	cols  []Column
	index map[string]int
}

// New builds a Frame, checking that all columns share one length.
func New(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, errors.New("frame: no columns")
	}
	n := cols[0].len()
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if c.len() != n {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", c.Name, c.len(), n)
		}
		if _, ok := index[c.Name]; ok {
			return nil, fmt.Errorf("frame: duplicate column %q", c.Name)
		}
		index[c.Name] = i
	}
	return &Frame{cols: cols, index: index}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].len()
}

// Names returns column names in order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Col returns the column by name.
func (f *Frame) Col(name string) (Column, error) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, fmt.Errorf("frame: no column %q", name)
	}
	return f.cols[i], nil
}

// Numeric returns the float cells of a numeric column. The slice is the
// frame's own storage; callers must not mutate it.
func (f *Frame) Numeric(name string) ([]float64, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Numeric {
		return nil, fmt.Errorf("frame: column %q is not numeric", name)
	}
	return c.Floats, nil
}

// Strings returns the string cells of a string column.
func (f *Frame) Strings(name string) ([]string, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != String {
		return nil, fmt.Errorf("frame: column %q is not a string column", name)
	}
	return c.Strs, nil
}

// Mutate adds a numeric column, or replaces it if the name exists.
func (f *Frame) Mutate(name string, vals []float64) error {
	if len(vals) != f.Len() {
		return fmt.Errorf("frame: mutate %q: %d values for %d rows", name, len(vals), f.Len())
	}
	col := NumericCol(name, vals)
	if i, ok := f.index[name]; ok {
		f.cols[i] = col
		return nil
	}
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, col)
	return nil
}

// MutateFn computes a numeric column from each row index.
func (f *Frame) MutateFn(name string, fn func(row int) float64) error {
	vals := make([]float64, f.Len())
	for i := range vals {
		vals[i] = fn(i)
	}
	return f.Mutate(name, vals)
}

// Select returns a new frame with just the named columns, sharing storage.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := f.Col(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Filter returns a new frame holding the rows where keep returns true.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	var rows []int
	for i := 0; i < f.Len(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return f.Take(rows)
}

// Take returns a new frame holding the given rows, in order. Row indices
// may repeat.
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]Column, len(f.cols))
	for ci, c := range f.cols {
		switch c.Kind {
		case Numeric:
			vals := make([]float64, len(rows))
			for i, r := range rows {
				vals[i] = c.Floats[r]
			}
			cols[ci] = NumericCol(c.Name, vals)
		case String:
			vals := make([]string, len(rows))
			for i, r := range rows {
				vals[i] = c.Strs[r]
			}
			cols[ci] = StringCol(c.Name, vals)
		}
	}
	out, _ := New(cols...)
	return out
}

// Group is one partition of a frame under a key column.
type Group struct {
	Key   string
	Rows  []int // row indices in the parent frame
	Frame *Frame
}

// GroupBy partitions the frame by the cells of a key column. Groups appear
// in order of first appearance. Numeric keys are formatted with %g.
func (f *Frame) GroupBy(key string) ([]Group, error) {
	c, err := f.Col(key)
	if err != nil {
		return nil, err
	}
	keyAt := func(i int) string {
		if c.Kind == String {
			return c.Strs[i]
		}
		return fmt.Sprintf("%g", c.Floats[i])
	}

	order := []string{}
	rows := map[string][]int{}
	for i := 0; i < f.Len(); i++ {
		k := keyAt(i)
		if _, ok := rows[k]; !ok {
			order = append(order, k)
		}
		rows[k] = append(rows[k], i)
	}

	out := make([]Group, len(order))
	for gi, k := range order {
		out[gi] = Group{Key: k, Rows: rows[k], Frame: f.Take(rows[k])}
	}
	return out, nil
}
