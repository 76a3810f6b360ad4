package frame

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// IsNA reports whether a raw CSV cell counts as a missing value. Every
// loader in the module shares this policy: missing numeric cells become
// NaN, missing string cells become "".
func IsNA(s string) bool {
	return s == "" || s == "NA" || s == "NaN"
}

// ReadCSV reads a table with a header row. Columns where every non-missing
// cell parses as a float become numeric, with NaN for missing cells;
// everything else stays a string column.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("frame: empty input")
	}
	if err != nil {
		return nil, err
	}

	raw := make([][]string, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("frame: row has %d cells, want %d", len(rec), len(header))
		}
		for j, cell := range rec {
			raw[j] = append(raw[j], cell)
		}
	}

	cols := make([]Column, len(header))
	for j, name := range header {
		cols[j] = inferColumn(name, raw[j])
	}
	return New(cols...)
}

// ReadCSVFile reads a CSV file from disk.
func ReadCSVFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	f, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("frame: %s: %w", path, err)
	}
	return f, nil
}

func inferColumn(name string, cells []string) Column {
	numeric := true
	for _, s := range cells {
		if IsNA(s) {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			numeric = false
			break
		}
	}
	if !numeric {
		vals := make([]string, len(cells))
		for i, s := range cells {
			if IsNA(s) {
				continue
			}
			vals[i] = s
		}
		return StringCol(name, vals)
	}
	vals := make([]float64, len(cells))
	for i, s := range cells {
		if IsNA(s) {
			vals[i] = math.NaN()
			continue
		}
		v, _ := strconv.ParseFloat(s, 64)
		vals[i] = v
	}
	return NumericCol(name, vals)
}

// WriteCSV writes the frame with a header row. NaN cells are written as NA.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return err
	}
	rec := make([]string, len(f.cols))
	for i := 0; i < f.Len(); i++ {
		for j, c := range f.cols {
			switch c.Kind {
			case Numeric:
				if math.IsNaN(c.Floats[i]) {
					rec[j] = "NA"
				} else {
					rec[j] = strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
				}
			case String:
				rec[j] = c.Strs[i]
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
