// Package data loads the example datasets used throughout the module:
// the diamonds table (price and physical attributes of ~54k diamonds)
// and the Texas monthly housing table (sales by city and month, with
// missing cells recorded as NA).
package data

import (
	"bufio"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
)

// StreamCSV streams the records of a CSV file through out, one []string
// per row, skipping malformed rows. The header row is read synchronously
// and returned. Close the done channel to stop early; out is closed when
// the stream ends either way.
func StreamCSV(path string, out chan<- []string) (header []string, done chan struct{}, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bufio.NewReader(file))
	reader.ReuseRecord = true

	header, err = reader.Read()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	header = append([]string(nil), header...)

	done = make(chan struct{})
	go func() {
		defer file.Close()
		defer close(out)
		skipped := 0
		for {
			select {
			case <-done:
				return
			default:
				rec, err := reader.Read()
				if err == io.EOF {
					if skipped > 0 {
						slog.Warn("skipped malformed csv rows", "path", path, "rows", skipped)
					}
					return
				}
				if err != nil {
					skipped++
					continue
				}
				// reader reuses its backing array; hand out a copy.
				out <- append([]string(nil), rec...)
			}
		}
	}()
	return header, done, nil
}
