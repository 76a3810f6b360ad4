// Package report renders fit summaries and frames as markdown tables,
// the format the CLI writes next to its plots.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"trendviz/pkg/frame"
	"trendviz/pkg/model"
)

// Table renders a markdown table with aligned pipes.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, cell := range cells {
			fmt.Fprintf(&sb, " %-*s |", widths[i], cell)
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("|")
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// CoefTable renders a tidy coefficient table.
func CoefTable(coefs []model.Coef) string {
	rows := make([][]string, len(coefs))
	for i, c := range coefs {
		rows[i] = []string{c.Term, num(c.Estimate), num(c.StdErr), num(c.TStat), num(c.PValue)}
	}
	return Table([]string{"term", "estimate", "std.error", "statistic", "p.value"}, rows)
}

// StatsTable renders a one-row model-quality summary.
func StatsTable(s model.Stats) string {
	return Table(
		[]string{"r.squared", "adj.r.squared", "sigma", "logLik", "AIC", "BIC", "deviance", "df.residual", "nobs"},
		[][]string{{
			num(s.RSquared), num(s.AdjRSquared), num(s.Sigma), num(s.LogLik),
			num(s.AIC), num(s.BIC), num(s.Deviance),
			strconv.Itoa(s.DFResidual), strconv.Itoa(s.NObs),
		}},
	)
}

// FrameTable renders a frame, numeric cells in compact float form.
func FrameTable(f *frame.Frame) string {
	names := f.Names()
	rows := make([][]string, f.Len())
	for i := range rows {
		row := make([]string, len(names))
		for j, name := range names {
			c, _ := f.Col(name)
			if c.Kind == frame.Numeric {
				row[j] = num(c.Floats[i])
			} else {
				row[j] = c.Strs[i]
			}
		}
		rows[i] = row
	}
	return Table(names, rows)
}
