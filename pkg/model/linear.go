package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"trendviz/pkg/frame"
)

// Fitted is an ordinary least squares fit. Row-level slices (Fitted,
// Resid) are aligned with Rows, the frame row indices that survived
// missing-value dropping.
type Fitted struct {
	Spec  Spec
	Names []string
	Coef  []float64

	Rows   []int
	Fitted []float64
	Resid  []float64

	N, P     int
	RSS, TSS float64

	frameLen int
	levels   map[string][]string
	xtxInv   *mat.Dense
}

// Fit solves spec against the frame by QR least squares. Rows carrying a
// missing value in the response or any term column are dropped. Degenerate
// input (too few rows, collinear design) is an error.
func Fit(f *frame.Frame, s Spec) (*Fitted, error) {
	if s.Response == "" {
		return nil, fmt.Errorf("model: spec has no response")
	}
	if len(s.Terms) == 0 {
		return nil, fmt.Errorf("model: spec has no terms")
	}
	d, y, err := buildDesign(f, s, nil, true)
	if err != nil {
		return nil, err
	}
	n, p := len(d.rows), len(d.names)
	if n <= p {
		return nil, fmt.Errorf("model: %d usable rows for %d coefficients", n, p)
	}

	var qr mat.QR
	qr.Factorize(d.x)
	beta := mat.NewDense(p, 1, nil)
	if err := qr.SolveTo(beta, false, mat.NewDense(n, 1, y)); err != nil {
		return nil, fmt.Errorf("model: singular design matrix: %w", err)
	}

	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = beta.At(j, 0)
	}

	fitted := make([]float64, n)
	resid := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		v := 0.0
		for j := 0; j < p; j++ {
			v += d.x.At(i, j) * coef[j]
		}
		fitted[i] = v
		resid[i] = y[i] - v
		rss += resid[i] * resid[i]
	}

	// Total sum of squares about the mean, or about zero for a
	// through-the-origin fit.
	tss := 0.0
	if s.NoIntercept {
		for _, v := range y {
			tss += v * v
		}
	} else {
		mean := 0.0
		for _, v := range y {
			mean += v
		}
		mean /= float64(n)
		for _, v := range y {
			tss += (v - mean) * (v - mean)
		}
	}

	var xtx, inv mat.Dense
	xtx.Mul(d.x.T(), d.x)
	if err := inv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("model: singular design matrix: %w", err)
	}

	return &Fitted{
		Spec:     s,
		Names:    d.names,
		Coef:     coef,
		Rows:     d.rows,
		Fitted:   fitted,
		Resid:    resid,
		N:        n,
		P:        p,
		RSS:      rss,
		TSS:      tss,
		frameLen: f.Len(),
		levels:   d.levels,
		xtxInv:   &inv,
	}, nil
}

// Coefficient returns the estimate for a named coefficient.
func (m *Fitted) Coefficient(name string) (float64, bool) {
	for j, n := range m.Names {
		if n == name {
			return m.Coef[j], true
		}
	}
	return 0, false
}

// Levels returns the dummy-coding levels learned for a factor column.
func (m *Fitted) Levels(col string) []string {
	return m.levels[col]
}

// DFResidual returns the residual degrees of freedom.
func (m *Fitted) DFResidual() int { return m.N - m.P }

// Sigma returns the residual standard error.
func (m *Fitted) Sigma() float64 {
	return math.Sqrt(m.RSS / float64(m.DFResidual()))
}

// R2 returns the coefficient of determination.
func (m *Fitted) R2() float64 {
	if m.TSS == 0 {
		return 0
	}
	return 1 - m.RSS/m.TSS
}

// AdjR2 returns R2 penalized for model size.
func (m *Fitted) AdjR2() float64 {
	n, p := float64(m.N), float64(m.P)
	return 1 - (1-m.R2())*(n-1)/(n-p)
}

// LogLik returns the gaussian log-likelihood at the fit.
func (m *Fitted) LogLik() float64 {
	n := float64(m.N)
	return -n / 2 * (math.Log(2*math.Pi) + math.Log(m.RSS/n) + 1)
}

// AIC counts the coefficients plus the error variance as parameters.
func (m *Fitted) AIC() float64 {
	return -2*m.LogLik() + 2*float64(m.P+1)
}

// BIC is AIC with a log(n) parameter penalty.
func (m *Fitted) BIC() float64 {
	return -2*m.LogLik() + math.Log(float64(m.N))*float64(m.P+1)
}

// Predict evaluates the fit on new rows. Rows with a missing cell in any
// term column predict NaN; a factor level the fit never saw is an error.
func (m *Fitted) Predict(f *frame.Frame) ([]float64, error) {
	d, _, err := buildDesign(f, m.Spec, m.levels, false)
	if err != nil {
		return nil, err
	}
	out := make([]float64, f.Len())
	for i := range out {
		out[i] = math.NaN()
	}
	for ri, row := range d.rows {
		v := 0.0
		for j := range m.Coef {
			v += d.x.At(ri, j) * m.Coef[j]
		}
		out[row] = v
	}
	return out, nil
}

// Augment adds row-level fit columns to the frame the model was fit on:
// name+".fitted" and name+".resid", NaN where the row was dropped.
func (m *Fitted) Augment(f *frame.Frame, name string) error {
	if f.Len() != m.frameLen {
		return fmt.Errorf("model: augment: frame has %d rows, fit used a frame with %d", f.Len(), m.frameLen)
	}
	fitted := make([]float64, m.frameLen)
	resid := make([]float64, m.frameLen)
	for i := range fitted {
		fitted[i] = math.NaN()
		resid[i] = math.NaN()
	}
	for ri, row := range m.Rows {
		fitted[row] = m.Fitted[ri]
		resid[row] = m.Resid[ri]
	}
	if err := f.Mutate(name+".fitted", fitted); err != nil {
		return err
	}
	return f.Mutate(name+".resid", resid)
}
