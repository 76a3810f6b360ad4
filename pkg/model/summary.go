package model

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Coef is one row of a tidy coefficient table.
type Coef struct {
	Term     string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64
}

// Tidy returns the coefficient table: estimate, standard error, t
// statistic, and two-sided p value against the t distribution with the
// residual degrees of freedom.
func (m *Fitted) Tidy() []Coef {
	sigma2 := m.RSS / float64(m.DFResidual())
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.DFResidual())}

	out := make([]Coef, m.P)
	for j := 0; j < m.P; j++ {
		se := math.Sqrt(sigma2 * m.xtxInv.At(j, j))
		t := m.Coef[j] / se
		out[j] = Coef{
			Term:     m.Names[j],
			Estimate: m.Coef[j],
			StdErr:   se,
			TStat:    t,
			PValue:   2 * dist.CDF(-math.Abs(t)),
		}
	}
	return out
}

// Stats is a one-row model-quality summary.
type Stats struct {
	RSquared    float64
	AdjRSquared float64
	Sigma       float64
	LogLik      float64
	AIC         float64
	BIC         float64
	Deviance    float64
	DFResidual  int
	NObs        int
}

// Glance returns the fit-quality summary for the model.
func (m *Fitted) Glance() Stats {
	return Stats{
		RSquared:    m.R2(),
		AdjRSquared: m.AdjR2(),
		Sigma:       m.Sigma(),
		LogLik:      m.LogLik(),
		AIC:         m.AIC(),
		BIC:         m.BIC(),
		Deviance:    m.RSS,
		DFResidual:  m.DFResidual(),
		NObs:        m.N,
	}
}
