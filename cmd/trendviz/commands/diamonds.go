package commands

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"trendviz/pkg/data"
	"trendviz/pkg/frame"
	"trendviz/pkg/group"
	"trendviz/pkg/model"
	"trendviz/pkg/report"
	"trendviz/pkg/viz"
)

// diamonds: remove the carat-price trend, then look at what is left.
// Price is overwhelmingly driven by size; a log-log fit strips that out
// so the residuals show how cut, colour and clarity price in.
func diamondsCmd() *cobra.Command {
	var trimPrice float64
	cmd := &cobra.Command{
		Use:   "diamonds",
		Short: "Detrend diamond prices against carat and summarize the residuals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInput(); err != nil {
				return err
			}
			raw, err := data.LoadDiamonds(input)
			if err != nil {
				return err
			}
			f, err := data.PrepDiamonds(raw)
			if err != nil {
				return err
			}
			f, err = data.TrimPriceTail(f, trimPrice)
			if err != nil {
				return err
			}
			logger.Info("loaded diamonds", "rows", f.Len(), "dropped", raw.Len()-f.Len())

			m, err := model.Fit(f, model.Spec{
				Response: "lprice",
				Terms:    []model.Term{model.Numeric("lcarat")},
			})
			if err != nil {
				return err
			}
			g := m.Glance()
			logger.Info("fit lprice ~ lcarat", "r2", g.RSquared, "sigma", g.Sigma, "nobs", g.NObs)

			if err := m.Augment(f, "lm"); err != nil {
				return err
			}
			resid, _ := f.Numeric("lm.resid")
			// Back on the raw scale: 2^resid is price relative to a
			// same-size diamond, 1 = as expected, 2 = twice as dear.
			if err := f.MutateFn("rel", func(i int) float64 {
				return math.Exp2(resid[i])
			}); err != nil {
				return err
			}

			if err := writeText("diamonds_coef.md", report.CoefTable(m.Tidy())); err != nil {
				return err
			}
			if err := writeText("diamonds_fit.md", report.StatsTable(g)); err != nil {
				return err
			}

			// Residual structure by quality grade. With size removed the
			// better grades should float to the top.
			byCut, err := group.Summarize(f, data.ColCut,
				group.Mean("rel", "mean_rel"),
				group.Median("rel", "median_rel"),
			)
			if err != nil {
				return err
			}
			byCut, err = byCut.SortBy("median_rel", true)
			if err != nil {
				return err
			}
			if err := writeText("diamonds_rel_by_cut.md", report.FrameTable(byCut)); err != nil {
				return err
			}

			if err := diamondPlots(f, m); err != nil {
				return err
			}

			out, err := os.Create(outPath("diamonds_augmented.csv"))
			if err != nil {
				return err
			}
			defer out.Close()
			if err := f.WriteCSV(out); err != nil {
				return err
			}
			fmt.Println(outPath("diamonds_augmented.csv"))
			return nil
		},
	}
	cmd.Flags().Float64Var(&trimPrice, "trim-price", 1, "drop diamonds above this price quantile (1 keeps all)")
	return cmd
}

func diamondPlots(f *frame.Frame, m *model.Fitted) error {
	lcarat, _ := f.Numeric("lcarat")
	lprice, _ := f.Numeric("lprice")
	resid, _ := f.Numeric("lm.resid")

	fitX, fitY, err := fitLine(m, "lcarat", lcarat, 50)
	if err != nil {
		return err
	}
	err = viz.ScatterWithFit(lcarat, lprice, fitX, fitY,
		viz.Labels{Title: "log price against log carat", X: "lcarat", Y: "lprice"},
		outPath("diamonds_fit.png"))
	if err != nil {
		return err
	}
	err = viz.Residuals(lcarat, resid,
		viz.Labels{Title: "residuals: size effect removed", X: "lcarat", Y: "resid"},
		outPath("diamonds_resid.png"))
	if err != nil {
		return err
	}
	return viz.Histogram(resid, 40,
		viz.Labels{Title: "residual distribution", X: "resid", Y: "count"},
		outPath("diamonds_resid_hist.png"))
}

// fitLine evaluates the fit over an even grid spanning the predictor.
func fitLine(m *model.Fitted, col string, vals []float64, n int) ([]float64, []float64, error) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = min + (max-min)*float64(i)/float64(n-1)
	}
	gridFrame, err := frame.New(frame.NumericCol(col, xs))
	if err != nil {
		return nil, nil, err
	}
	ys, err := m.Predict(gridFrame)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}
