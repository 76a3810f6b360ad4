package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trendviz/pkg/data"
	"trendviz/pkg/frame"
	"trendviz/pkg/group"
	"trendviz/pkg/model"
	"trendviz/pkg/report"
	"trendviz/pkg/viz"
)

// housing: one seasonal model per city. Monthly sales are dominated by
// the within-year cycle; fitting log(sales) ~ factor(month) city by city
// and keeping the residuals leaves the long-run market movement.
func housingCmd() *cobra.Command {
	var cities []string
	cmd := &cobra.Command{
		Use:   "housing",
		Short: "Deseasonalize Texas housing sales with one model per city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInput(); err != nil {
				return err
			}
			if len(cities) == 0 {
				cities = cfg.Cities
			}
			raw, err := data.LoadHousing(input)
			if err != nil {
				return err
			}
			f, err := data.PrepHousing(raw)
			if err != nil {
				return err
			}
			logger.Info("loaded txhousing", "rows", f.Len())

			spec := model.Spec{
				Response: "lsales",
				Terms:    []model.Term{model.Factor(data.ColMonth)},
			}
			results, err := group.FitEach(f, data.ColCity, spec)
			if err != nil {
				return err
			}
			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					logger.Warn("seasonal fit failed", "city", res.Key, "err", res.Err)
				}
			}
			logger.Info("fit seasonal models", "cities", len(results), "failed", failed)

			glance, err := group.Glance(data.ColCity, results)
			if err != nil {
				return err
			}
			byFit, err := glance.SortBy("r.squared", true)
			if err != nil {
				return err
			}
			if err := writeText("housing_glance.md", report.FrameTable(byFit)); err != nil {
				return err
			}

			// The cities the seasonal model explains worst are the ones
			// with the richest non-seasonal story.
			worst, err := glance.SortBy("r.squared", false)
			if err != nil {
				return err
			}
			if err := writeText("housing_worst_fits.md", report.FrameTable(head(worst, 10))); err != nil {
				return err
			}

			if err := group.AugmentEach(f, results, "seasonal"); err != nil {
				return err
			}

			if len(cities) == 0 {
				cities = topKeys(worst, data.ColCity, 6)
			}
			if err := housingPlots(f, cities); err != nil {
				return err
			}

			if err := seasonalProfile(byFit, results); err != nil {
				return err
			}

			out, err := os.Create(outPath("housing_augmented.csv"))
			if err != nil {
				return err
			}
			defer out.Close()
			if err := f.WriteCSV(out); err != nil {
				return err
			}
			fmt.Println(outPath("housing_augmented.csv"))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&cities, "city", nil, "city to plot (repeatable; default: worst fits)")
	return cmd
}

func housingPlots(f *frame.Frame, cities []string) error {
	want := map[string]bool{}
	for _, c := range cities {
		want[c] = true
	}
	groups, err := f.GroupBy(data.ColCity)
	if err != nil {
		return err
	}

	var rawSeries, detrended []viz.Series
	for _, g := range groups {
		if !want[g.Key] {
			continue
		}
		date, err := g.Frame.Numeric(data.ColDate)
		if err != nil {
			return err
		}
		sales, err := g.Frame.Numeric(data.ColSales)
		if err != nil {
			return err
		}
		resid, err := g.Frame.Numeric("seasonal.resid")
		if err != nil {
			return err
		}
		rawSeries = append(rawSeries, viz.Series{Name: g.Key, X: date, Y: sales})
		detrended = append(detrended, viz.Series{Name: g.Key, X: date, Y: resid})
	}

	err = viz.GroupedSeries(rawSeries,
		viz.Labels{Title: "monthly sales", X: "date", Y: "sales"},
		outPath("housing_sales.png"))
	if err != nil {
		return err
	}
	return viz.GroupedSeries(detrended,
		viz.Labels{Title: "sales with the seasonal cycle removed", X: "date", Y: "log sales residual"},
		outPath("housing_deseasonalized.png"))
}

// seasonalProfile writes the month coefficients of the best-fitting
// city's model: its seasonal shape on the log scale.
func seasonalProfile(byFit *frame.Frame, results []group.FitResult) error {
	if byFit.Len() == 0 {
		return nil
	}
	keys, err := byFit.Strings(data.ColCity)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Key == keys[0] && res.Err == nil {
			title := fmt.Sprintf("seasonal_profile_%s.md", res.Key)
			return writeText(title, report.CoefTable(res.Model.Tidy()))
		}
	}
	return nil
}

// head returns the first n rows of a frame.
func head(f *frame.Frame, n int) *frame.Frame {
	if n > f.Len() {
		n = f.Len()
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return f.Take(rows)
}

// topKeys returns the first n keys of a sorted summary frame.
func topKeys(f *frame.Frame, col string, n int) []string {
	keys, err := f.Strings(col)
	if err != nil {
		return nil
	}
	if n > len(keys) {
		n = len(keys)
	}
	return keys[:n]
}
