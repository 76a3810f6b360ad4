// Package viz renders the module's plots with gonum/plot: trend scatters
// with a fitted line, residual plots, grouped time series, and residual
// histograms. Every function writes an image file; the format follows
// the file extension (png, svg, pdf).
package viz

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Labels names a plot and its axes.
type Labels struct {
	Title string
	X     string
	Y     string
}

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 140, G: 86, B: 75, A: 255},
}

// points pairs x and y, dropping rows where either is NaN.
func points(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, errors.New("viz: x and y lengths differ")
	}
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(pts) == 0 {
		return nil, errors.New("viz: no plottable points")
	}
	return pts, nil
}

func newPlot(lab Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = lab.Title
	p.X.Label.Text = lab.X
	p.Y.Label.Text = lab.Y
	return p
}

// ScatterWithFit draws the observations and overlays a fitted line. The
// line points should already be ordered by x.
func ScatterWithFit(x, y, fitX, fitY []float64, lab Labels, path string) error {
	p := newPlot(lab)

	pts, err := points(x, y)
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle = draw.GlyphStyle{
		Color:  color.RGBA{R: 70, G: 70, B: 70, A: 120},
		Radius: vg.Points(1.5),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(s)

	linePts, err := points(fitX, fitY)
	if err != nil {
		return err
	}
	l, err := plotter.NewLine(linePts)
	if err != nil {
		return err
	}
	l.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	l.Width = vg.Points(2)
	p.Add(l)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// Residuals draws residuals against x with a zero reference line. A flat,
// structureless cloud means the model captured the trend.
func Residuals(x, resid []float64, lab Labels, path string) error {
	p := newPlot(lab)

	pts, err := points(x, resid)
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle = draw.GlyphStyle{
		Color:  color.RGBA{R: 31, G: 119, B: 180, A: 140},
		Radius: vg.Points(1.5),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(s)

	xmin, xmax := pts[0].X, pts[0].X
	for _, pt := range pts {
		if pt.X < xmin {
			xmin = pt.X
		}
		if pt.X > xmax {
			xmax = pt.X
		}
	}
	zero, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: 0}, {X: xmax, Y: 0}})
	if err != nil {
		return err
	}
	zero.Color = color.RGBA{A: 255}
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(zero)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// Series is one named line in a grouped plot.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// GroupedSeries draws one line per series, cycling a fixed palette, with
// a legend when there are few enough series to label.
func GroupedSeries(series []Series, lab Labels, path string) error {
	if len(series) == 0 {
		return errors.New("viz: no series")
	}
	p := newPlot(lab)

	for si, s := range series {
		pts, err := points(s.X, s.Y)
		if err != nil {
			continue // a fully-missing group is not fatal
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = palette[si%len(palette)]
		l.Width = vg.Points(1)
		p.Add(l)
		if len(series) <= len(palette) {
			p.Legend.Add(s.Name, l)
		}
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// Histogram draws the distribution of vals over n bins, NaN dropped.
func Histogram(vals []float64, bins int, lab Labels, path string) error {
	clean := make(plotter.Values, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return errors.New("viz: no plottable points")
	}

	p := newPlot(lab)
	h, err := plotter.NewHist(clean, bins)
	if err != nil {
		return err
	}
	h.FillColor = color.RGBA{R: 31, G: 119, B: 180, A: 200}
	p.Add(h)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
