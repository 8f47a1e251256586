// Package visualize draws the training sample together with the fitted line.
package visualize

import (
	"context"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/linreg/app"
	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/linear"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default image size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// lineSamples is the number of points used to draw the fitted line.
const lineSamples = 100

var (
	sampleColor = color.Black
	modelColor  = color.RGBA{G: 128, A: 255}
)

// NewPlot builds a scatter of samples and the line theta0 + theta1*km over
// the sample's mileage range widened to include 0.
func NewPlot(samples dataset.Samples, p model.Params) (*plot.Plot, error) {
	if samples.Len() == 0 {
		return nil, errors.NewValueError("visualize.NewPlot", "no samples to plot")
	}

	pl := plot.New()
	pl.Title.Text = "Price by mileage"
	pl.X.Label.Text = "mileage"
	pl.Y.Label.Text = "price"

	pts := make(plotter.XYs, samples.Len())
	for i, s := range samples {
		pts[i].X = s.Mileage
		pts[i].Y = s.Price
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "scatter")
	}
	scatter.GlyphStyle.Color = sampleColor
	scatter.GlyphStyle.Radius = vg.Points(2)

	km := samples.Mileages()
	xMin, xMax := floats.Min(km), floats.Max(km)
	if xMin > 0 {
		xMin = 0
	}
	if xMax < 0 {
		xMax = 0
	}
	if xMax == xMin {
		xMax = xMin + 1
	}

	line := plotter.NewFunction(func(x float64) float64 {
		return linear.Estimate(p.Theta0, p.Theta1, x)
	})
	line.XMin, line.XMax = xMin, xMax
	line.Samples = lineSamples
	line.LineStyle.Color = modelColor
	line.LineStyle.Width = vg.Points(2)

	pl.Add(plotter.NewGrid(), scatter, line)
	pl.Legend.Add("Training data", scatter)
	pl.Legend.Add("Trained model", line)
	pl.Legend.Top = true
	pl.X.Min, pl.X.Max = xMin, xMax

	return pl, nil
}

// Render writes the plot as a PNG image to w.
func Render(w io.Writer, samples dataset.Samples, p model.Params, width, height vg.Length) error {
	pl, err := NewPlot(samples, p)
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(width, height, "png")
	if err != nil {
		return errors.Wrap(err, "png writer")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write png")
	}
	return nil
}

// PlotObserver saves a PNG of each successful fit.
type PlotObserver struct {
	Path   string
	Width  vg.Length
	Height vg.Length
}

// NewPlotObserver returns an observer writing to path at the default size.
func NewPlotObserver(path string) *PlotObserver {
	return &PlotObserver{Path: path, Width: DefaultWidth, Height: DefaultHeight}
}

// Name implements app.Observer.
func (o *PlotObserver) Name() string { return "plot" }

// OnFit implements app.Observer.
func (o *PlotObserver) OnFit(_ context.Context, report app.FitReport) (err error) {
	if ext := strings.ToLower(filepath.Ext(o.Path)); ext != ".png" {
		return errors.NewValidationError("output.plot", "must be a .png path", o.Path)
	}

	f, err := os.Create(o.Path)
	if err != nil {
		return errors.Wrapf(err, "create %s", o.Path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", o.Path)
		}
	}()

	return Render(f, report.Samples, report.Params, o.Width, o.Height)
}

var _ app.Observer = (*PlotObserver)(nil)
