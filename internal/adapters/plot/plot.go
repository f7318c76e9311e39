// Package plot renders per-region scatter plots with the fitted regression
// line, and optional sales histograms, using gonum/plot.
package plot

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/regression"
	"github.com/okian/vgsales/internal/domain/series"
)

// Axis bounds of the score plots.
const (
	ScoreMin = 0.0
	ScoreMax = 100.0
	LineMin  = 1.0
	LineMax  = 100.0
)

var userColor = color.RGBA{R: 220, G: 20, B: 20, A: 255} //nolint:gochecknoglobals // palette

// ScatterInput is everything needed to draw one region's plot.
type ScatterInput struct {
	Region model.Region
	Critic series.Masked
	User   series.Masked
	Sales  series.Masked
	Fit    regression.Result
}

// Renderer writes plot images into a directory.
type Renderer struct {
	dir    string
	format string
	width  vg.Length
	height vg.Length
	bins   int
}

// NewRenderer creates a Renderer writing 6.4x4.8in PNGs to the working directory.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		dir:    ".",
		format: "png",
		width:  6.4 * vg.Inch,
		height: 4.8 * vg.Inch,
		bins:   20,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ScatterPath is where Scatter writes the plot for region.
func (r *Renderer) ScatterPath(region model.Region) string {
	return filepath.Join(r.dir, region.Identifier()+"."+r.format)
}

// HistogramPath is where Histogram writes the plot for region.
func (r *Renderer) HistogramPath(region model.Region) string {
	return filepath.Join(r.dir, region.Identifier()+"_hist."+r.format)
}

// Scatter plots critic and user scores against sales with the fitted line
// over [LineMin, LineMax]. Points outside the axis bounds are not drawn.
func (r *Renderer) Scatter(ctx context.Context, in ScatterInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	critic, err := points(in.Critic, in.Sales)
	if err != nil {
		return "", fmt.Errorf("%w: %s critic: %w", ErrRenderPlot, in.Region.Identifier(), err)
	}
	user, err := points(in.User, in.Sales)
	if err != nil {
		return "", fmt.Errorf("%w: %s user: %w", ErrRenderPlot, in.Region.Identifier(), err)
	}

	p := plot.New()
	p.Title.Text = "Critic Score/User Score vs. " + in.Region.Label()
	p.X.Label.Text = "Critic Score/User Score"
	p.Y.Label.Text = in.Region.Label() + " (Millions)"

	cs, err := plotter.NewScatter(critic)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderPlot, err)
	}
	cs.GlyphStyle.Color = color.Black
	cs.GlyphStyle.Radius = vg.Points(1)
	cs.GlyphStyle.Shape = draw.CircleGlyph{}

	us, err := plotter.NewScatter(user)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderPlot, err)
	}
	us.GlyphStyle.Color = userColor
	us.GlyphStyle.Radius = vg.Points(1)
	us.GlyphStyle.Shape = draw.CircleGlyph{}

	fit := in.Fit
	line := plotter.NewFunction(func(x float64) float64 { return fit.Intercept + fit.Slope*x })
	line.XMin = LineMin
	line.XMax = LineMax
	line.Samples = 100
	line.Width = vg.Points(1)

	p.Add(cs, us, line)
	p.Legend.Add("critic score", cs)
	p.Legend.Add("user score", us)
	p.Legend.Top = true

	p.X.Min = ScoreMin
	p.X.Max = ScoreMax
	p.Y.Min = 0
	p.Y.Max = yUpper(p.Y.Max, fit)

	path := r.ScatterPath(in.Region)
	if err := p.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRenderPlot, path, err)
	}
	return path, nil
}

// Histogram plots the distribution of the valid sales values.
func (r *Renderer) Histogram(ctx context.Context, region model.Region, sales series.Masked) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	vals := plotter.Values(sales.ValidValues())
	if len(vals) == 0 {
		return "", fmt.Errorf("%w: %s: no valid sales", ErrRenderPlot, region.Identifier())
	}

	p := plot.New()
	p.Title.Text = region.Label() + " Distribution"
	p.X.Label.Text = region.Label() + " (Millions)"
	p.Y.Label.Text = "Titles"

	h, err := plotter.NewHist(vals, r.bins)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderPlot, err)
	}
	p.Add(h)

	path := r.HistogramPath(region)
	if err := p.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRenderPlot, path, err)
	}
	return path, nil
}

// points pairs score and sales positions that are jointly valid and inside
// the plot bounds.
func points(score, sales series.Masked) (plotter.XYs, error) {
	xs, ys, err := series.Pairs(score, sales)
	if err != nil {
		return nil, err
	}
	out := make(plotter.XYs, 0, len(xs))
	for i, x := range xs {
		if x < ScoreMin || x > ScoreMax || ys[i] < 0 {
			continue
		}
		out = append(out, plotter.XY{X: x, Y: ys[i]})
	}
	return out, nil
}

// yUpper extends the data's upper y bound so the fitted line stays visible
// over [LineMin, LineMax]. An empty or non-positive range falls back to 1.
func yUpper(dataMax float64, fit regression.Result) float64 {
	top := dataMax
	if math.IsInf(top, 0) || math.IsNaN(top) {
		top = 0
	}
	for _, x := range []float64{LineMin, LineMax} {
		if y := fit.Intercept + fit.Slope*x; y > top && !math.IsInf(y, 0) {
			top = y
		}
	}
	if top <= 0 {
		return 1
	}
	return top
}
