package plot_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vgsales/internal/adapters/plot"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/regression"
	"github.com/okian/vgsales/internal/domain/series"
)

func input() plot.ScatterInput {
	critic := []float64{55, 60, 70, math.NaN(), 85, 90, 120}
	user := []float64{50, math.NaN(), 72, 80, 81, 95, 60}
	sales := []float64{0.3, 0.5, 0.9, 1.1, 1.4, 1.6, 2.0}
	return plot.ScatterInput{
		Region: model.EU,
		Critic: series.New(critic),
		User:   series.New(user),
		Sales:  series.New(sales),
		Fit:    regression.Result{Slope: 0.04, Intercept: -1.9},
	}
}

func TestScatter(t *testing.T) {
	ctx := context.Background()

	Convey("Given a renderer writing into a temp dir", t, func() {
		dir := t.TempDir()
		r := plot.NewRenderer(plot.WithDir(dir), plot.WithSize(4, 3))

		Convey("When rendering a region", func() {
			path, err := r.Scatter(ctx, input())

			Convey("Then a PNG named after the region exists", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(dir, "EU_Sales.png"))
				info, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
				So(info.Size(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When rendering as SVG", func() {
			path, err := plot.NewRenderer(plot.WithDir(dir), plot.WithFormat("svg")).Scatter(ctx, input())

			So(err, ShouldBeNil)
			So(filepath.Ext(path), ShouldEqual, ".svg")
		})

		Convey("When the series are misaligned", func() {
			in := input()
			in.Sales = series.New([]float64{1, 2})
			_, err := r.Scatter(ctx, in)

			So(errors.Is(err, plot.ErrRenderPlot), ShouldBeTrue)
		})
	})

	Convey("Given an output directory that does not exist", t, func() {
		r := plot.NewRenderer(plot.WithDir(filepath.Join(t.TempDir(), "nope")))
		_, err := r.Scatter(ctx, input())

		So(errors.Is(err, plot.ErrRenderPlot), ShouldBeTrue)
	})
}

func TestHistogram(t *testing.T) {
	ctx := context.Background()

	Convey("Given masked sales", t, func() {
		dir := t.TempDir()
		r := plot.NewRenderer(plot.WithDir(dir), plot.WithBins(5))

		Convey("When rendering a histogram", func() {
			path, err := r.Histogram(ctx, model.JP, series.New([]float64{0.1, 0.2, 0.2, 0.4, math.NaN(), 1.5}))

			Convey("Then the file is written next to the scatter plot", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, r.HistogramPath(model.JP))
				So(filepath.Base(path), ShouldEqual, "JP_Sales_hist.png")
				_, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When nothing is valid", func() {
			_, err := r.Histogram(ctx, model.JP, series.New([]float64{math.NaN()}))
			So(errors.Is(err, plot.ErrRenderPlot), ShouldBeTrue)
		})
	})
}
