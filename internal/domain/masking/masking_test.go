package masking_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/vgsales/internal/domain/masking"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/series"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReviewConfidence(t *testing.T) {
	Convey("Given critic scores with their review counts", t, func() {
		scores := []float64{80, 70, 60, math.NaN(), 90, 85}
		counts := []float64{20, 19, math.NaN(), 50, 100, math.Inf(1)}

		Convey("When masking with the default threshold", func() {
			out, err := masking.ReviewConfidence(scores, counts, 20)

			Convey("Then low, missing and non-finite counts are excluded", func() {
				So(err, ShouldBeNil)
				So(out.Len(), ShouldEqual, 6)
				So(out.Valid(0), ShouldBeTrue)  // exactly at threshold
				So(out.Valid(1), ShouldBeFalse) // below threshold
				So(out.Valid(2), ShouldBeFalse) // missing count
				So(out.Valid(3), ShouldBeFalse) // missing score
				So(out.Valid(4), ShouldBeTrue)
				So(out.Valid(5), ShouldBeFalse)
			})
		})

		Convey("When the columns are misaligned", func() {
			_, err := masking.ReviewConfidence(scores, counts[:2], 20)

			Convey("Then it should fail", func() {
				So(errors.Is(err, series.ErrLengthMismatch), ShouldBeTrue)
			})
		})
	})
}

func TestOutliers(t *testing.T) {
	Convey("Given a sales column with one extreme value", t, func() {
		values := make([]float64, 0, 21)
		for i := 0; i < 20; i++ {
			values = append(values, 1.0)
		}
		values = append(values, 100)

		Convey("When masking outliers at three standard deviations", func() {
			out, band := masking.Outliers(values, 3, false)

			Convey("Then the extreme value is excluded and the rest kept", func() {
				So(out.Valid(20), ShouldBeFalse)
				So(out.ValidCount(), ShouldEqual, 20)
				So(band.High, ShouldBeLessThan, 100)
				So(band.Low, ShouldBeLessThan, 1)
			})
		})
	})

	Convey("Given a constant sales column", t, func() {
		values := []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}

		Convey("When masking outliers", func() {
			out, band := masking.Outliers(values, 3, false)

			Convey("Then nothing is excluded", func() {
				So(band.Degenerate(), ShouldBeTrue)
				So(out.ValidCount(), ShouldEqual, len(values))
			})
		})
	})

	Convey("Given a column with missing values", t, func() {
		values := []float64{1, 2, math.NaN(), 3, 4}

		Convey("When computing the band", func() {
			out, band := masking.Outliers(values, 3, false)

			Convey("Then missing values are invalid and ignored by the band", func() {
				So(out.Valid(2), ShouldBeFalse)
				So(band.Mean, ShouldAlmostEqual, 2.5)
				So(band.StdDev, ShouldAlmostEqual, math.Sqrt(1.25))
			})
		})

		Convey("When the sample estimator is requested", func() {
			_, band := masking.Outliers(values, 3, true)

			Convey("Then the n-1 standard deviation is used", func() {
				So(band.StdDev, ShouldAlmostEqual, math.Sqrt(5.0/3.0))
			})
		})
	})

	Convey("Given an empty column", t, func() {
		out, band := masking.Outliers(nil, 3, false)

		Convey("Then the band is degenerate and nothing is valid", func() {
			So(band.Degenerate(), ShouldBeTrue)
			So(out.ValidCount(), ShouldEqual, 0)
		})
	})
}

func TestYearRange(t *testing.T) {
	Convey("Given release years", t, func() {
		years := []float64{1995, 2005, math.NaN(), 2015}

		Convey("When both bounds are set", func() {
			out := masking.YearRange(years, 2000, 2010)
			So(out.ValidValues(), ShouldResemble, []float64{2005})
		})

		Convey("When only the lower bound is set", func() {
			out := masking.YearRange(years, 2000, 0)
			So(out.ValidValues(), ShouldResemble, []float64{2005, 2015})
		})
	})
}

func TestMasker(t *testing.T) {
	Convey("Given a small table", t, func() {
		tbl := &model.Table{
			Name:        []string{"a", "b", "c", "d"},
			Year:        []float64{2001, 2008, 2012, math.NaN()},
			CriticScore: []float64{70, 80, 90, 60},
			CriticCount: []float64{25, 10, 40, 30},
			UserScore:   []float64{7.5, 8.0, 9.1, 6.0},
			UserCount:   []float64{100, 200, 5, 50},
			GlobalSales: []float64{1, 2, 3, 4},
			NASales:     []float64{1, 1, 1, 1},
			EUSales:     []float64{0, 0, 0, 0},
			JPSales:     []float64{0, 0, 0, 0},
			OtherSales:  []float64{0, 0, 0, 0},
		}
		ctx := context.Background()

		Convey("When masking review scores with defaults", func() {
			scores, err := masking.New().ReviewScores(ctx, tbl)

			Convey("Then critic scores follow critic counts", func() {
				So(err, ShouldBeNil)
				So(scores.Critic.ValidValues(), ShouldResemble, []float64{70, 90, 60})
			})

			Convey("And user scores are rescaled and follow user counts", func() {
				So(scores.User.ValidValues(), ShouldResemble, []float64{75, 80, 60})
			})
		})

		Convey("When a year range is configured", func() {
			m := masking.New(masking.WithYearRange(2005, 2015))
			scores, err := m.ReviewScores(ctx, tbl)
			So(err, ShouldBeNil)
			sales, err := m.Sales(ctx, tbl, model.Global)
			So(err, ShouldBeNil)

			Convey("Then rows outside the range or without a year are masked everywhere", func() {
				So(scores.Critic.ValidValues(), ShouldResemble, []float64{90})
				So(sales.Values.ValidValues(), ShouldResemble, []float64{2, 3})
			})
		})

		Convey("When masking a constant sales column", func() {
			sales, err := masking.New().Sales(ctx, tbl, model.NA)

			Convey("Then nothing is excluded", func() {
				So(err, ShouldBeNil)
				So(sales.Region, ShouldEqual, model.NA)
				So(sales.Band.Degenerate(), ShouldBeTrue)
				So(sales.Values.ValidCount(), ShouldEqual, 4)
			})
		})

		Convey("When options are out of range", func() {
			m := masking.New(
				masking.WithMinReviewCount(-1),
				masking.WithOutlierSigma(0),
				masking.WithUserScoreScale(0),
			)
			scores, err := m.ReviewScores(ctx, tbl)

			Convey("Then defaults are kept", func() {
				So(err, ShouldBeNil)
				So(scores.User.ValidValues(), ShouldResemble, []float64{75, 80, 60})
			})
		})
	})
}
