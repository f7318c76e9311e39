package console_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/fatih/color"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vgsales/internal/adapters/console"
	service "github.com/okian/vgsales/internal/app"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/regression"
)

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	Convey("Given a summary with a fitted and a failed region", t, func() {
		sum := service.Summary{
			RunID:   "run-1",
			Rows:    25,
			Results: "results.txt",
			Regions: []service.RegionOutcome{
				{
					Region: model.Global,
					Result: regression.Result{N: 25, Slope: 0.05, Intercept: 0.1, R: 1, TScore: 42, Verdict: regression.RejectNull},
				},
				{
					Region: model.JP,
					Err:    fmt.Errorf("%w: 0 valid pairs", regression.ErrInsufficientData),
				},
			},
		}

		Convey("When printing", func() {
			var buf bytes.Buffer
			console.PrintSummary(&buf, sum)
			out := buf.String()

			Convey("Then every region and artifact is listed", func() {
				So(out, ShouldContainSubstring, "run run-1")
				So(out, ShouldContainSubstring, "Global Sales")
				So(out, ShouldContainSubstring, "Reject Null Hypothesis")
				So(out, ShouldContainSubstring, "insufficient data")
				So(out, ShouldContainSubstring, "Results: results.txt")
				So(out, ShouldContainSubstring, "1 region(s) failed")
				So(out, ShouldNotContainSubstring, "Workbook:")
			})
		})
	})

	Convey("Given a fitted region", t, func() {
		row := console.Row(service.RegionOutcome{
			Region: model.NA,
			Result: regression.Result{N: 10, Slope: 0.0123456789, TScore: 1.5, Verdict: regression.AcceptNull},
		})

		So(len(row), ShouldEqual, len(console.Headers()))
		So(row[0], ShouldEqual, "NA Sales")
		So(row[2], ShouldEqual, "0.0123457")
		So(row[6], ShouldEqual, "Accept Null Hypothesis")
	})
}
