package workbook_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/vgsales/internal/adapters/workbook"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/regression"
)

func TestExport(t *testing.T) {
	ctx := context.Background()

	Convey("Given one fitted and one failed region", t, func() {
		rows := []workbook.Row{
			{
				Region: model.Global,
				Result: regression.Result{N: 5, Slope: 0.6, Intercept: 2.2, R: 0.5, P: 0.1, StdErr: 0.25, TScore: 2.4, Verdict: regression.RejectNull},
			},
			{
				Region: model.JP,
				Result: regression.Result{N: 1, StdErr: math.NaN()},
				Err:    fmt.Errorf("%w: 1 valid pairs", regression.ErrInsufficientData),
			},
		}
		path := filepath.Join(t.TempDir(), "results.xlsx")

		Convey("When exporting", func() {
			So(workbook.Export(ctx, path, rows), ShouldBeNil)

			Convey("Then the sheet holds a header and a row per region", func() {
				f, err := excelize.OpenFile(path)
				So(err, ShouldBeNil)
				defer f.Close()

				got, err := f.GetRows(workbook.SheetName)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 3)
				So(got[0], ShouldResemble, workbook.Headers())
				So(got[1][0], ShouldEqual, "Global Sales")
				So(got[1][2], ShouldEqual, "0.6")
				So(got[1][8], ShouldEqual, "Reject Null Hypothesis")
				So(got[2][0], ShouldEqual, "JP Sales")
				So(got[2][9], ShouldContainSubstring, "insufficient data")
			})
		})
	})

	Convey("Given an unwritable path", t, func() {
		err := workbook.Export(ctx, filepath.Join(t.TempDir(), "missing", "out.xlsx"), nil)
		So(errors.Is(err, workbook.ErrExport), ShouldBeTrue)
	})
}
