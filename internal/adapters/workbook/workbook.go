// Package workbook exports per-region regression results to an XLSX file.
package workbook

import (
	"context"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/regression"
)

// SheetName is the single sheet written by Export.
const SheetName = "Regression"

// Headers is the first row of the sheet.
func Headers() []string {
	return []string{
		"Region", "Pairs", "Slope", "Intercept", "R Value", "P Value",
		"Standard Error", "T Stat", "Verdict", "Error",
	}
}

// Row is one region's outcome. Err is set for regions that failed.
type Row struct {
	Region model.Region
	Result regression.Result
	Err    error
}

// Export writes rows to path, replacing any existing file.
func Export(ctx context.Context, path string, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	for i, h := range Headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "J", 16); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	for i, row := range rows {
		if err := writeRow(f, i+2, row); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrExport, row.Region.Identifier(), err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExport, path, err)
	}
	return nil
}

func writeRow(f *excelize.File, n int, row Row) error {
	res := row.Result
	values := []any{
		row.Region.Label(),
		res.N,
		cellFloat(res.Slope),
		cellFloat(res.Intercept),
		cellFloat(res.R),
		cellFloat(res.P),
		cellFloat(res.StdErr),
		cellFloat(res.TScore),
		string(res.Verdict),
		"",
	}
	if row.Err != nil {
		values[8] = ""
		values[9] = row.Err.Error()
	}
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, n)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// cellFloat leaves non-finite values blank; XLSX has no NaN.
func cellFloat(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}
