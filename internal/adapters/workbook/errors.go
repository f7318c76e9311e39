package workbook

import "errors"

// ErrExport is returned when the workbook cannot be built or saved.
var ErrExport = errors.New("workbook export")
