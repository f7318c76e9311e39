package report

import "errors"

// ErrWriteReport is returned when the results artifact cannot be written.
var ErrWriteReport = errors.New("write report")
