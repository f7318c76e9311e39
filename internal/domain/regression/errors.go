package regression

import "errors"

// Sentinel kinds for regression errors.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrDegenerateFit    = errors.New("degenerate fit")
)
