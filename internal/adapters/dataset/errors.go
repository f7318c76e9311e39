package dataset

import "errors"

// ErrDataFormat is returned when the input is missing, unreadable, or does
// not match the expected column layout.
var ErrDataFormat = errors.New("data format")
