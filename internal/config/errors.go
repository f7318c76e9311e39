package config

import "errors"

// Configuration failures: ErrLoadConfig when a source cannot be read or
// decoded, ErrInvalidConfig when the merged values fail Validate.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
