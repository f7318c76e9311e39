package service

import "errors"

// ErrRegionFailed is returned by Run when at least one region did not
// produce a result.
var ErrRegionFailed = errors.New("region failed")
