package plot

import "errors"

// ErrRenderPlot is returned when a plot cannot be built or saved.
var ErrRenderPlot = errors.New("render plot")
