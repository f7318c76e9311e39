package plot

import "gonum.org/v1/plot/vg"

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(r *Renderer) {
		if dir != "" {
			r.dir = dir
		}
	}
}

// WithFormat sets the image format by file extension (png, svg, pdf, ...).
func WithFormat(ext string) Option {
	return func(r *Renderer) {
		if ext != "" {
			r.format = ext
		}
	}
}

// WithSize sets the canvas size in inches.
func WithSize(widthIn, heightIn float64) Option {
	return func(r *Renderer) {
		if widthIn > 0 && heightIn > 0 {
			r.width = vg.Length(widthIn) * vg.Inch
			r.height = vg.Length(heightIn) * vg.Inch
		}
	}
}

// WithBins sets the histogram bin count.
func WithBins(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.bins = n
		}
	}
}
