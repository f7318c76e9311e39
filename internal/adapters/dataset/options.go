package dataset

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithHeader tells the loader that the first row holds column names and
// must be skipped.
func WithHeader(has bool) Option {
	return func(l *Loader) {
		l.hasHeader = has
	}
}

// WithNaNValues sets the cell values read as missing in addition to empty
// and unparsable numeric cells.
func WithNaNValues(values ...string) Option {
	return func(l *Loader) {
		l.nanValues = append([]string(nil), values...)
	}
}
