package regression

// Option applies a configuration option to a fit.
type Option func(*settings)

type settings struct {
	critical float64
}

// WithCriticalT overrides the t threshold used by Classify.
func WithCriticalT(t float64) Option {
	return func(s *settings) {
		if t > 0 {
			s.critical = t
		}
	}
}
