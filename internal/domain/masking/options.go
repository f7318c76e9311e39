package masking

// Option applies a configuration option to the Masker.
type Option func(*Masker)

// WithMinReviewCount sets the review-confidence threshold.
func WithMinReviewCount(n float64) Option {
	return func(m *Masker) {
		if n >= 0 {
			m.minReviewCount = n
		}
	}
}

// WithUserScoreScale sets the factor that brings user scores onto the critic scale.
func WithUserScoreScale(f float64) Option {
	return func(m *Masker) {
		if f > 0 {
			m.userScoreScale = f
		}
	}
}

// WithOutlierSigma sets the half-width of the accepted band in standard deviations.
func WithOutlierSigma(k float64) Option {
	return func(m *Masker) {
		if k > 0 {
			m.sigma = k
		}
	}
}

// WithSampleStdDev switches the band to the n-1 estimator. The default is
// the population (n) estimator, which reproduces the published regression
// results; its band is never wider than the sample one.
func WithSampleStdDev(sample bool) Option {
	return func(m *Masker) {
		m.sampleStdDev = sample
	}
}

// WithYearRange masks rows released outside [minYear, maxYear]. Zero leaves
// a bound open; both zero disables the mask.
func WithYearRange(minYear, maxYear int) Option {
	return func(m *Masker) {
		m.yearMin = minYear
		m.yearMax = maxYear
	}
}
