// Package masking turns raw table columns into analysis-ready masked series.
//
// Two independent policies apply:
//   - review confidence: a critic or user score is excluded when its review
//     count is missing or below a minimum;
//   - outliers: a sales value is excluded when it lies outside
//     [mean - k*sd, mean + k*sd] of its own column.
package masking

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Default masking parameters.
const (
	DefaultMinReviewCount = 20
	DefaultUserScoreScale = 10
	DefaultOutlierSigma   = 3
)

// Band is the accepted interval of an outlier filter.
type Band struct {
	Mean   float64
	StdDev float64
	Low    float64
	High   float64
}

// Degenerate reports whether the band collapsed to a single point (or could
// not be computed), in which case the filter excludes nothing.
func (b Band) Degenerate() bool {
	return b.StdDev == 0 || math.IsNaN(b.StdDev)
}

// Scores are the confidence-masked review scores on a common 0-100 scale.
type Scores struct {
	Critic series.Masked
	User   series.Masked
}

// Sales is a region's outlier-masked sales series with the band used.
type Sales struct {
	Region model.Region
	Values series.Masked
	Band   Band
}

// Masker applies the masking policies with fixed parameters.
type Masker struct {
	minReviewCount float64
	userScoreScale float64
	sigma          float64
	sampleStdDev   bool
	yearMin        int
	yearMax        int
}

// New creates a Masker with the default parameters, adjusted by opts.
func New(opts ...Option) *Masker {
	m := &Masker{
		minReviewCount: DefaultMinReviewCount,
		userScoreScale: DefaultUserScoreScale,
		sigma:          DefaultOutlierSigma,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ReviewScores masks critic and user scores by review confidence. User
// scores are rescaled onto the critic scale.
func (m *Masker) ReviewScores(_ context.Context, t *model.Table) (Scores, error) {
	critic, err := ReviewConfidence(t.CriticScore, t.CriticCount, m.minReviewCount)
	if err != nil {
		return Scores{}, fmt.Errorf("critic score: %w", err)
	}
	user, err := ReviewConfidence(t.UserScore, t.UserCount, m.minReviewCount)
	if err != nil {
		return Scores{}, fmt.Errorf("user score: %w", err)
	}
	user = user.Scale(m.userScoreScale)

	if years, ok := m.years(t); ok {
		if critic, err = critic.Intersect(years); err != nil {
			return Scores{}, fmt.Errorf("critic score: %w", err)
		}
		if user, err = user.Intersect(years); err != nil {
			return Scores{}, fmt.Errorf("user score: %w", err)
		}
	}
	return Scores{Critic: critic, User: user}, nil
}

// Sales masks a region's sales column by the outlier band. The band is
// recomputed on every call.
func (m *Masker) Sales(_ context.Context, t *model.Table, r model.Region) (Sales, error) {
	raw, err := t.Sales(r)
	if err != nil {
		return Sales{}, err
	}
	base := series.New(raw)
	if years, ok := m.years(t); ok {
		if base, err = base.Intersect(years); err != nil {
			return Sales{}, fmt.Errorf("%s: %w", r.Identifier(), err)
		}
	}
	values, band := OutliersOf(base, m.sigma, m.sampleStdDev)
	return Sales{Region: r, Values: values, Band: band}, nil
}

// years returns the release-year mask when a year range is configured.
func (m *Masker) years(t *model.Table) (series.Masked, bool) {
	if m.yearMin == 0 && m.yearMax == 0 {
		return series.Masked{}, false
	}
	return YearRange(t.Year, m.yearMin, m.yearMax), true
}

// ReviewConfidence marks a score invalid when the score itself is missing or
// its paired count is missing or below minCount.
func ReviewConfidence(scores, counts []float64, minCount float64) (series.Masked, error) {
	if len(scores) != len(counts) {
		return series.Masked{}, series.ErrLengthMismatch
	}
	return series.New(scores).Exclude(func(i int, _ float64) bool {
		c := counts[i]
		return math.IsNaN(c) || math.IsInf(c, 0) || c < minCount
	}), nil
}

// Outliers masks values outside mean ± sigma*sd. Non-finite values are
// invalid and do not contribute to the band.
func Outliers(values []float64, sigma float64, sample bool) (series.Masked, Band) {
	return OutliersOf(series.New(values), sigma, sample)
}

// OutliersOf is Outliers over an already masked series; only valid values
// contribute to the band.
func OutliersOf(s series.Masked, sigma float64, sample bool) (series.Masked, Band) {
	band := bandOf(s.ValidValues(), sigma, sample)
	if band.Degenerate() {
		// Collapsed band: exclude nothing.
		return s, band
	}
	return s.Exclude(func(_ int, v float64) bool {
		return v < band.Low || v > band.High
	}), band
}

// bandOf computes mean ± sigma*sd over vals, with sd the population
// estimator unless sample is set.
func bandOf(vals []float64, sigma float64, sample bool) Band {
	n := len(vals)
	if n == 0 {
		return Band{Mean: math.NaN(), StdDev: math.NaN(), Low: math.NaN(), High: math.NaN()}
	}
	mean := stat.Mean(vals, nil)
	sd := 0.0
	// Equal values have no spread even if rounding leaves a tiny variance.
	if n > 1 && floats.Min(vals) != floats.Max(vals) {
		_, variance := stat.MeanVariance(vals, nil)
		if !sample {
			variance = variance * float64(n-1) / float64(n)
		}
		sd = math.Sqrt(variance)
	}
	return Band{
		Mean:   mean,
		StdDev: sd,
		Low:    mean - sigma*sd,
		High:   mean + sigma*sd,
	}
}

// YearRange returns the years as a series valid only within [minYear, maxYear];
// a zero bound is open. Missing years are invalid.
func YearRange(years []float64, minYear, maxYear int) series.Masked {
	return series.New(years).Exclude(func(_ int, y float64) bool {
		if minYear != 0 && y < float64(minYear) {
			return true
		}
		return maxYear != 0 && y > float64(maxYear)
	})
}
