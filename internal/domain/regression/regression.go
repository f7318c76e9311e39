// Package regression fits sales against critic score by ordinary least squares
// and classifies the slope's significance.
package regression

import (
	"fmt"
	"math"

	"github.com/okian/vgsales/internal/domain/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultCriticalT is the decision threshold for the t statistic. It is the
// two-tailed 95% normal critical value applied as a one-sided "greater than"
// test; the rule is kept as an informal heuristic.
const DefaultCriticalT = 1.96

// Verdict is the outcome of the significance test.
type Verdict string

// Verdicts as printed in the report.
const (
	RejectNull Verdict = "Reject Null Hypothesis"
	AcceptNull Verdict = "Accept Null Hypothesis"
)

// Significant reports whether the null hypothesis was rejected.
func (v Verdict) Significant() bool { return v == RejectNull }

// Result holds the fitted line and its statistics.
type Result struct {
	N         int     // jointly valid pairs used
	Slope     float64 // response units per predictor unit
	Intercept float64
	R         float64 // Pearson correlation
	P         float64 // two-tailed p-value of the slope
	StdErr    float64 // standard error of the slope
	TScore    float64 // Slope / StdErr
	Verdict   Verdict
}

// Classify applies the decision rule: reject when t > critical.
func Classify(t, critical float64) Verdict {
	if t > critical {
		return RejectNull
	}
	return AcceptNull
}

// Fit regresses y on x over positions valid in both series.
func Fit(x, y series.Masked, opts ...Option) (Result, error) {
	xs, ys, err := series.Pairs(x, y)
	if err != nil {
		return Result{}, err
	}
	return FitPairs(xs, ys, opts...)
}

// FitPairs regresses ys on xs. On ErrDegenerateFit the returned Result still
// carries N, Slope, Intercept and R when they could be computed.
func FitPairs(xs, ys []float64, opts ...Option) (Result, error) {
	cfg := settings{critical: DefaultCriticalT}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(xs)
	res := Result{N: n}
	if n != len(ys) {
		return res, series.ErrLengthMismatch
	}
	if n < 2 {
		return res, fmt.Errorf("%w: %d valid pairs, need at least 2", ErrInsufficientData, n)
	}
	if floats.Min(xs) == floats.Max(xs) {
		return res, fmt.Errorf("%w: critic score is constant over %d pairs", ErrDegenerateFit, n)
	}

	xMean := stat.Mean(xs, nil)
	sxx := 0.0
	for _, v := range xs {
		d := v - xMean
		sxx += d * d
	}

	if floats.Min(ys) == floats.Max(ys) {
		// Flat response: the line is exact and r is taken as 0.
		res.Slope = 0
		res.Intercept = ys[0]
		res.R = 0
	} else {
		res.Intercept, res.Slope = stat.LinearRegression(xs, ys, nil, false)
		res.R = clamp(stat.Correlation(xs, ys, nil), -1, 1)
	}

	df := n - 2
	if df == 0 {
		return res, fmt.Errorf("%w: two points leave no residual degrees of freedom", ErrDegenerateFit)
	}

	sse := 0.0
	for i, v := range xs {
		e := ys[i] - (res.Intercept + res.Slope*v)
		sse += e * e
	}
	res.StdErr = math.Sqrt(sse / float64(df) / sxx)
	if res.StdErr == 0 || math.IsNaN(res.StdErr) {
		return res, fmt.Errorf("%w: zero standard error over %d pairs", ErrDegenerateFit, n)
	}

	res.TScore = res.Slope / res.StdErr
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	res.P = math.Min(1, 2*t.Survival(math.Abs(res.TScore)))
	res.Verdict = Classify(res.TScore, cfg.critical)
	return res, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
