// Package report writes regression results to the plain-text results file.
//
// The file is truncated once per run and receives one block per region:
//
//	Global Sales Regression
//	Slope (Million per 1): 0.05
//	Intercept: 0.1
//	R Value: 1.0
//	P Value: 1.2e-30
//	Standard Error: 2.3e-18
//	T Stat: 2.1e+16; Reject Null Hypothesis
package report

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/regression"
)

// Writer appends region blocks to a single results file. It is safe for
// concurrent use, though blocks land in call order.
type Writer struct {
	mu   sync.Mutex
	path string
}

// NewWriter creates a Writer for path. Nothing is touched until Truncate
// or Append is called.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the results file location.
func (w *Writer) Path() string { return w.path }

// Truncate creates the file or empties an existing one.
func (w *Writer) Truncate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	return nil
}

// Append writes the block for region.
func (w *Writer) Append(ctx context.Context, region model.Region, res regression.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	if _, err := f.WriteString(Format(region, res)); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWriteReport, region.Identifier(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	return nil
}

// Format renders one region block, blank line included.
func Format(region model.Region, res regression.Result) string {
	var b strings.Builder
	b.WriteString(region.Label() + " Regression\n")
	b.WriteString("Slope (Million per 1): " + FormatFloat(res.Slope) + "\n")
	b.WriteString("Intercept: " + FormatFloat(res.Intercept) + "\n")
	b.WriteString("R Value: " + FormatFloat(res.R) + "\n")
	b.WriteString("P Value: " + FormatFloat(res.P) + "\n")
	b.WriteString("Standard Error: " + FormatFloat(res.StdErr) + "\n")
	b.WriteString("T Stat: " + FormatFloat(res.TScore) + "; " + string(res.Verdict) + "\n\n")
	return b.String()
}

// FormatFloat prints the shortest decimal that round-trips to v. Integral
// values keep a ".0" suffix; exponent form is used below 1e-4 and from 1e16.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return sci
	}
	if v != 0 && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
