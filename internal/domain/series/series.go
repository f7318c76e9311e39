// Package series provides a positional series with an explicit validity mask.
//
// Masking never removes a slot: an excluded value keeps its index so that
// series derived from the same table stay pairable row by row.
package series

import (
	"errors"
	"math"
)

// ErrLengthMismatch is returned when two series that must be aligned differ in length.
var ErrLengthMismatch = errors.New("series length mismatch")

// Masked is an immutable value series with a per-position validity flag.
type Masked struct {
	values []float64
	valid  []bool
}

// New builds a series from raw values; non-finite values start out invalid.
func New(values []float64) Masked {
	m := Masked{
		values: make([]float64, len(values)),
		valid:  make([]bool, len(values)),
	}
	copy(m.values, values)
	for i, v := range values {
		m.valid[i] = !math.IsNaN(v) && !math.IsInf(v, 0)
	}
	return m
}

// Len returns the number of positions, valid or not.
func (m Masked) Len() int { return len(m.values) }

// At returns the value at i and whether it is valid.
func (m Masked) At(i int) (float64, bool) { return m.values[i], m.valid[i] }

// Valid reports whether position i is valid.
func (m Masked) Valid(i int) bool { return m.valid[i] }

// ValidCount returns the number of valid positions.
func (m Masked) ValidCount() int {
	n := 0
	for _, ok := range m.valid {
		if ok {
			n++
		}
	}
	return n
}

// ValidValues returns a copy of the valid values in positional order.
func (m Masked) ValidValues() []float64 {
	out := make([]float64, 0, len(m.values))
	for i, v := range m.values {
		if m.valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Exclude returns a copy where every position for which drop reports true
// is marked invalid. drop is only consulted for currently valid positions.
func (m Masked) Exclude(drop func(i int, v float64) bool) Masked {
	out := m.clone()
	for i, v := range out.values {
		if out.valid[i] && drop(i, v) {
			out.valid[i] = false
		}
	}
	return out
}

// Intersect returns a copy of m that is valid only where other is valid too.
func (m Masked) Intersect(other Masked) (Masked, error) {
	if m.Len() != other.Len() {
		return Masked{}, ErrLengthMismatch
	}
	return m.Exclude(func(i int, _ float64) bool { return !other.valid[i] }), nil
}

// Scale returns a copy with every value multiplied by f; validity is unchanged.
func (m Masked) Scale(f float64) Masked {
	out := m.clone()
	for i := range out.values {
		out.values[i] *= f
	}
	return out
}

// Pairs returns the values of x and y at positions valid in both, in
// positional order.
func Pairs(x, y Masked) (xs, ys []float64, err error) {
	if x.Len() != y.Len() {
		return nil, nil, ErrLengthMismatch
	}
	for i := range x.values {
		if x.valid[i] && y.valid[i] {
			xs = append(xs, x.values[i])
			ys = append(ys, y.values[i])
		}
	}
	return xs, ys, nil
}

func (m Masked) clone() Masked {
	out := Masked{
		values: make([]float64, len(m.values)),
		valid:  make([]bool, len(m.valid)),
	}
	copy(out.values, m.values)
	copy(out.valid, m.valid)
	return out
}
