package stats

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrUnfittedColumn is returned when a scaler is applied to a column it was
// never fit on.
var ErrUnfittedColumn = errors.New("column was not fit")

// Moments are the fitted parameters of one column.
type Moments struct {
	Mean float64
	Std  float64
}

// StandardScaler standardizes named columns to zero mean and unit variance.
// Fields are exported so a fitted scaler can be persisted with encoding/gob.
type StandardScaler struct {
	Columns []string
	Params  map[string]Moments
}

func NewStandardScaler() *StandardScaler {
	return &StandardScaler{Params: make(map[string]Moments)}
}

// Fit records the mean and population standard deviation of the non-NaN
// values of x under name. A zero deviation is stored as 1 so constant
// columns scale to 0.
func (s *StandardScaler) Fit(name string, x []float64) {
	if s.Params == nil {
		s.Params = make(map[string]Moments)
	}
	vals := Present(x)
	m := Moments{Mean: Mean(vals), Std: Std(vals)}
	if m.Std == 0 || math.IsNaN(m.Std) {
		m.Std = 1
	}
	if !slices.Contains(s.Columns, name) {
		s.Columns = append(s.Columns, name)
	}
	s.Params[name] = m
}

// Fitted reports whether name was fit.
func (s *StandardScaler) Fitted(name string) bool {
	_, ok := s.Params[name]
	return ok
}

// Transform returns (x - mean) / std with the parameters fit under name.
// NaN stays NaN.
func (s *StandardScaler) Transform(name string, x []float64) ([]float64, error) {
	m, ok := s.Params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnfittedColumn, name)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - m.Mean) / m.Std
	}
	return out, nil
}

// Inverse maps scaled values back to the original units.
func (s *StandardScaler) Inverse(name string, x []float64) ([]float64, error) {
	m, ok := s.Params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnfittedColumn, name)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v*m.Std + m.Mean
	}
	return out, nil
}
