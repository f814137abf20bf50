package pipeline

import (
	"fmt"
	"strings"

	"dskit/pkg/dataprep"
	"dskit/pkg/stats"
	"dskit/pkg/table"
)

// ScaleStep standardizes columns with parameters learned in Fit.
type ScaleStep struct {
	Columns []string
	Scaler  *stats.StandardScaler
}

func Scale(columns ...string) *ScaleStep {
	return &ScaleStep{Columns: columns}
}

func (s *ScaleStep) Fit(t *table.Table) error {
	scaler, err := dataprep.FitScaler(t, s.Columns)
	if err != nil {
		return err
	}
	s.Scaler = scaler
	return nil
}

func (s *ScaleStep) Transform(t *table.Table) (*table.Table, error) {
	scaler := s.Scaler
	if scaler == nil {
		scaler = stats.NewStandardScaler()
	}
	return dataprep.ApplyScaler(t, s.Columns, scaler)
}

func (s *ScaleStep) String() string { return "scale " + strings.Join(s.Columns, ",") }

// OneHotStep one-hot encodes columns with the levels seen in Fit, so later
// tables get the same indicator columns. Unseen values encode as all zeros.
type OneHotStep struct {
	Columns []string
	Levels  map[string][]string
}

func OneHot(columns ...string) *OneHotStep {
	return &OneHotStep{Columns: columns}
}

func (s *OneHotStep) Fit(t *table.Table) error {
	s.Levels = make(map[string][]string, len(s.Columns))
	for _, name := range s.Columns {
		levels, err := dataprep.Levels(t, name)
		if err != nil {
			return err
		}
		s.Levels[name] = levels
	}
	return nil
}

func (s *OneHotStep) Transform(t *table.Table) (*table.Table, error) {
	out := t
	for _, name := range s.Columns {
		levels, ok := s.Levels[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", dataprep.ErrUnfittedColumn, name)
		}
		var err error
		if out, err = dataprep.OneHotLevels(out, name, levels); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *OneHotStep) String() string { return "onehot " + strings.Join(s.Columns, ",") }

// Func adapts a stateless table function into a step.
type Func struct {
	Name string
	Fn   func(*table.Table) (*table.Table, error)
}

func (f Func) Fit(*table.Table) error { return nil }

func (f Func) Transform(t *table.Table) (*table.Table, error) { return f.Fn(t) }

func (f Func) String() string { return f.Name }

// DatetimeParts adds year, month, day and weekday columns.
func DatetimeParts(column, prefix string) Func {
	return Func{
		Name: "datetime " + column,
		Fn: func(t *table.Table) (*table.Table, error) {
			return dataprep.AddDatetimeParts(t, column, prefix)
		},
	}
}

// Ratio adds numerator/denominator as a new column.
func Ratio(numerator, denominator, name string) Func {
	return Func{
		Name: "ratio " + numerator + "/" + denominator,
		Fn: func(t *table.Table) (*table.Table, error) {
			return dataprep.AddRatio(t, numerator, denominator, name)
		},
	}
}

// Product adds col1*col2 as a new column.
func Product(col1, col2, name string) Func {
	return Func{
		Name: "product " + col1 + "*" + col2,
		Fn: func(t *table.Table) (*table.Table, error) {
			return dataprep.AddProduct(t, col1, col2, name)
		},
	}
}

// Drop removes columns.
func Drop(columns ...string) Func {
	return Func{
		Name: "drop " + strings.Join(columns, ","),
		Fn: func(t *table.Table) (*table.Table, error) {
			return t.Drop(columns...)
		},
	}
}
