package dataprep

import (
	"fmt"

	"dskit/pkg/stats"
	"dskit/pkg/table"
)

// ScaleNumeric fits a StandardScaler on columns and returns the scaled
// table with the fitted scaler. The result is exactly what ApplyScaler
// produces with the returned scaler.
func ScaleNumeric(t *table.Table, columns []string) (*table.Table, *stats.StandardScaler, error) {
	scaler, err := FitScaler(t, columns)
	if err != nil {
		return nil, nil, err
	}
	out, err := ApplyScaler(t, columns, scaler)
	if err != nil {
		return nil, nil, err
	}
	return out, scaler, nil
}

// FitScaler computes per-column mean and standard deviation.
func FitScaler(t *table.Table, columns []string) (*stats.StandardScaler, error) {
	scaler := stats.NewStandardScaler()
	for _, name := range columns {
		x, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		scaler.Fit(name, x)
	}
	return scaler, nil
}

// ApplyScaler standardizes columns of t with previously fitted parameters.
func ApplyScaler(t *table.Table, columns []string, scaler *stats.StandardScaler) (*table.Table, error) {
	for _, name := range columns {
		if !scaler.Fitted(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnfittedColumn, name)
		}
	}
	out := t
	for _, name := range columns {
		x, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		scaled, err := scaler.Transform(name, x)
		if err != nil {
			return nil, err
		}
		if out, err = out.WithColumn(table.NewNumeric(name, scaled)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
