package dataprep

import (
	"math"

	"dskit/pkg/stats"
	"dskit/pkg/table"
)

// ---------- Simple Imputation Methods ----------

// ImputeMean replaces missing numeric values with the column mean.
func ImputeMean(t *table.Table, column string) (*table.Table, error) {
	return imputeNumeric(t, column, stats.Mean)
}

// ImputeMedian replaces missing numeric values with the column median.
func ImputeMedian(t *table.Table, column string) (*table.Table, error) {
	return imputeNumeric(t, column, stats.Median)
}

// ImputeMode replaces missing values with the most frequent value, the first
// seen on ties. Works on numeric and text columns.
func ImputeMode(t *table.Table, column string) (*table.Table, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if c.Kind() != table.Text {
		return imputeNumeric(t, column, stats.Mode)
	}
	vals, _ := c.Strings()
	present := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			present = append(present, v)
		}
	}
	mode := stats.FirstMode(present)
	return ImputeText(t, column, mode)
}

// ImputeConstant replaces missing numeric values with value.
func ImputeConstant(t *table.Table, column string, value float64) (*table.Table, error) {
	return imputeNumeric(t, column, func([]float64) float64 { return value })
}

// ImputeText replaces empty text values with value.
func ImputeText(t *table.Table, column, value string) (*table.Table, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	vals, err := c.Strings()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if v == "" {
			vals[i] = value
		}
	}
	return t.WithColumn(table.NewText(column, vals))
}

func imputeNumeric(t *table.Table, column string, fill func([]float64) float64) (*table.Table, error) {
	x, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	v := fill(stats.Present(x))
	for i := range x {
		if math.IsNaN(x[i]) {
			x[i] = v
		}
	}
	return t.WithColumn(table.NewNumeric(column, x))
}
