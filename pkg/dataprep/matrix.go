package dataprep

import (
	"dskit/pkg/table"

	"gonum.org/v1/gonum/mat"
)

// Matrix copies numeric columns into a rows x len(columns) dense matrix for
// model code. No columns selects every column, which must then all be
// numeric.
func Matrix(t *table.Table, columns ...string) (*mat.Dense, error) {
	if len(columns) == 0 {
		columns = t.Names()
	}
	if t.NumRows() == 0 || len(columns) == 0 {
		return &mat.Dense{}, nil
	}
	m := mat.NewDense(t.NumRows(), len(columns), nil)
	for j, name := range columns {
		x, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		m.SetCol(j, x)
	}
	return m, nil
}
