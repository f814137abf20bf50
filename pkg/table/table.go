package table

import (
	"fmt"
)

// Table is an ordered set of uniquely named columns of equal length.
// The zero value is an empty table. Tables are never modified after
// construction: every method that changes the shape returns a new Table.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a table from columns. All columns must have the same length and
// distinct names.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrLengthMismatch, c.name, c.Len(), t.rows)
		}
		t.index[c.name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// MustNew is New for statically known columns; it panics on error.
func MustNew(cols ...Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromRecords builds a table from a header and raw string rows, inferring a
// kind per column. Short rows are padded with missing cells.
func FromRecords(header []string, records [][]string) (*Table, error) {
	cols := make([]Column, len(header))
	for j, name := range header {
		raw := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				raw[i] = rec[j]
			}
		}
		cols[j] = Infer(name, raw)
	}
	return New(cols...)
}

func (t *Table) NumRows() int { return t.rows }
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Columns returns the columns in order.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.cols...)
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks a column up by name.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return t.cols[i], nil
}

// Floats returns a copy of a numeric column's values.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return c.Floats()
}

// WithColumn replaces the column of the same name in place, or appends c.
func (t *Table) WithColumn(c Column) (*Table, error) {
	cols := t.Columns()
	if i, ok := t.index[c.name]; ok {
		cols[i] = c
	} else {
		cols = append(cols, c)
	}
	return New(cols...)
}

// Replace substitutes the named column with cols at the same position.
func (t *Table) Replace(name string, cols ...Column) (*Table, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]Column, 0, len(t.cols)-1+len(cols))
	out = append(out, t.cols[:i]...)
	out = append(out, cols...)
	out = append(out, t.cols[i+1:]...)
	return New(out...)
}

// Drop removes the named columns.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, n)
		}
		drop[n] = struct{}{}
	}
	out := make([]Column, 0, len(t.cols))
	for _, c := range t.cols {
		if _, ok := drop[c.name]; !ok {
			out = append(out, c)
		}
	}
	return New(out...)
}

// Rename maps every column name through fn.
func (t *Table) Rename(fn func(string) string) (*Table, error) {
	out := make([]Column, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Rename(fn(c.name))
	}
	return New(out...)
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	n = min(max(n, 0), t.rows)
	out := make([]Column, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.slice(0, n)
	}
	return MustNew(out...)
}

// Rows returns the given rows in the given order.
func (t *Table) Rows(indices []int) (*Table, error) {
	for _, r := range indices {
		if r < 0 || r >= t.rows {
			return nil, fmt.Errorf("row %d out of range [0,%d)", r, t.rows)
		}
	}
	out := make([]Column, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.pick(indices)
	}
	return New(out...)
}

// Row renders row i as text cells.
func (t *Table) Row(i int) []string {
	rec := make([]string, len(t.cols))
	for j, c := range t.cols {
		rec[j] = c.Cell(i)
	}
	return rec
}

// Records renders the table as a header row followed by one row per record.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, t.rows+1)
	out = append(out, t.Names())
	for i := range t.rows {
		out = append(out, t.Row(i))
	}
	return out
}

// Equal reports whether both tables hold the same columns and values.
func (t *Table) Equal(o *Table) bool {
	if o == nil || len(t.cols) != len(o.cols) || t.rows != o.rows {
		return false
	}
	for i := range t.cols {
		if !t.cols[i].Equal(o.cols[i]) {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%d rows x %d columns)", t.rows, len(t.cols))
}
