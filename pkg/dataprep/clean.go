package dataprep

import (
	"strings"

	"dskit/pkg/table"
)

// StripWhitespace trims leading and trailing whitespace from every text
// column.
func StripWhitespace(t *table.Table) (*table.Table, error) {
	out := t
	for _, c := range t.Columns() {
		if c.Kind() != table.Text {
			continue
		}
		vals, _ := c.Strings()
		for i, v := range vals {
			vals[i] = strings.TrimSpace(v)
		}
		var err error
		if out, err = out.WithColumn(table.NewText(c.Name(), vals)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LowercaseColumns lowercases every column name. Names that collide after
// lowercasing are an error.
func LowercaseColumns(t *table.Table) (*table.Table, error) {
	return t.Rename(strings.ToLower)
}

// DropDuplicates keeps the first occurrence of every distinct row.
func DropDuplicates(t *table.Table) (*table.Table, error) {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]int, 0, t.NumRows())
	for i := range t.NumRows() {
		key := strings.Join(t.Row(i), "\x1f")
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keep = append(keep, i)
		}
	}
	return t.Rows(keep)
}
