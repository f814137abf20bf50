package table

// Field names one column and its kind.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema describes the structure of a table.
type Schema []Field

// Schema returns the table's fields in column order.
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.cols))
	for i, c := range t.cols {
		s[i] = Field{Name: c.name, Kind: c.kind}
	}
	return s
}

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
