package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"dskit/pkg/table"

	"github.com/parquet-go/parquet-go"
)

// schemaKey is the key/value metadata entry holding the table schema, so
// column order and kinds survive the round trip.
const schemaKey = "dskit.schema"

// SaveParquet writes t as a flat parquet file with one optional column per
// table column.
func (s *Storage) SaveParquet(t *table.Table, path string) error {
	group := parquet.Group{}
	for _, c := range t.Columns() {
		switch c.Kind() {
		case table.Numeric:
			group[c.Name()] = parquet.Optional(parquet.Leaf(parquet.DoubleType))
		case table.Text:
			group[c.Name()] = parquet.Optional(parquet.String())
		case table.Datetime:
			group[c.Name()] = parquet.Optional(parquet.Timestamp(parquet.Nanosecond))
		}
	}
	schema := parquet.NewSchema("table", group)
	meta, err := json.Marshal(t.Schema())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	// Group fields are ordered by name; leaf indexes follow that order.
	leaf := make(map[string]int, t.NumCols())
	for i, f := range schema.Fields() {
		leaf[f.Name()] = i
	}

	rows := make([]parquet.Row, t.NumRows())
	cols := t.Columns()
	for i := range rows {
		rows[i] = make(parquet.Row, len(cols))
	}
	for _, c := range cols {
		idx := leaf[c.Name()]
		value := valuer(c)
		for i := range rows {
			if c.IsMissing(i) {
				rows[i][idx] = parquet.NullValue().Level(0, 0, idx)
				continue
			}
			rows[i][idx] = value(i).Level(0, 1, idx)
		}
	}

	var buf bytes.Buffer
	writer := parquet.NewWriter(&buf, schema, parquet.KeyValueMetadata(schemaKey, string(meta)))
	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := s.writeFile(path, buf.Bytes()); err != nil {
		return err
	}
	s.saved(Parquet, path, buf.Len())
	return nil
}

// valuer returns the parquet value of each non-missing row of c.
func valuer(c table.Column) func(int) parquet.Value {
	switch c.Kind() {
	case table.Numeric:
		x, _ := c.Floats()
		return func(i int) parquet.Value { return parquet.DoubleValue(x[i]) }
	case table.Datetime:
		ts, _ := c.Times()
		return func(i int) parquet.Value { return parquet.Int64Value(ts[i].UnixNano()) }
	default:
		return func(i int) parquet.Value { return parquet.ByteArrayValue([]byte(c.Cell(i))) }
	}
}

// LoadParquet reads a flat parquet file. Files written by SaveParquet keep
// their column order and kinds; other files map numeric and boolean leaves to
// numeric columns and byte arrays to text.
func (s *Storage) LoadParquet(path string) (*table.Table, error) {
	b, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	f, err := parquet.OpenFile(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}

	fields := f.Schema().Fields()
	kinds := make([]table.Kind, len(fields))
	for i, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("%w: %s: nested column %q", ErrFormat, path, field.Name())
		}
		kinds[i] = leafKind(field.Type().Kind())
	}
	order := make([]int, len(fields))
	for i := range order {
		order[i] = i
	}
	if raw, ok := f.Lookup(schemaKey); ok {
		var schema table.Schema
		if err := json.Unmarshal([]byte(raw), &schema); err != nil {
			return nil, fmt.Errorf("%w: %s: schema metadata: %w", ErrFormat, path, err)
		}
		byName := make(map[string]int, len(fields))
		for i, field := range fields {
			byName[field.Name()] = i
		}
		order = order[:0]
		for _, field := range schema {
			i, ok := byName[field.Name]
			if !ok {
				return nil, fmt.Errorf("%w: %s: schema names unknown column %q", ErrFormat, path, field.Name)
			}
			order = append(order, i)
			kinds[i] = field.Kind
		}
	}

	n := int(f.NumRows())
	nums := make([][]float64, len(fields))
	texts := make([][]string, len(fields))
	times := make([][]time.Time, len(fields))
	for i := range fields {
		switch kinds[i] {
		case table.Numeric:
			nums[i] = make([]float64, 0, n)
		case table.Text:
			texts[i] = make([]string, 0, n)
		case table.Datetime:
			times[i] = make([]time.Time, 0, n)
		}
	}

	reader := parquet.NewReader(f)
	defer reader.Close()
	buf := make([]parquet.Row, 128)
	for {
		count, err := reader.ReadRows(buf)
		for _, row := range buf[:count] {
			for _, v := range row {
				i := v.Column()
				switch kinds[i] {
				case table.Numeric:
					nums[i] = append(nums[i], numericValue(v))
				case table.Text:
					if v.IsNull() {
						texts[i] = append(texts[i], "")
					} else {
						texts[i] = append(texts[i], string(v.ByteArray()))
					}
				case table.Datetime:
					if v.IsNull() {
						times[i] = append(times[i], time.Time{})
					} else {
						times[i] = append(times[i], time.Unix(0, v.Int64()).UTC())
					}
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
		}
	}

	cols := make([]table.Column, 0, len(order))
	for _, i := range order {
		name := fields[i].Name()
		switch kinds[i] {
		case table.Numeric:
			cols = append(cols, table.NewNumeric(name, nums[i]))
		case table.Text:
			cols = append(cols, table.NewText(name, texts[i]))
		case table.Datetime:
			cols = append(cols, table.NewDatetime(name, times[i]))
		}
	}
	t, err := table.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	s.loaded(Parquet, path, "rows", t.NumRows(), "columns", t.NumCols())
	return t, nil
}

func leafKind(k parquet.Kind) table.Kind {
	switch k {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return table.Text
	default:
		return table.Numeric
	}
}

func numericValue(v parquet.Value) float64 {
	if v.IsNull() {
		return math.NaN()
	}
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return 1
		}
		return 0
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	}
	return math.NaN()
}
