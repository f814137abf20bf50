package table

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

type gobColumn struct {
	Name    string
	Kind    Kind
	Numbers []float64
	Texts   []string
	Times   []time.Time
}

// GobEncode lets a *Table travel through encoding/gob, NaN included.
func (t *Table) GobEncode() ([]byte, error) {
	cols := make([]gobColumn, len(t.cols))
	for i, c := range t.cols {
		cols[i] = gobColumn{Name: c.name, Kind: c.kind, Numbers: c.nums, Texts: c.texts, Times: c.times}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cols); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Table) GobDecode(b []byte) error {
	var cols []gobColumn
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&cols); err != nil {
		return err
	}
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = Column{name: c.Name, kind: c.Kind}
		switch c.Kind {
		case Numeric:
			out[i].nums = orEmpty(c.Numbers)
		case Text:
			out[i].texts = orEmpty(c.Texts)
		case Datetime:
			out[i].times = orEmpty(c.Times)
		default:
			return fmt.Errorf("column %q: %w", c.Name, &KindError{Value: c.Kind.String()})
		}
	}
	return t.assign(out)
}

// jsonColumn is the column-oriented JSON form. Missing numbers and times are
// encoded as null.
type jsonColumn struct {
	Name   string            `json:"name"`
	Kind   Kind              `json:"kind"`
	Values []json.RawMessage `json:"values"`
}

func (t *Table) MarshalJSON() ([]byte, error) {
	cols := make([]jsonColumn, len(t.cols))
	for i, c := range t.cols {
		jc := jsonColumn{Name: c.name, Kind: c.kind, Values: make([]json.RawMessage, c.Len())}
		for r := range c.Len() {
			var v any
			if !c.IsMissing(r) || c.kind == Text {
				switch c.kind {
				case Numeric:
					v = c.nums[r]
				case Text:
					v = c.texts[r]
				case Datetime:
					v = c.times[r]
				}
			}
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", c.name, r, err)
			}
			jc.Values[r] = raw
		}
		cols[i] = jc
	}
	return json.Marshal(cols)
}

func (t *Table) UnmarshalJSON(b []byte) error {
	var cols []jsonColumn
	if err := json.Unmarshal(b, &cols); err != nil {
		return err
	}
	out := make([]Column, len(cols))
	for i, jc := range cols {
		c := Column{name: jc.Name, kind: jc.Kind}
		for r, raw := range jc.Values {
			null := string(raw) == "null"
			var err error
			switch jc.Kind {
			case Numeric:
				v := math.NaN()
				if !null {
					err = json.Unmarshal(raw, &v)
				}
				c.nums = append(c.nums, v)
			case Text:
				var v string
				if !null {
					err = json.Unmarshal(raw, &v)
				}
				c.texts = append(c.texts, v)
			case Datetime:
				var v time.Time
				if !null {
					err = json.Unmarshal(raw, &v)
				}
				c.times = append(c.times, v)
			default:
				return fmt.Errorf("column %q: %w", jc.Name, &KindError{Value: jc.Kind.String()})
			}
			if err != nil {
				return fmt.Errorf("column %q row %d: %w", jc.Name, r, err)
			}
		}
		out[i] = c
	}
	return t.assign(out)
}

func (t *Table) assign(cols []Column) error {
	nt, err := New(cols...)
	if err != nil {
		return err
	}
	*t = *nt
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
