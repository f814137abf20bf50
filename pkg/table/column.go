package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the semantic type shared by every value of a column.
type Kind uint8

const (
	Numeric Kind = iota + 1
	Text
	Datetime
)

// TimeLayout is used whenever a datetime value is rendered as text.
const TimeLayout = time.RFC3339Nano

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Datetime:
		return "datetime"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	kind, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "numeric":
		return Numeric, nil
	case "text":
		return Text, nil
	case "datetime":
		return Datetime, nil
	}
	return 0, &KindError{Value: s}
}

// Column is a named, single-kind sequence of values. Missing values are NaN
// for numeric columns, "" for text and the zero time for datetime columns.
// A Column never exposes its backing slices, so columns can be shared
// between tables.
type Column struct {
	name  string
	kind  Kind
	nums  []float64
	texts []string
	times []time.Time
}

// NewNumeric copies values into a numeric column.
func NewNumeric(name string, values []float64) Column {
	return Column{name: name, kind: Numeric, nums: append([]float64(nil), values...)}
}

// NewText copies values into a text column.
func NewText(name string, values []string) Column {
	return Column{name: name, kind: Text, texts: append([]string(nil), values...)}
}

// NewDatetime copies values into a datetime column.
func NewDatetime(name string, values []time.Time) Column {
	return Column{name: name, kind: Datetime, times: append([]time.Time(nil), values...)}
}

// missingTokens are the cell spellings read as missing by Infer.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"NaN":  {},
	"nan":  {},
	"null": {},
}

// IsMissingToken reports whether a raw cell should be read as missing.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// Infer builds a column from raw cells: numeric when every non-missing cell
// parses as a float, text otherwise.
func Infer(name string, raw []string) Column {
	nums := make([]float64, len(raw))
	numeric := true
	for i, s := range raw {
		if IsMissingToken(s) {
			nums[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			numeric = false
			break
		}
		nums[i] = v
	}
	if numeric {
		return Column{name: name, kind: Numeric, nums: nums}
	}
	texts := make([]string, len(raw))
	for i, s := range raw {
		if !IsMissingToken(s) {
			texts[i] = s
		}
	}
	return Column{name: name, kind: Text, texts: texts}
}

func (c Column) Name() string { return c.name }
func (c Column) Kind() Kind   { return c.kind }

// Len returns the number of rows.
func (c Column) Len() int {
	switch c.kind {
	case Numeric:
		return len(c.nums)
	case Text:
		return len(c.texts)
	case Datetime:
		return len(c.times)
	}
	return 0
}

// Rename returns the same values under another name.
func (c Column) Rename(name string) Column {
	c.name = name
	return c
}

// Floats returns a copy of the values of a numeric column.
func (c Column) Floats() ([]float64, error) {
	if c.kind != Numeric {
		return nil, c.kindErr(Numeric)
	}
	return append([]float64(nil), c.nums...), nil
}

// Strings returns a copy of the values of a text column.
func (c Column) Strings() ([]string, error) {
	if c.kind != Text {
		return nil, c.kindErr(Text)
	}
	return append([]string(nil), c.texts...), nil
}

// Times returns a copy of the values of a datetime column.
func (c Column) Times() ([]time.Time, error) {
	if c.kind != Datetime {
		return nil, c.kindErr(Datetime)
	}
	return append([]time.Time(nil), c.times...), nil
}

// IsMissing reports whether row i holds the missing marker.
func (c Column) IsMissing(i int) bool {
	switch c.kind {
	case Numeric:
		return math.IsNaN(c.nums[i])
	case Text:
		return c.texts[i] == ""
	case Datetime:
		return c.times[i].IsZero()
	}
	return true
}

// Missing counts missing values.
func (c Column) Missing() int {
	n := 0
	for i := range c.Len() {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Cell renders row i as text. Missing values render as "".
func (c Column) Cell(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	switch c.kind {
	case Numeric:
		return strconv.FormatFloat(c.nums[i], 'g', -1, 64)
	case Text:
		return c.texts[i]
	case Datetime:
		return c.times[i].Format(TimeLayout)
	}
	return ""
}

// Equal compares names, kinds and values. NaN equals NaN and times are
// compared as instants.
func (c Column) Equal(o Column) bool {
	if c.name != o.name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	for i := range c.Len() {
		switch c.kind {
		case Numeric:
			a, b := c.nums[i], o.nums[i]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		case Text:
			if c.texts[i] != o.texts[i] {
				return false
			}
		case Datetime:
			if !c.times[i].Equal(o.times[i]) {
				return false
			}
		}
	}
	return true
}

func (c Column) slice(from, to int) Column {
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case Numeric:
		out.nums = c.nums[from:to:to]
	case Text:
		out.texts = c.texts[from:to:to]
	case Datetime:
		out.times = c.times[from:to:to]
	}
	return out
}

func (c Column) pick(rows []int) Column {
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case Numeric:
		out.nums = make([]float64, len(rows))
		for i, r := range rows {
			out.nums[i] = c.nums[r]
		}
	case Text:
		out.texts = make([]string, len(rows))
		for i, r := range rows {
			out.texts[i] = c.texts[r]
		}
	case Datetime:
		out.times = make([]time.Time, len(rows))
		for i, r := range rows {
			out.times[i] = c.times[r]
		}
	}
	return out
}

func (c Column) kindErr(want Kind) error {
	return &MismatchError{Column: c.name, Want: want, Got: c.kind}
}
