package dataprep

import (
	"fmt"
	"math"
	"strings"
	"time"

	"dskit/pkg/table"

	"github.com/araddon/dateparse"
)

// AddDatetimeParts adds "{prefix}_year", "_month", "_day" and "_weekday"
// columns derived from column. Weekday counts from Monday=0 to Sunday=6. An
// empty prefix uses the column name.
//
// Text columns are parsed in UTC; one unparseable value fails the whole call
// with ErrParse. Missing cells give missing parts.
func AddDatetimeParts(t *table.Table, column, prefix string) (*table.Table, error) {
	times, err := datetimes(t, column)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = column
	}
	n := len(times)
	year, month, day, weekday := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, ts := range times {
		if ts.IsZero() {
			year[i], month[i], day[i], weekday[i] = math.NaN(), math.NaN(), math.NaN(), math.NaN()
			continue
		}
		year[i] = float64(ts.Year())
		month[i] = float64(ts.Month())
		day[i] = float64(ts.Day())
		weekday[i] = float64((int(ts.Weekday()) + 6) % 7)
	}
	out := t
	for _, c := range []table.Column{
		table.NewNumeric(prefix+"_year", year),
		table.NewNumeric(prefix+"_month", month),
		table.NewNumeric(prefix+"_day", day),
		table.NewNumeric(prefix+"_weekday", weekday),
	} {
		if out, err = out.WithColumn(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseDatetime converts a text column into a datetime column in place.
func ParseDatetime(t *table.Table, column string) (*table.Table, error) {
	times, err := datetimes(t, column)
	if err != nil {
		return nil, err
	}
	return t.WithColumn(table.NewDatetime(column, times))
}

func datetimes(t *table.Table, column string) ([]time.Time, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	switch c.Kind() {
	case table.Datetime:
		return c.Times()
	case table.Text:
		raw, _ := c.Strings()
		times := make([]time.Time, len(raw))
		for i, s := range raw {
			if strings.TrimSpace(s) == "" {
				continue
			}
			ts, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q row %d value %q: %v", ErrParse, column, i, s, err)
			}
			times[i] = ts
		}
		return times, nil
	default:
		return nil, fmt.Errorf("%w: column %q is %s", ErrParse, column, c.Kind())
	}
}

// AddRatio adds numerator / denominator as a new column, by default named
// "{numerator}_over_{denominator}". Rows with a zero denominator get NaN.
func AddRatio(t *table.Table, numerator, denominator, name string) (*table.Table, error) {
	if name == "" {
		name = numerator + "_over_" + denominator
	}
	return combine(t, numerator, denominator, name, func(a, b float64) float64 {
		if b == 0 {
			return math.NaN()
		}
		return a / b
	})
}

// AddProduct adds col1 * col2 as a new column, by default named
// "{col1}_times_{col2}".
func AddProduct(t *table.Table, col1, col2, name string) (*table.Table, error) {
	if name == "" {
		name = col1 + "_times_" + col2
	}
	return combine(t, col1, col2, name, func(a, b float64) float64 { return a * b })
}

// AddLog1p adds log(1+x) of column as "{column}_log1p".
func AddLog1p(t *table.Table, column string) (*table.Table, error) {
	x, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Log1p(v)
	}
	return t.WithColumn(table.NewNumeric(column+"_log1p", out))
}

func combine(t *table.Table, left, right, name string, op func(a, b float64) float64) (*table.Table, error) {
	a, err := t.Floats(left)
	if err != nil {
		return nil, err
	}
	b, err := t.Floats(right)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = op(a[i], b[i])
	}
	return t.WithColumn(table.NewNumeric(name, out))
}
