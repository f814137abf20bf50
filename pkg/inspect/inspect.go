// Package inspect renders quick terminal views of a table: shape, column
// kinds, missing counts and the first rows.
package inspect

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dskit/pkg/stats"
	"dskit/pkg/table"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ColumnInfo describes one column of a Summary.
type ColumnInfo struct {
	Name    string
	Kind    table.Kind
	NonNull int
	Missing int
}

// Summary is the shape and per-column overview of a table.
type Summary struct {
	Rows    int
	Cols    int
	Columns []ColumnInfo
}

// Info summarizes t.
func Info(t *table.Table) Summary {
	s := Summary{Rows: t.NumRows(), Cols: t.NumCols()}
	for _, c := range t.Columns() {
		missing := c.Missing()
		s.Columns = append(s.Columns, ColumnInfo{
			Name:    c.Name(),
			Kind:    c.Kind(),
			NonNull: c.Len() - missing,
			Missing: missing,
		})
	}
	return s
}

// MissingCounts maps column name to missing-value count.
func (s Summary) MissingCounts() map[string]int {
	out := make(map[string]int, len(s.Columns))
	for _, c := range s.Columns {
		out[c.Name] = c.Missing
	}
	return out
}

func (s Summary) String() string {
	rows := make([][]string, len(s.Columns))
	for i, c := range s.Columns {
		rows[i] = []string{c.Name, c.Kind.String(), strconv.Itoa(c.NonNull), strconv.Itoa(c.Missing)}
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Shape: (%d, %d)", s.Rows, s.Cols)))
	b.WriteString("\n")
	b.WriteString(render([]string{"column", "kind", "non-null", "missing"}, rows))
	return b.String()
}

// Preview renders the first n rows of t (all rows when n < 0).
func Preview(t *table.Table, n int) string {
	if n < 0 {
		n = t.NumRows()
	}
	return render(t.Names(), t.Head(n).Records()[1:])
}

// Describe renders count, mean, std, min, quartiles and max of every numeric
// column, ignoring missing values.
func Describe(t *table.Table) string {
	header := []string{"stat"}
	var cols [][]float64
	for _, c := range t.Columns() {
		x, err := c.Floats()
		if err != nil {
			continue
		}
		header = append(header, c.Name())
		cols = append(cols, stats.Present(x))
	}
	stat := []struct {
		name string
		fn   func([]float64) float64
	}{
		{"count", func(x []float64) float64 { return float64(len(x)) }},
		{"mean", stats.Mean},
		{"std", stats.Std},
		{"min", func(x []float64) float64 { lo, _ := stats.MinMax(x); return lo }},
		{"25%", func(x []float64) float64 { return stats.Percentile(x, 25) }},
		{"50%", stats.Median},
		{"75%", func(x []float64) float64 { return stats.Percentile(x, 75) }},
		{"max", func(x []float64) float64 { _, hi := stats.MinMax(x); return hi }},
	}
	rows := make([][]string, len(stat))
	for i, st := range stat {
		rows[i] = []string{st.name}
		for _, x := range cols {
			cell := "NaN"
			if len(x) > 0 {
				cell = strconv.FormatFloat(st.fn(x), 'g', 6, 64)
			}
			rows[i] = append(rows[i], cell)
		}
	}
	return render(header, rows)
}

func render(header []string, rows [][]string) string {
	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(header...).
		Rows(rows...).
		String()
}

// Time runs fn and reports how long it took.
func Time(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// TimeValue runs fn and returns its result with the elapsed time.
func TimeValue[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}

// FormatElapsed formats d as "label: 1.2345 seconds".
func FormatElapsed(label string, d time.Duration) string {
	return fmt.Sprintf("%s: %.4f seconds", label, d.Seconds())
}

// SafeGet returns m[key], or def when the key is absent.
func SafeGet[K comparable, V any](m map[K]V, key K, def V) V {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}
