package dataprep

import (
	"fmt"
	"math"

	"dskit/pkg/table"
)

// categories returns the distinct non-missing cells of c in first-seen order
// and each row's category index (-1 for missing).
func categories(c table.Column) ([]string, []int) {
	unique := map[string]int{}
	var order []string
	codes := make([]int, c.Len())
	for i := range c.Len() {
		if c.IsMissing(i) {
			codes[i] = -1
			continue
		}
		v := c.Cell(i)
		idx, ok := unique[v]
		if !ok {
			idx = len(order)
			unique[v] = idx
			order = append(order, v)
		}
		codes[i] = idx
	}
	return order, codes
}

// OneHotEncode replaces each of columns with one 0/1 indicator column per
// distinct value, named "{column}_{value}", in first-seen order. No level is
// dropped; a missing value yields a row of zeros.
func OneHotEncode(t *table.Table, columns []string) (*table.Table, error) {
	out := t
	for _, name := range columns {
		levels, err := Levels(out, name)
		if err != nil {
			return nil, err
		}
		if out, err = OneHotLevels(out, name, levels); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Levels returns the distinct non-missing values of column in first-seen
// order.
func Levels(t *table.Table, column string) ([]string, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	order, _ := categories(c)
	return order, nil
}

// OneHotLevels replaces column with one indicator column per given level.
// Values outside levels, like missing values, yield a row of zeros.
func OneHotLevels(t *table.Table, column string, levels []string) (*table.Table, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(levels))
	vecs := make([][]float64, len(levels))
	for k, level := range levels {
		index[level] = k
		vecs[k] = make([]float64, c.Len())
	}
	for i := range c.Len() {
		if c.IsMissing(i) {
			continue
		}
		if k, ok := index[c.Cell(i)]; ok {
			vecs[k][i] = 1
		}
	}
	indicators := make([]table.Column, len(levels))
	for k, level := range levels {
		indicators[k] = table.NewNumeric(fmt.Sprintf("%s_%s", column, level), vecs[k])
	}
	return t.Replace(column, indicators...)
}

// LabelEncode replaces column with integer codes in first-seen order and
// returns the mapping. Missing values stay missing.
func LabelEncode(t *table.Table, column string) (*table.Table, map[string]int, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, nil, err
	}
	order, codes := categories(c)
	mapping := make(map[string]int, len(order))
	for i, cat := range order {
		mapping[cat] = i
	}
	vals := make([]float64, len(codes))
	for i, code := range codes {
		if code < 0 {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = float64(code)
	}
	out, err := t.WithColumn(table.NewNumeric(column, vals))
	if err != nil {
		return nil, nil, err
	}
	return out, mapping, nil
}
