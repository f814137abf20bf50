package table

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		NewNumeric("price", []float64{10, math.NaN(), 30}),
		NewText("city", []string{"Paris", "", "Oslo"}),
		NewDatetime("seen", []time.Time{
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			{},
			time.Date(2023, 12, 1, 8, 30, 0, 0, time.UTC),
		}),
	)
	require.NoError(t, err)
	return tbl
}

func TestNew(t *testing.T) {
	t.Run("Should reject columns of different lengths", func(t *testing.T) {
		_, err := New(NewNumeric("a", []float64{1, 2}), NewNumeric("b", []float64{1}))
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("Should reject duplicate names", func(t *testing.T) {
		_, err := New(NewNumeric("a", []float64{1}), NewText("a", []string{"x"}))
		assert.ErrorIs(t, err, ErrDuplicateColumn)
	})

	t.Run("Should copy the caller's slice", func(t *testing.T) {
		values := []float64{1, 2}
		tbl := MustNew(NewNumeric("a", values))
		values[0] = 99

		got, err := tbl.Floats("a")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, got)
	})
}

func TestInfer(t *testing.T) {
	t.Run("Should infer numeric columns and read missing tokens as NaN", func(t *testing.T) {
		c := Infer("x", []string{"1", "", "2.5", "NA"})

		require.Equal(t, Numeric, c.Kind())
		got, err := c.Floats()
		require.NoError(t, err)
		assert.Equal(t, 1.0, got[0])
		assert.True(t, math.IsNaN(got[1]))
		assert.Equal(t, 2.5, got[2])
		assert.Equal(t, 2, c.Missing())
	})

	t.Run("Should fall back to text when any cell is not a number", func(t *testing.T) {
		c := Infer("x", []string{"1", "two", "NA"})

		require.Equal(t, Text, c.Kind())
		got, err := c.Strings()
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "two", ""}, got)
	})
}

func TestTable_WithColumn(t *testing.T) {
	t.Run("Should append a new column without touching the source table", func(t *testing.T) {
		src := sample(t)
		before := sample(t)

		out, err := src.WithColumn(NewNumeric("qty", []float64{1, 2, 3}))

		require.NoError(t, err)
		assert.Equal(t, []string{"price", "city", "seen", "qty"}, out.Names())
		assert.True(t, src.Equal(before))
	})

	t.Run("Should replace an existing column at its position", func(t *testing.T) {
		out, err := sample(t).WithColumn(NewText("price", []string{"a", "b", "c"}))

		require.NoError(t, err)
		assert.Equal(t, []string{"price", "city", "seen"}, out.Names())
		c, err := out.Column("price")
		require.NoError(t, err)
		assert.Equal(t, Text, c.Kind())
	})

	t.Run("Should reject a column of the wrong length", func(t *testing.T) {
		_, err := sample(t).WithColumn(NewNumeric("qty", []float64{1}))
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})
}

func TestTable_Replace(t *testing.T) {
	t.Run("Should splice columns in place of the named one", func(t *testing.T) {
		out, err := sample(t).Replace("city",
			NewNumeric("city_Paris", []float64{1, 0, 0}),
			NewNumeric("city_Oslo", []float64{0, 0, 1}),
		)

		require.NoError(t, err)
		assert.Equal(t, []string{"price", "city_Paris", "city_Oslo", "seen"}, out.Names())
	})

	t.Run("Should fail for an unknown column", func(t *testing.T) {
		_, err := sample(t).Replace("nope")
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})
}

func TestTable_Shape(t *testing.T) {
	t.Run("Should drop, rename, slice and pick rows", func(t *testing.T) {
		tbl := sample(t)

		dropped, err := tbl.Drop("seen")
		require.NoError(t, err)
		assert.Equal(t, []string{"price", "city"}, dropped.Names())

		renamed, err := tbl.Rename(func(s string) string { return "x_" + s })
		require.NoError(t, err)
		assert.Equal(t, []string{"x_price", "x_city", "x_seen"}, renamed.Names())

		head := tbl.Head(2)
		assert.Equal(t, 2, head.NumRows())
		assert.Equal(t, 3, tbl.Head(10).NumRows())

		picked, err := tbl.Rows([]int{2, 0})
		require.NoError(t, err)
		assert.Equal(t, []string{"30", "Oslo", "2023-12-01T08:30:00Z"}, picked.Row(0))

		_, err = tbl.Rows([]int{3})
		assert.Error(t, err)
	})

	t.Run("Should render records with blanks for missing values", func(t *testing.T) {
		rec := sample(t).Records()

		assert.Equal(t, []string{"price", "city", "seen"}, rec[0])
		assert.Equal(t, []string{"", "", ""}, rec[2])
	})
}

func TestColumn_Accessors(t *testing.T) {
	t.Run("Should refuse to read a column as another kind", func(t *testing.T) {
		c := NewText("name", []string{"a"})

		_, err := c.Floats()

		var mismatch *MismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, Numeric, mismatch.Want)
		assert.ErrorIs(t, err, ErrKindMismatch)
	})
}

func TestKind_Text(t *testing.T) {
	t.Run("Should parse its own names", func(t *testing.T) {
		for _, k := range []Kind{Numeric, Text, Datetime} {
			got, err := ParseKind(k.String())
			require.NoError(t, err)
			assert.Equal(t, k, got)
		}
		_, err := ParseKind("blob")
		assert.Error(t, err)
	})
}

func TestTable_Codecs(t *testing.T) {
	t.Run("Should survive gob with NaN and zero times", func(t *testing.T) {
		src := sample(t)
		var buf bytes.Buffer
		require.NoError(t, gob.NewEncoder(&buf).Encode(src))

		var out Table
		require.NoError(t, gob.NewDecoder(&buf).Decode(&out))

		assert.True(t, src.Equal(&out))
	})

	t.Run("Should survive JSON with nulls for missing values", func(t *testing.T) {
		src := sample(t)
		b, err := json.Marshal(src)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"kind":"numeric"`)
		assert.Contains(t, string(b), "null")

		var out Table
		require.NoError(t, json.Unmarshal(b, &out))

		assert.True(t, src.Equal(&out))
		assert.Equal(t, src.Schema(), out.Schema())
	})
}
