package dataprep

import (
	"math"
	"sort"
	"testing"

	"dskit/pkg/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) *table.Table {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return table.MustNew(table.NewNumeric("id", x))
}

func sorted(x []float64) []float64 {
	out := append([]float64(nil), x...)
	sort.Float64s(out)
	return out
}

func TestTrainTestSplit(t *testing.T) {
	t.Run("Should partition rows by ratio", func(t *testing.T) {
		train, test, err := TrainTestSplit(ids(10), 0.3, 7)

		require.NoError(t, err)
		assert.Equal(t, 7, train.NumRows())
		assert.Equal(t, 3, test.NumRows())
		all := append(floats(t, train, "id"), floats(t, test, "id")...)
		assert.Equal(t, floats(t, ids(10), "id"), sorted(all))
	})

	t.Run("Should be reproducible for a seed", func(t *testing.T) {
		a, _, err := TrainTestSplit(ids(20), 0.25, 42)
		require.NoError(t, err)
		b, _, err := TrainTestSplit(ids(20), 0.25, 42)
		require.NoError(t, err)

		assert.True(t, a.Equal(b))
	})

	t.Run("Should reject ratios outside the unit interval", func(t *testing.T) {
		_, _, err := TrainTestSplit(ids(5), 1.5, 1)
		assert.Error(t, err)
	})
}

func TestShuffle(t *testing.T) {
	t.Run("Should keep every row", func(t *testing.T) {
		out, err := Shuffle(ids(8), 3)

		require.NoError(t, err)
		assert.Equal(t, floats(t, ids(8), "id"), sorted(floats(t, out, "id")))
	})
}

func TestKFold(t *testing.T) {
	t.Run("Should deal indices into balanced folds", func(t *testing.T) {
		folds, err := KFold(10, 3, 1)

		require.NoError(t, err)
		require.Len(t, folds, 3)
		assert.Equal(t, []int{4, 3, 3}, []int{len(folds[0]), len(folds[1]), len(folds[2])})
		var all []int
		for _, f := range folds {
			all = append(all, f...)
		}
		sort.Ints(all)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)
	})

	t.Run("Should reject impossible fold counts", func(t *testing.T) {
		_, err := KFold(3, 4, 1)
		assert.Error(t, err)
		_, err = KFold(3, 1, 1)
		assert.Error(t, err)
	})
}

func TestClipOutliers(t *testing.T) {
	t.Run("Should clip only the named columns", func(t *testing.T) {
		src := table.MustNew(
			table.NewNumeric("a", []float64{1, 2, 3, 4, 100}),
			table.NewNumeric("b", []float64{1, 2, 3, 4, 100}),
		)

		out, err := ClipOutliers(src, []string{"a"}, 0, 75)

		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3, 4, 4}, floats(t, out, "a"))
		assert.Equal(t, []float64{1, 2, 3, 4, 100}, floats(t, out, "b"))
		assert.Equal(t, []float64{1, 2, 3, 4, 100}, floats(t, src, "a"))
	})

	t.Run("Should reject bad percentile ranges", func(t *testing.T) {
		_, err := ClipOutliers(ids(3), []string{"id"}, 90, 10)
		assert.Error(t, err)
	})
}

func TestMatrix(t *testing.T) {
	t.Run("Should copy columns into a dense matrix", func(t *testing.T) {
		src := table.MustNew(
			table.NewNumeric("a", []float64{1, 2}),
			table.NewNumeric("b", []float64{3, math.NaN()}),
			table.NewText("c", []string{"x", "y"}),
		)

		m, err := Matrix(src, "b", "a")

		require.NoError(t, err)
		r, c := m.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 2, c)
		assert.Equal(t, 3.0, m.At(0, 0))
		assert.True(t, math.IsNaN(m.At(1, 0)))
		assert.Equal(t, 2.0, m.At(1, 1))
	})

	t.Run("Should reject text columns", func(t *testing.T) {
		src := table.MustNew(table.NewText("c", []string{"x"}))

		_, err := Matrix(src)

		assert.ErrorIs(t, err, table.ErrKindMismatch)
	})
}
