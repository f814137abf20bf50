package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptive(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	t.Run("Should compute population moments", func(t *testing.T) {
		assert.Equal(t, 5.0, Mean(x))
		assert.Equal(t, 4.0, Variance(x))
		assert.Equal(t, 2.0, Std(x))
		assert.Equal(t, 40.0, Sum(x))
	})

	t.Run("Should compute order statistics", func(t *testing.T) {
		lo, hi := MinMax(x)
		assert.Equal(t, 2.0, lo)
		assert.Equal(t, 9.0, hi)
		assert.Equal(t, 4.5, Median(x))
		assert.Equal(t, 4.0, Mode(x))
		assert.Equal(t, 2.0, Percentile(x, 0))
		assert.Equal(t, 9.0, Percentile(x, 100))
		assert.InDelta(t, 4.5, Percentile(x, 50), 1e-12)
	})

	t.Run("Should return zero for empty input", func(t *testing.T) {
		assert.Zero(t, Mean(nil))
		assert.Zero(t, Std(nil))
		assert.Zero(t, Median(nil))
		assert.Zero(t, Percentile(nil, 50))
	})

	t.Run("Should drop NaN values", func(t *testing.T) {
		assert.Equal(t, []float64{1, 3}, Present([]float64{1, math.NaN(), 3}))
	})

	t.Run("Should ignore NaN in every statistic", func(t *testing.T) {
		y := []float64{math.NaN(), 4, 1, math.NaN(), 3, 2}

		assert.Equal(t, 2.5, Mean(y))
		assert.Equal(t, 1.25, Variance(y))
		assert.Equal(t, 2.5, Median(y))
		assert.Equal(t, 10.0, Sum(y))
		assert.InDelta(t, 1.75, Percentile(y, 25), 1e-12)
		lo, hi := MinMax(y)
		assert.Equal(t, []float64{1, 4}, []float64{lo, hi})
	})

	t.Run("Should take the middle value for odd counts", func(t *testing.T) {
		assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	})
}

func TestMode(t *testing.T) {
	t.Run("Should break ties by first appearance", func(t *testing.T) {
		assert.Equal(t, 1.0, Mode([]float64{1, 2, 2, 1}))
		assert.Equal(t, 2.0, Mode([]float64{math.NaN(), 2, 1, 1, 2}))
		assert.Equal(t, "b", FirstMode([]string{"b", "a", "a", "b"}))
	})

	t.Run("Should return the zero value for empty input", func(t *testing.T) {
		assert.Zero(t, Mode([]float64{math.NaN()}))
		assert.Equal(t, "", FirstMode[string](nil))
	})
}

func TestStandardScaler(t *testing.T) {
	t.Run("Should standardize with fitted moments", func(t *testing.T) {
		s := NewStandardScaler()
		s.Fit("x", []float64{1, 2, 3})

		out, err := s.Transform("x", []float64{1, 2, 3})
		require.NoError(t, err)

		sd := math.Sqrt(2.0 / 3.0)
		assert.InDelta(t, -1/sd, out[0], 1e-12)
		assert.InDelta(t, 0, out[1], 1e-12)
		assert.InDelta(t, 1/sd, out[2], 1e-12)
		assert.Equal(t, []string{"x"}, s.Columns)
	})

	t.Run("Should ignore NaN when fitting and keep it when transforming", func(t *testing.T) {
		s := NewStandardScaler()
		s.Fit("x", []float64{1, math.NaN(), 3})

		assert.Equal(t, Moments{Mean: 2, Std: 1}, s.Params["x"])
		out, err := s.Transform("x", []float64{math.NaN()})
		require.NoError(t, err)
		assert.True(t, math.IsNaN(out[0]))
	})

	t.Run("Should scale a constant column to zero", func(t *testing.T) {
		s := NewStandardScaler()
		s.Fit("c", []float64{7, 7, 7})

		out, err := s.Transform("c", []float64{7, 7, 7})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, out)
	})

	t.Run("Should fail for an unfitted column", func(t *testing.T) {
		_, err := NewStandardScaler().Transform("y", []float64{1})
		assert.ErrorIs(t, err, ErrUnfittedColumn)
	})

	t.Run("Should invert a transform", func(t *testing.T) {
		s := NewStandardScaler()
		s.Fit("x", []float64{10, 20, 30})
		scaled, err := s.Transform("x", []float64{10, 20, 30})
		require.NoError(t, err)

		back, err := s.Inverse("x", scaled)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{10, 20, 30}, back, 1e-9)
	})
}

func TestGaussianKDE(t *testing.T) {
	t.Run("Should integrate to about one", func(t *testing.T) {
		x := []float64{-1, 0, 0.5, 1, 2}
		f := GaussianKDE(x, 0)

		area := 0.0
		step := 0.01
		for at := -10.0; at <= 10; at += step {
			area += f(at) * step
		}
		assert.InDelta(t, 1, area, 1e-3)
	})

	t.Run("Should peak near the data", func(t *testing.T) {
		f := GaussianKDE([]float64{0, 0, 0}, 1)
		assert.Greater(t, f(0), f(3))
	})
}

func TestClip(t *testing.T) {
	t.Run("Should clip to percentile bounds and keep NaN", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 100, math.NaN()}

		got := Clip(x, 0, 75)

		assert.Equal(t, []float64{1, 2, 3, 4, 4}, got[:5])
		assert.True(t, math.IsNaN(got[5]))
		assert.Equal(t, 100.0, x[4])
	})

	t.Run("Should copy an all-missing slice", func(t *testing.T) {
		got := Clip([]float64{math.NaN()}, 5, 95)

		require.Len(t, got, 1)
		assert.True(t, math.IsNaN(got[0]))
	})
}
