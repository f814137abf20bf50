package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Present returns the non-NaN values of x in order.
func Present(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean is the average of the present values, 0 when there are none.
func Mean(x []float64) float64 {
	x = Present(x)
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Variance is the population variance of the present values.
func Variance(x []float64) float64 {
	x = Present(x)
	if len(x) == 0 {
		return 0
	}
	_, v := stat.PopMeanVariance(x, nil)
	return v
}

func Std(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// MinMax returns the smallest and largest present values.
func MinMax(x []float64) (float64, float64) {
	x = Present(x)
	if len(x) == 0 {
		return 0, 0
	}
	return floats.Min(x), floats.Max(x)
}

func Sum(x []float64) float64 {
	return floats.Sum(Present(x))
}

// sortedPresent is a sorted copy of the present values.
func sortedPresent(x []float64) []float64 {
	out := Present(x)
	sort.Float64s(out)
	return out
}

// Median is the 50th percentile.
func Median(x []float64) float64 {
	return Percentile(x, 50)
}

// Percentile returns the p-th percentile (0..100) of the present values,
// interpolating linearly between the two nearest order statistics.
func Percentile(x []float64, p float64) float64 {
	sorted := sortedPresent(x)
	if len(sorted) == 0 {
		return 0
	}
	pos := min(max(p, 0), 100) / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo == len(sorted)-1 {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Mode returns the most frequent present value; among equally frequent
// values the one appearing first in x wins.
func Mode(x []float64) float64 {
	return FirstMode(Present(x))
}

// FirstMode returns the most frequent element of x, breaking ties by first
// appearance. The zero value is returned for an empty slice.
func FirstMode[T comparable](x []T) T {
	var mode T
	counts := make(map[T]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	best := 0
	for _, v := range x {
		if counts[v] > best {
			mode, best = v, counts[v]
		}
	}
	return mode
}
