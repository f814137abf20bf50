package dataprep

import (
	"fmt"
	"math/rand/v2"

	"dskit/pkg/stats"
	"dskit/pkg/table"
)

func perm(n int, seed uint64) []int {
	return rand.New(rand.NewPCG(seed, seed)).Perm(n)
}

// TrainTestSplit shuffles rows with seed and puts int(n*testRatio) of them in
// test, the rest in train.
func TrainTestSplit(t *table.Table, testRatio float64, seed uint64) (train, test *table.Table, err error) {
	if testRatio < 0 || testRatio > 1 {
		return nil, nil, fmt.Errorf("test ratio %v outside [0,1]", testRatio)
	}
	indices := perm(t.NumRows(), seed)
	nTest := int(float64(len(indices)) * testRatio)
	if test, err = t.Rows(indices[:nTest]); err != nil {
		return nil, nil, err
	}
	if train, err = t.Rows(indices[nTest:]); err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// Shuffle returns the rows of t in a seeded random order.
func Shuffle(t *table.Table, seed uint64) (*table.Table, error) {
	return t.Rows(perm(t.NumRows(), seed))
}

// KFold deals n shuffled row indices into k folds.
func KFold(n, k int, seed uint64) ([][]int, error) {
	if k < 2 || k > n {
		return nil, fmt.Errorf("k=%d folds for %d rows", k, n)
	}
	folds := make([][]int, k)
	for i, idx := range perm(n, seed) {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds, nil
}

// ClipOutliers limits each column to its lower and upper percentiles.
func ClipOutliers(t *table.Table, columns []string, lower, upper float64) (*table.Table, error) {
	if lower < 0 || upper > 100 || lower > upper {
		return nil, fmt.Errorf("invalid percentile range [%v,%v]", lower, upper)
	}
	out := t
	for _, name := range columns {
		x, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		if out, err = out.WithColumn(table.NewNumeric(name, stats.Clip(x, lower, upper))); err != nil {
			return nil, err
		}
	}
	return out, nil
}
