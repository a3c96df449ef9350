// Package forest implements a classification random forest: an ensemble of
// decision trees grown on bootstrap resamples with randomized per-split
// variable subsets, predicting by majority vote.
//
// The training pass also produces the out-of-bag error estimate, a confusion
// matrix over the out-of-bag predictions and, optionally, Gini-based
// variable importance.
package forest

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/bgreenwell/ranger/pkg/errors"
)

// Dataset provides read-only access to an (N rows x P columns) numeric
// matrix. It is shared without synchronization by all trees of a forest.
type Dataset struct {
	m    *mat.Dense
	rows int
	cols int
}

// NewDataset wraps a matrix as a Dataset. If m is not a *mat.Dense its
// contents are copied once up front.
func NewDataset(m mat.Matrix) (*Dataset, error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	dense, ok := m.(*mat.Dense)
	if !ok {
		dense = mat.NewDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dense.Set(i, j, m.At(i, j))
			}
		}
	}

	return &Dataset{m: dense, rows: rows, cols: cols}, nil
}

// Get returns the value at (row, col).
func (d *Dataset) Get(row, col int) float64 {
	return d.m.At(row, col)
}

// Rows returns the number of samples.
func (d *Dataset) Rows() int { return d.rows }

// Cols returns the number of variables including the response column.
func (d *Dataset) Cols() int { return d.cols }

// UniqueValues appends the distinct values taken by column col over the
// given samples to dst, sorted ascending, and returns the extended slice.
// The result is the candidate threshold set for the variable at a node;
// passing dst[:0] reuses the caller's buffer across nodes.
func (d *Dataset) UniqueValues(dst []float64, samples []int, col int) []float64 {
	for _, s := range samples {
		dst = append(dst, d.m.At(s, col))
	}
	sort.Float64s(dst)

	// Compact duplicates in place.
	n := 0
	for i, v := range dst {
		if i == 0 || v != dst[n-1] {
			dst[n] = v
			n++
		}
	}
	return dst[:n]
}

// classTable builds the class-value table for a response column. Class
// values are recorded in first-seen order; classIDs[i] is the position of
// row i's response in classValues.
func classTable(d *Dataset, dependentVar int) (classValues []float64, classIDs []int) {
	classIDs = make([]int, d.rows)
	for i := 0; i < d.rows; i++ {
		value := d.m.At(i, dependentVar)
		id := -1
		for k, cv := range classValues {
			if cv == value {
				id = k
				break
			}
		}
		if id < 0 {
			id = len(classValues)
			classValues = append(classValues, value)
		}
		classIDs[i] = id
	}
	return classValues, classIDs
}
