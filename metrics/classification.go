// Package metrics provides evaluation metrics for classification results.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bgreenwell/ranger/pkg/errors"
)

// Accuracy returns the fraction of predictions equal to the true labels.
// Entries with a NaN prediction are skipped; they mark undefined
// predictions, not mistakes. The second return value is the number of
// defined entries that were compared.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, 0, errors.NewValidationError("yTrue", "empty vector", n)
	}
	if yPred.Len() != n {
		return 0, 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	defined := 0
	for i := 0; i < n; i++ {
		pred := yPred.AtVec(i)
		if math.IsNaN(pred) {
			continue
		}
		defined++
		if pred == yTrue.AtVec(i) {
			correct++
		}
	}
	if defined == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(defined), defined, nil
}

// ErrorRate returns 1 - Accuracy over the defined predictions.
func ErrorRate(yTrue, yPred *mat.VecDense) (float64, int, error) {
	acc, defined, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, 0, err
	}
	if defined == 0 {
		return 0, 0, nil
	}
	return 1 - acc, defined, nil
}

// ConfusionMatrix is a dense KxK counter keyed by (true class, predicted
// class), with the class values that label each index.
type ConfusionMatrix struct {
	Classes []float64
	Counts  [][]int
}

// NewConfusionMatrix creates an empty confusion matrix over the given class
// values.
func NewConfusionMatrix(classes []float64) *ConfusionMatrix {
	counts := make([][]int, len(classes))
	for i := range counts {
		counts[i] = make([]int, len(classes))
	}
	return &ConfusionMatrix{Classes: classes, Counts: counts}
}

// Add counts one (true, predicted) observation by class index.
func (c *ConfusionMatrix) Add(trueIdx, predIdx int) {
	c.Counts[trueIdx][predIdx]++
}

// Count returns the number of observations with the given true and
// predicted class indices.
func (c *ConfusionMatrix) Count(trueIdx, predIdx int) int {
	return c.Counts[trueIdx][predIdx]
}

// Total returns the number of counted observations.
func (c *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range c.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// DiagonalSum returns the number of correctly classified observations.
func (c *ConfusionMatrix) DiagonalSum() int {
	sum := 0
	for i := range c.Counts {
		sum += c.Counts[i][i]
	}
	return sum
}
