package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAccuracy(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 1, 1, 0})
	yPred := mat.NewVecDense(4, []float64{0, 1, 0, 0})

	acc, defined, err := Accuracy(yTrue, yPred)
	if err != nil {
		t.Fatalf("Accuracy: %v", err)
	}
	if defined != 4 {
		t.Errorf("defined = %d, want 4", defined)
	}
	if acc != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", acc)
	}
}

func TestAccuracy_SkipsUndefined(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 1, 1, 0})
	yPred := mat.NewVecDense(4, []float64{0, math.NaN(), 1, math.NaN()})

	acc, defined, err := Accuracy(yTrue, yPred)
	if err != nil {
		t.Fatalf("Accuracy: %v", err)
	}
	if defined != 2 {
		t.Errorf("defined = %d, want 2", defined)
	}
	if acc != 1.0 {
		t.Errorf("accuracy = %v, want 1.0", acc)
	}
}

func TestAccuracy_Errors(t *testing.T) {
	if _, _, err := Accuracy(mat.NewVecDense(1, nil), mat.NewVecDense(2, nil)); err == nil {
		t.Error("expected an error for mismatched lengths")
	}
}

func TestErrorRate(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 1, 1, 0})
	yPred := mat.NewVecDense(4, []float64{1, 1, 1, 1})

	rate, defined, err := ErrorRate(yTrue, yPred)
	if err != nil {
		t.Fatalf("ErrorRate: %v", err)
	}
	if defined != 4 {
		t.Errorf("defined = %d, want 4", defined)
	}
	if rate != 0.5 {
		t.Errorf("error rate = %v, want 0.5", rate)
	}
}

func TestConfusionMatrix(t *testing.T) {
	cm := NewConfusionMatrix([]float64{0, 1, 2})

	cm.Add(0, 0)
	cm.Add(0, 0)
	cm.Add(1, 1)
	cm.Add(2, 1)
	cm.Add(1, 2)

	if got := cm.Count(0, 0); got != 2 {
		t.Errorf("Count(0,0) = %d, want 2", got)
	}
	if got := cm.Count(2, 1); got != 1 {
		t.Errorf("Count(2,1) = %d, want 1", got)
	}
	if got := cm.Count(2, 2); got != 0 {
		t.Errorf("Count(2,2) = %d, want 0", got)
	}
	if got := cm.Total(); got != 5 {
		t.Errorf("Total = %d, want 5", got)
	}
	if got := cm.DiagonalSum(); got != 3 {
		t.Errorf("DiagonalSum = %d, want 3", got)
	}
}
