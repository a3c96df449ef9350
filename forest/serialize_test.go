package forest

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/bgreenwell/ranger/pkg/errors"
)

func stumpSnapshot() *Snapshot {
	return &Snapshot{
		NumVariables: 5,
		DependentVar: 2,
		Seed:         42,
		ClassValues:  []float64{0, 1},
		Trees: []*Tree{
			{
				ChildLeft:  []int{1, 0, 0},
				ChildRight: []int{2, 0, 0},
				SplitVar:   []int{3, 0, 0},
				SplitValue: []float64{1.5, 0, 1},
			},
			{
				ChildLeft:  []int{0},
				ChildRight: []int{0},
				SplitVar:   []int{0},
				SplitValue: []float64{1},
			},
		},
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	clf, err := FromSnapshot(stumpSnapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	var blob bytes.Buffer
	if err := clf.Save(&blob); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadClassifier(bytes.NewReader(blob.Bytes()), 5, 2)
	if err != nil {
		t.Fatalf("LoadClassifier: %v", err)
	}

	if got := loaded.NumVariables(); got != 5 {
		t.Errorf("NumVariables = %d, want 5", got)
	}
	cv := loaded.ClassValues()
	if len(cv) != 2 || cv[0] != 0 || cv[1] != 1 {
		t.Errorf("class values %v, want [0 1]", cv)
	}
	if len(loaded.Trees()) != 2 {
		t.Fatalf("loaded %d trees, want 2", len(loaded.Trees()))
	}
	if !treesEqualArrays(loaded.Trees()[0], clf.Trees()[0]) ||
		!treesEqualArrays(loaded.Trees()[1], clf.Trees()[1]) {
		t.Error("tree arrays differ after round trip")
	}
}

func treesEqualArrays(a, b *Tree) bool {
	if a.NumNodes() != b.NumNodes() {
		return false
	}
	for n := 0; n < a.NumNodes(); n++ {
		if a.ChildLeft[n] != b.ChildLeft[n] ||
			a.ChildRight[n] != b.ChildRight[n] ||
			a.SplitVar[n] != b.SplitVar[n] ||
			a.SplitValue[n] != b.SplitValue[n] {
			return false
		}
	}
	return true
}

func TestSerialize_WrongTreeType(t *testing.T) {
	var blob bytes.Buffer
	if err := binary.Write(&blob, binary.LittleEndian, uint64(5)); err != nil {
		t.Fatal(err)
	}
	// Tag 2 is not a classification forest.
	if err := binary.Write(&blob, binary.LittleEndian, uint32(2)); err != nil {
		t.Fatal(err)
	}

	_, err := LoadClassifier(bytes.NewReader(blob.Bytes()), 5, 2)
	if err == nil {
		t.Fatal("expected an error for wrong tree type")
	}
	var wtt *errors.WrongTreeTypeError
	if !errors.As(err, &wtt) {
		t.Fatalf("expected WrongTreeTypeError, got %v", err)
	}
	if wtt.Got != 2 {
		t.Errorf("reported tag %d, want 2", wtt.Got)
	}
}

func TestSerialize_DependentVarReconciliation(t *testing.T) {
	clf, err := FromSnapshot(stumpSnapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	var blob bytes.Buffer
	if err := clf.Save(&blob); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The prediction data dropped the dependent column (index 2): saved 5
	// variables, current 4. Split variables at or above 2 shift down.
	loaded, err := LoadClassifier(bytes.NewReader(blob.Bytes()), 4, 2)
	if err != nil {
		t.Fatalf("LoadClassifier: %v", err)
	}

	if got := loaded.Trees()[0].SplitVar[0]; got != 2 {
		t.Errorf("split variable 3 should shift to 2, got %d", got)
	}
	// Variables below the dependent index are untouched.
	if got := loaded.Trees()[1].SplitVar[0]; got != 0 {
		t.Errorf("split variable 0 should stay 0, got %d", got)
	}
}

func TestSerialize_TruncatedBlob(t *testing.T) {
	clf, err := FromSnapshot(stumpSnapshot())
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	var blob bytes.Buffer
	if err := clf.Save(&blob); err != nil {
		t.Fatalf("Save: %v", err)
	}

	truncated := blob.Bytes()[:blob.Len()-4]
	if _, err := LoadClassifier(bytes.NewReader(truncated), 5, 2); err == nil {
		t.Error("expected an error for a truncated blob")
	}
}

func TestSerialize_NotFitted(t *testing.T) {
	clf := NewClassifier()
	var blob bytes.Buffer
	if err := clf.Save(&blob); err == nil {
		t.Error("expected an error saving an unfitted forest")
	}
}
