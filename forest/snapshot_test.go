package forest

import (
	"bytes"
	"testing"
)

func TestSaveGobLoadGobRoundTrip(t *testing.T) {
	data := noisyLinearMatrix(100)

	clf := NewClassifier(
		WithNumTrees(50),
		WithSeed(42),
		WithNumThreads(1),
	)
	if err := clf.Fit(data, 2); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	var blob bytes.Buffer
	if err := clf.SaveGob(&blob); err != nil {
		t.Fatalf("SaveGob: %v", err)
	}

	loaded, err := LoadGob(&blob)
	if err != nil {
		t.Fatalf("LoadGob: %v", err)
	}

	// The gob snapshot carries the seed, so the loaded forest reproduces
	// tie-breaking without reconfiguration.
	if loaded.Seed() != clf.Seed() {
		t.Errorf("loaded seed %d, want %d", loaded.Seed(), clf.Seed())
	}
	if loaded.NumVariables() != clf.NumVariables() || loaded.DependentVar() != clf.DependentVar() {
		t.Errorf("loaded header (%d, %d), want (%d, %d)",
			loaded.NumVariables(), loaded.DependentVar(), clf.NumVariables(), clf.DependentVar())
	}
	if len(loaded.Trees()) != len(clf.Trees()) {
		t.Fatalf("loaded %d trees, want %d", len(loaded.Trees()), len(clf.Trees()))
	}
	for i := range clf.Trees() {
		if !treesEqual(clf.Trees()[i], loaded.Trees()[i]) {
			t.Fatalf("tree %d differs after gob round trip", i)
		}
	}

	origPreds, err := clf.Predict(data)
	if err != nil {
		t.Fatalf("Predict original: %v", err)
	}
	loadedPreds, err := loaded.Predict(data)
	if err != nil {
		t.Fatalf("Predict loaded: %v", err)
	}
	for i := 0; i < 100; i++ {
		if origPreds.At(i, 0) != loadedPreds.At(i, 0) {
			t.Fatalf("prediction %d differs: %v vs %v", i, origPreds.At(i, 0), loadedPreds.At(i, 0))
		}
	}
}

func TestSaveGob_NotFitted(t *testing.T) {
	var blob bytes.Buffer
	if err := NewClassifier().SaveGob(&blob); err == nil {
		t.Error("expected an error saving an unfitted forest")
	}
}

func TestFromSnapshot_Empty(t *testing.T) {
	if _, err := FromSnapshot(nil); err == nil {
		t.Error("expected an error for a nil snapshot")
	}
	if _, err := FromSnapshot(&Snapshot{}); err == nil {
		t.Error("expected an error for a snapshot without trees")
	}
}
