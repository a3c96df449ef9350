package mongostore

import (
	"testing"

	"github.com/bgreenwell/ranger/forest"
)

func TestDocSnapshotRoundTrip(t *testing.T) {
	s := &forest.Snapshot{
		NumVariables: 3,
		DependentVar: 2,
		Seed:         42,
		ClassValues:  []float64{0, 1},
		Trees: []*forest.Tree{
			{
				ChildLeft:  []int{1, 0, 0},
				ChildRight: []int{2, 0, 0},
				SplitVar:   []int{0, 0, 0},
				SplitValue: []float64{0.5, 0, 1},
			},
		},
	}

	doc := docFromSnapshot("toy", s)
	if doc.Name != "toy" {
		t.Errorf("doc name %q, want toy", doc.Name)
	}

	got := snapshotFromDoc(doc)
	if got.NumVariables != s.NumVariables || got.DependentVar != s.DependentVar || got.Seed != s.Seed {
		t.Errorf("header fields differ: %+v vs %+v", got, s)
	}
	if len(got.Trees) != 1 {
		t.Fatalf("got %d trees, want 1", len(got.Trees))
	}
	for n := 0; n < 3; n++ {
		if got.Trees[0].ChildLeft[n] != s.Trees[0].ChildLeft[n] ||
			got.Trees[0].ChildRight[n] != s.Trees[0].ChildRight[n] ||
			got.Trees[0].SplitVar[n] != s.Trees[0].SplitVar[n] ||
			got.Trees[0].SplitValue[n] != s.Trees[0].SplitValue[n] {
			t.Fatalf("tree node %d differs after document round trip", n)
		}
	}

	// A round-tripped snapshot must reconstruct a prediction-ready forest.
	clf, err := forest.FromSnapshot(got)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if !clf.IsFitted() {
		t.Error("reconstructed forest is not marked fitted")
	}
}
