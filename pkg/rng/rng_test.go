package rng

import (
	"testing"
)

func TestRNG_Determinism(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		if got, want := a.UniformInt(0, 1000), b.UniformInt(0, 1000); got != want {
			t.Fatalf("draw %d: %d != %d for identical seeds", i, got, want)
		}
	}
}

func TestRNG_Derive(t *testing.T) {
	a := Derive(42, 3)
	b := Derive(42, 3)
	c := Derive(42, 4)

	same := true
	differs := false
	for i := 0; i < 50; i++ {
		x, y, z := a.UniformInt(0, 1<<30), b.UniformInt(0, 1<<30), c.UniformInt(0, 1<<30)
		if x != y {
			same = false
		}
		if x != z {
			differs = true
		}
	}
	if !same {
		t.Error("Derive(seed, tree) is not reproducible")
	}
	if !differs {
		t.Error("Derive produced identical streams for different trees")
	}
}

func TestRNG_SampleWithReplacement(t *testing.T) {
	g := New(1)
	sample := g.SampleWithReplacement(100, 10)

	if len(sample) != 100 {
		t.Fatalf("expected 100 draws, got %d", len(sample))
	}
	for _, s := range sample {
		if s < 0 || s >= 10 {
			t.Fatalf("draw %d outside [0, 10)", s)
		}
	}
}

func TestRNG_SampleWithoutReplacement(t *testing.T) {
	g := New(1)
	universe := []int{2, 3, 5, 7, 11, 13, 17}

	sample := g.SampleWithoutReplacement(4, universe)
	if len(sample) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(sample))
	}

	seen := make(map[int]bool)
	inUniverse := make(map[int]bool)
	for _, u := range universe {
		inUniverse[u] = true
	}
	for _, s := range sample {
		if seen[s] {
			t.Fatalf("element %d drawn twice", s)
		}
		seen[s] = true
		if !inUniverse[s] {
			t.Fatalf("element %d not in universe", s)
		}
	}

	// The universe itself must not be reordered.
	want := []int{2, 3, 5, 7, 11, 13, 17}
	for i, u := range universe {
		if u != want[i] {
			t.Fatal("SampleWithoutReplacement mutated the universe")
		}
	}
}

func TestRNG_PickMax(t *testing.T) {
	g := New(1)

	if got := g.PickMax([]int{1, 5, 3}); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}

	// With a tie, both maxima must be reachable.
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		seen[g.PickMax([]int{4, 2, 4})] = true
	}
	if seen[1] {
		t.Error("PickMax returned a non-maximal index")
	}
	if !seen[0] || !seen[2] {
		t.Errorf("tie-break never chose one of the maxima: %v", seen)
	}
}
