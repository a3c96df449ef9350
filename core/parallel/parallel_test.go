package parallel

import (
	"sync"
	"testing"
)

func TestEqualRanges(t *testing.T) {
	tests := []struct {
		items   int
		workers int
	}{
		{10, 3},
		{10, 10},
		{3, 10},
		{1, 1},
		{100, 7},
	}

	for _, tt := range tests {
		ranges := EqualRanges(tt.items, tt.workers)

		covered := 0
		prev := 0
		for _, r := range ranges {
			if r.Start != prev {
				t.Fatalf("items=%d workers=%d: range starts at %d, want %d", tt.items, tt.workers, r.Start, prev)
			}
			if r.End <= r.Start {
				t.Fatalf("items=%d workers=%d: empty range %+v", tt.items, tt.workers, r)
			}
			covered += r.End - r.Start
			prev = r.End
		}
		if covered != tt.items {
			t.Errorf("items=%d workers=%d: covered %d items", tt.items, tt.workers, covered)
		}
		if len(ranges) > tt.workers {
			t.Errorf("items=%d workers=%d: %d ranges", tt.items, tt.workers, len(ranges))
		}
	}

	if EqualRanges(0, 4) != nil {
		t.Error("expected nil for zero items")
	}
}

func TestRunRanges(t *testing.T) {
	done := make([]bool, 20)
	var mu sync.Mutex

	RunRanges(EqualRanges(20, 4), func(_ int, r Range) {
		mu.Lock()
		defer mu.Unlock()
		for i := r.Start; i < r.End; i++ {
			done[i] = true
		}
	})

	for i, d := range done {
		if !d {
			t.Errorf("item %d never executed", i)
		}
	}
}

func TestParallelizeWorkers(t *testing.T) {
	var count int64
	var mu sync.Mutex

	ParallelizeWorkers(57, 4, func(start, end int) {
		mu.Lock()
		count += int64(end - start)
		mu.Unlock()
	})

	if count != 57 {
		t.Errorf("expected 57 items processed, got %d", count)
	}
}
