package selector

import (
	"math/rand"
	"testing"

	"github.com/parishav/announcer/internal/errors"
)

func newSeeded(seed int64) *Selector {
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

func TestPickNeverReturnsRecentlySelected(t *testing.T) {
	s := newSeeded(1)
	ids := []int{1, 2, 3}
	history := []int{2}

	// With window 1 only the last entry is excluded; run enough picks
	// to cover the random space
	for i := 0; i < 200; i++ {
		got, err := s.Pick(ids, history, 1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got == 2 {
			t.Fatal("Pick returned an id inside the recency window")
		}
		if got != 1 && got != 3 {
			t.Fatalf("Pick returned unknown id %d", got)
		}
	}
}

func TestPickExclusionWindow(t *testing.T) {
	testCases := []struct {
		name     string
		ids      []int
		history  []int
		window   int
		excluded map[int]bool
	}{
		{
			name:     "window shorter than history",
			ids:      []int{1, 2, 3, 4},
			history:  []int{1, 2, 3},
			window:   2,
			excluded: map[int]bool{2: true, 3: true},
		},
		{
			name:     "window longer than history",
			ids:      []int{1, 2, 3},
			history:  []int{3},
			window:   7,
			excluded: map[int]bool{3: true},
		},
		{
			name:     "zero window excludes nothing",
			ids:      []int{1, 2},
			history:  []int{1, 2, 1, 2},
			window:   0,
			excluded: map[int]bool{},
		},
		{
			name:     "negative window treated as zero",
			ids:      []int{1},
			history:  []int{1},
			window:   -3,
			excluded: map[int]bool{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSeeded(42)
			for i := 0; i < 100; i++ {
				got, err := s.Pick(tc.ids, tc.history, tc.window)
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if tc.excluded[got] {
					t.Fatalf("Pick returned excluded id %d", got)
				}
			}
		})
	}
}

func TestPickExhausted(t *testing.T) {
	s := newSeeded(7)

	ids := []int{1, 2, 3, 4, 5, 6, 7}
	history := []int{1, 2, 3, 4, 5, 6, 7}

	_, err := s.Pick(ids, history, 7)
	if err == nil {
		t.Fatal("Expected EXHAUSTED error")
	}
	if !errors.IsExhausted(err) {
		t.Errorf("Expected EXHAUSTED, got %v", err)
	}
}

func TestPickEmptyIDSetIsExhausted(t *testing.T) {
	s := newSeeded(7)

	// No templates at all is the same failure kind, not a distinct one
	_, err := s.Pick(nil, nil, 1)
	if !errors.IsExhausted(err) {
		t.Errorf("Expected EXHAUSTED for empty id set, got %v", err)
	}
}

func TestPickUniformCoverage(t *testing.T) {
	s := newSeeded(99)
	ids := []int{1, 2, 3, 4, 5}

	seen := make(map[int]int)
	for i := 0; i < 1000; i++ {
		got, err := s.Pick(ids, nil, 0)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		seen[got]++
	}

	// Every candidate should appear; with 1000 draws over 5 ids a
	// missing or wildly skewed bucket indicates a broken selection
	for _, id := range ids {
		if seen[id] < 100 {
			t.Errorf("Id %d drawn only %d times in 1000 picks", id, seen[id])
		}
	}
}

func TestPickDoesNotMutateHistory(t *testing.T) {
	s := newSeeded(3)
	history := []int{1, 2, 3}

	if _, err := s.Pick([]int{1, 2, 3, 4}, history, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []int{1, 2, 3}
	for i := range expected {
		if history[i] != expected[i] {
			t.Fatal("Pick must not mutate the history slice")
		}
	}
}
