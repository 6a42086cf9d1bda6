// Package selector implements the history-aware random template pick.
//
// The selector excludes every id found in the most recent window of the
// selection history, then chooses uniformly among what remains. It owns
// no state beyond its random source; history is supplied by the caller
// and never mutated here.
package selector

import (
	"math/rand"
	"time"

	"github.com/parishav/announcer/internal/errors"
)

// Selector picks template ids at random, avoiding recent repeats
type Selector struct {
	rng *rand.Rand
}

// New creates a selector with a time-seeded random source.
func New() *Selector {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a selector with the given random source. Tests
// inject a fixed seed here to assert behavior without flakiness.
func NewWithRand(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Pick returns one id from ids that does not appear in the last
// min(window, len(history)) entries of history, chosen uniformly at
// random. If no id is eligible, including the case of an empty id set,
// it fails with an EXHAUSTED error; it never falls back to repeating
// an excluded id.
func (s *Selector) Pick(ids []int, history []int, window int) (int, error) {
	if window < 0 {
		window = 0
	}

	cut := len(history) - window
	if cut < 0 {
		cut = 0
	}

	excluded := make(map[int]bool, window)
	for _, id := range history[cut:] {
		excluded[id] = true
	}

	var candidates []int
	for _, id := range ids {
		if !excluded[id] {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		return 0, errors.ExhaustedError()
	}

	return candidates[s.rng.Intn(len(candidates))], nil
}
