package probe

import (
	"fmt"

	"github.com/okian/oshichecker/internal/domain/matchscore"
)

// verifyScores checks a served score map against the local mapper and the
// curve's invariants. It returns the number of floor ties it saw.
func verifyScores(ranking []string, got map[string]int) (int, error) {
	want, err := matchscore.MapScores(ranking)
	if err != nil {
		return 0, fmt.Errorf("local mapper rejected ranking: %w", err)
	}
	if len(got) != len(ranking) {
		return 0, fmt.Errorf("got %d scores for %d candidates", len(got), len(ranking))
	}

	lower, upper := matchscore.Default().Bounds()
	ties := 0
	for i, id := range ranking {
		v, ok := got[id]
		if !ok {
			return 0, fmt.Errorf("missing score for %q", id)
		}
		if v != want[id] {
			return 0, fmt.Errorf("score of %q is %d, local mapper says %d", id, v, want[id])
		}
		if v < lower || v > upper {
			return 0, fmt.Errorf("score of %q is %d, outside [%d, %d]", id, v, lower, upper)
		}
		if i == 0 && v != upper {
			return 0, fmt.Errorf("first candidate scored %d, want %d", v, upper)
		}
		if i > 0 {
			prev := got[ranking[i-1]]
			switch {
			case v > prev:
				return 0, fmt.Errorf("score rises at position %d: %d after %d", i+1, v, prev)
			case v == prev && v != lower:
				return 0, fmt.Errorf("tie above the floor at position %d: %d", i+1, v)
			case v == prev:
				ties++
			}
		}
	}
	return ties, nil
}
