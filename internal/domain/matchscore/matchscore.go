// Package matchscore turns an ordered ranking of candidates into bounded
// "match percentages" that depend only on ordinal position.
//
// The curve is lower + (upper-lower) * t^gamma where t runs from 1 for the
// first candidate down to 0 for the last. Rounded values are forced strictly
// downwards on collision and then clamped into [lower, upper], so rankings
// longer than the range can end with ties at the floor.
package matchscore

import (
	"fmt"
	"math"
)

// Default curve.
const (
	DefaultLower = 60
	DefaultUpper = 99
	DefaultGamma = 0.65
)

// ScoreMap maps a candidate id to its match percentage.
type ScoreMap map[string]int

// Lookup returns the score for id and whether the id was part of the ranking.
func (s ScoreMap) Lookup(id string) (int, bool) {
	v, ok := s[id]
	return v, ok
}

// Mapper applies a fixed score curve to rankings. It holds no mutable state
// and is safe for concurrent use.
type Mapper struct {
	lower int
	upper int
	gamma float64
}

// NewMapper builds a Mapper with the default curve adjusted by opts.
func NewMapper(opts ...Option) (*Mapper, error) {
	m := &Mapper{
		lower: DefaultLower,
		upper: DefaultUpper,
		gamma: DefaultGamma,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.lower >= m.upper {
		return nil, fmt.Errorf("%w: lower %d must be below upper %d", ErrInvalidCurve, m.lower, m.upper)
	}
	if math.IsNaN(m.gamma) || math.IsInf(m.gamma, 0) || m.gamma <= 0 {
		return nil, fmt.Errorf("%w: gamma %v must be positive and finite", ErrInvalidCurve, m.gamma)
	}
	return m, nil
}

var defaultMapper = &Mapper{lower: DefaultLower, upper: DefaultUpper, gamma: DefaultGamma}

// Default returns the mapper with the default 60..99 curve.
func Default() *Mapper { return defaultMapper }

// MapScores maps ranking with the default curve.
func MapScores(ranking []string) (ScoreMap, error) {
	return defaultMapper.Map(ranking)
}

// Bounds returns the closed output range.
func (m *Mapper) Bounds() (lower, upper int) { return m.lower, m.upper }

// Map returns one score per candidate of ranking, which is ordered from most
// to least preferred. An empty ranking yields an empty map. Duplicate or
// empty ids are rejected before anything is computed.
func (m *Mapper) Map(ranking []string) (ScoreMap, error) {
	scores, _, err := m.mapCounting(ranking)
	return scores, err
}

// mapCounting is Map that also reports how many entries were clamped up to
// the floor.
func (m *Mapper) mapCounting(ranking []string) (ScoreMap, int, error) {
	if err := validate(ranking); err != nil {
		return nil, 0, err
	}

	n := len(ranking)
	out := make(ScoreMap, n)
	span := float64(m.upper - m.lower)
	prev := math.MaxInt
	floorTies := 0

	for idx, id := range ranking {
		t := 1.0
		if n > 1 {
			t = 1 - float64(idx)/float64(n-1)
		}
		pct := int(math.Round(float64(m.lower) + span*math.Pow(t, m.gamma)))

		if idx > 0 && pct >= prev {
			pct = prev - 1
		}
		// prev tracks the corrected value, not the clamped one.
		prev = pct

		if pct < m.lower {
			floorTies++
		}
		out[id] = clamp(pct, m.lower, m.upper)
	}
	return out, floorTies, nil
}

func validate(ranking []string) error {
	seen := make(map[string]int, len(ranking))
	for idx, id := range ranking {
		if id == "" {
			return fmt.Errorf("%w: position %d", ErrEmptyCandidateID, idx+1)
		}
		if first, ok := seen[id]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateCandidate, id, first+1, idx+1)
		}
		seen[id] = idx
	}
	return nil
}

func clamp(v, lower, upper int) int {
	return min(upper, max(lower, v))
}
