package matchscore

import (
	"encoding/binary"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Outcome is the detailed result of a memoized mapping.
type Outcome struct {
	Scores    ScoreMap
	FloorTies int
	Cached    bool
}

type memoEntry struct {
	ranking   []string
	scores    ScoreMap
	floorTies int
}

// MemoMapper caches score maps keyed by the identity sequence of the ranking.
// The cache is bounded and evicts the oldest key first. Every call returns a
// fresh map, so callers may mutate what they get.
type MemoMapper struct {
	mapper *Mapper
	size   int

	mu      sync.Mutex
	entries map[uint64]memoEntry
	order   []uint64
}

// NewMemoMapper wraps m with a cache of up to size rankings. A size of zero
// or less disables caching.
func NewMemoMapper(m *Mapper, size int) *MemoMapper {
	if m == nil {
		m = defaultMapper
	}
	return &MemoMapper{
		mapper:  m,
		size:    size,
		entries: make(map[uint64]memoEntry),
	}
}

// Map behaves like Mapper.Map.
func (mm *MemoMapper) Map(ranking []string) (ScoreMap, error) {
	out, err := mm.MapDetailed(ranking)
	if err != nil {
		return nil, err
	}
	return out.Scores, nil
}

// MapDetailed maps ranking and reports whether the cache served it.
func (mm *MemoMapper) MapDetailed(ranking []string) (Outcome, error) {
	if mm.size <= 0 {
		scores, ties, err := mm.mapper.mapCounting(ranking)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Scores: scores, FloorTies: ties}, nil
	}

	key := rankingKey(ranking)

	mm.mu.Lock()
	e, ok := mm.entries[key]
	mm.mu.Unlock()
	if ok && slices.Equal(e.ranking, ranking) {
		return Outcome{Scores: copyScores(e.scores), FloorTies: e.floorTies, Cached: true}, nil
	}

	scores, ties, err := mm.mapper.mapCounting(ranking)
	if err != nil {
		return Outcome{}, err
	}

	mm.mu.Lock()
	if _, exists := mm.entries[key]; !exists {
		if len(mm.order) >= mm.size {
			oldest := mm.order[0]
			mm.order = mm.order[1:]
			delete(mm.entries, oldest)
		}
		mm.order = append(mm.order, key)
	}
	mm.entries[key] = memoEntry{ranking: slices.Clone(ranking), scores: copyScores(scores), floorTies: ties}
	mm.mu.Unlock()

	return Outcome{Scores: scores, FloorTies: ties}, nil
}

// Len returns the number of cached rankings.
func (mm *MemoMapper) Len() int {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return len(mm.entries)
}

// rankingKey hashes the ids with a length prefix each, so ["ab","c"] and
// ["a","bc"] differ.
func rankingKey(ranking []string) uint64 {
	d := xxhash.New()
	var lenBuf [binary.MaxVarintLen64]byte
	for _, id := range ranking {
		n := binary.PutUvarint(lenBuf[:], uint64(len(id)))
		_, _ = d.Write(lenBuf[:n])
		_, _ = d.WriteString(id)
	}
	return d.Sum64()
}

func copyScores(s ScoreMap) ScoreMap {
	out := make(ScoreMap, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
