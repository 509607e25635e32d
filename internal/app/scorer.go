package service

import (
	"errors"

	"github.com/okian/oshichecker/internal/domain/matchscore"
	"github.com/okian/oshichecker/pkg/metrics"
)

// instrumentedScorer records score map metrics around a MemoMapper.
type instrumentedScorer struct {
	memo *matchscore.MemoMapper
}

func (s *instrumentedScorer) MapDetailed(ranking []string) (matchscore.Outcome, error) {
	out, err := s.memo.MapDetailed(ranking)
	if err != nil {
		metrics.RecordRankingRejected(rejectReason(err))
		return out, err
	}
	if out.Cached {
		metrics.RecordMemoHit()
	} else {
		metrics.RecordMemoMiss()
	}
	metrics.RecordScoreMap(len(ranking), out.FloorTies)
	return out, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, matchscore.ErrDuplicateCandidate):
		return "duplicate"
	case errors.Is(err, matchscore.ErrEmptyCandidateID):
		return "empty_id"
	default:
		return "other"
	}
}
