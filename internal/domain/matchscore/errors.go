package matchscore

import "errors"

// Sentinel kinds for ranking validation. Callers match them with errors.Is.
var (
	ErrDuplicateCandidate = errors.New("duplicate candidate in ranking")
	ErrEmptyCandidateID   = errors.New("empty candidate id in ranking")
	ErrInvalidCurve       = errors.New("invalid score curve")
)
