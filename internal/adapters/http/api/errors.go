package api

import (
	"errors"
	"net/http"

	service "github.com/okian/oshichecker/internal/app"
	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/matchscore"
	"github.com/okian/oshichecker/internal/domain/meta"
	"github.com/okian/oshichecker/internal/domain/result"
	"github.com/okian/oshichecker/internal/domain/share"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// Error codes of the JSON error body.
const (
	codeBadRequest         = "bad_request"
	codeDuplicateCandidate = "duplicate_candidate"
	codeUnknownMember      = "unknown_member"
	codeUnsupportedLocale  = "unsupported_locale"
	codeShareDebounced     = "share_debounced"
	codeNotFound           = "not_found"
	codeUnavailable        = "unavailable"
	codeInternal           = "internal_error"
)

// classify maps a domain error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, matchscore.ErrDuplicateCandidate):
		return http.StatusUnprocessableEntity, codeDuplicateCandidate
	case errors.Is(err, matchscore.ErrEmptyCandidateID), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, result.ErrUnknownMember):
		return http.StatusUnprocessableEntity, codeUnknownMember
	case errors.Is(err, locale.ErrUnsupportedLocale):
		return http.StatusBadRequest, codeUnsupportedLocale
	case errors.Is(err, share.ErrDebounced):
		return http.StatusTooManyRequests, codeShareDebounced
	case errors.Is(err, meta.ErrUnknownPage), errors.Is(err, ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
