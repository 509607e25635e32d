package result

import "errors"

// Sentinel kinds for result assembly.
var (
	ErrUnknownMember = errors.New("ranking refers to an unknown member")
)
