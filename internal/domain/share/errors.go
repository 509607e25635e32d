package share

import "errors"

// ErrDebounced is returned when a share arrives before the guard re-armed.
var ErrDebounced = errors.New("share guard not re-armed")
