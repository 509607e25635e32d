package probe

import "errors"

// Sentinel kinds for probe failures.
var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrVerification = errors.New("verification failed")
)
