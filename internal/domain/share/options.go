package share

import "time"

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithDelay sets how long a key stays disarmed after a successful Arm.
func WithDelay(d time.Duration) Option {
	return func(db *Debouncer) {
		if d > 0 {
			db.delay = d
		}
	}
}

// WithMaxKeys bounds the number of tracked keys. Zero or less is unbounded.
func WithMaxKeys(n int) Option {
	return func(db *Debouncer) {
		db.maxKeys = n
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(db *Debouncer) {
		if now != nil {
			db.now = now
		}
	}
}
