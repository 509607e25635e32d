package matchscore

// Option configures the curve of a Mapper.
type Option func(*Mapper)

// WithBounds sets the closed output range [lower, upper].
func WithBounds(lower, upper int) Option {
	return func(m *Mapper) {
		m.lower = lower
		m.upper = upper
	}
}

// WithGamma sets the concavity exponent of the curve. Values below 1 lift
// the lower ranks; 1 is linear.
func WithGamma(gamma float64) Option {
	return func(m *Mapper) {
		m.gamma = gamma
	}
}
