// Package probe drives a running oshichecker server with generated rankings
// and checks every answer against the local score mapper.
package probe

import (
	"time"

	"github.com/okian/oshichecker/pkg/logger"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Rankings      int           // Number of rankings to submit
	MaxCandidates int           // Upper bound of synthetic ranking length
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	Seed          uint64        // Generator seed; zero picks one from the clock
	OutputFile    string        // Optional JSON report of failed cases
	Logger        logger.Logger // Defaults to the global logger
}

// Default configuration values.
const (
	DefaultRankings      = 500
	DefaultMaxCandidates = 120
	DefaultTimeout       = 10 * time.Second
)

func (c *Config) withDefaults() Config {
	out := *c
	if out.Rankings <= 0 {
		out.Rankings = DefaultRankings
	}
	if out.MaxCandidates <= 0 {
		out.MaxCandidates = DefaultMaxCandidates
	}
	if out.Workers <= 0 {
		out.Workers = 1
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Seed == 0 {
		out.Seed = uint64(time.Now().UnixNano())
	}
	if out.Logger == nil {
		out.Logger = logger.Get()
	}
	return out
}

// Case is one generated ranking.
type Case struct {
	ID       int      `json:"id"`
	Ranking  []string `json:"ranking"`
	Catalog  bool     `json:"catalog"`
	ClientID string   `json:"client_id"`
}

// Failure describes a case the server answered wrongly.
type Failure struct {
	Case   Case   `json:"case"`
	Reason string `json:"reason"`
}

// Stats holds probe statistics.
type Stats struct {
	Submitted  int
	Verified   int
	Failed     int
	FloorTies  int
	Debounced  bool
	Failures   []Failure
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Seed       uint64
	Candidates int
}
