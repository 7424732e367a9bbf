// Package probe drives a running yoda-taller service with a batch of
// names and summarizes how each comparison came out.
package probe

import (
	"errors"
	"time"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Names   []string      // Names to compare with Yoda
	Workers int           // Number of concurrent requests
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every answer
}

// Validation errors.
var (
	ErrNoNames       = errors.New("no names to probe")
	ErrBadWorkers    = errors.New("workers must be positive")
	ErrBadTimeout    = errors.New("timeout must be positive")
	ErrEmptyBaseURL  = errors.New("base url is empty")
	ErrUnhealthy     = errors.New("service is not healthy")
	ErrProbeFailures = errors.New("some probes failed")
)

// Validate checks that the config can drive a run.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return ErrEmptyBaseURL
	case len(c.Names) == 0:
		return ErrNoNames
	case c.Workers <= 0:
		return ErrBadWorkers
	case c.Timeout <= 0:
		return ErrBadTimeout
	}
	return nil
}

// Verdict classifies one answer of GET /taller/{name}.
type Verdict string

// Verdicts, one per documented response shape.
const (
	VerdictTaller         Verdict = "taller"
	VerdictNotTaller      Verdict = "not_taller"
	VerdictPersonNotFound Verdict = "person_not_found"
	VerdictHeightUnknown  Verdict = "height_unknown"
	VerdictUnexpected     Verdict = "unexpected"
)

// Result is the outcome of probing one name.
type Result struct {
	Name    string
	Verdict Verdict
	Status  int
	Latency time.Duration
	Err     error
}

// Summary aggregates a probe run.
type Summary struct {
	RunID    string
	Results  []Result
	Counts   map[Verdict]int
	Duration time.Duration
}

// Failed reports how many probes ended as unexpected.
func (s *Summary) Failed() int {
	return s.Counts[VerdictUnexpected]
}
