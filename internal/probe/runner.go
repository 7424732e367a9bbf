package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/yodataller/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Run checks the service health, probes every configured name and returns
// the summary. It fails with ErrProbeFailures when any probe was unexpected.
func Run(ctx context.Context, config *Config) (*Summary, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid probe config: %w", err)
	}

	summary := &Summary{
		RunID:  uuid.NewString(),
		Counts: make(map[Verdict]int),
	}
	ctx = logger.WithFields(ctx, logger.String("runID", summary.RunID))
	start := time.Now()

	logger.Get().Info(ctx, "starting yoda-taller probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("names", len(config.Names)),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
	)

	client := newHTTPClient(config.BaseURL, config.Timeout)
	if err := client.checkHealth(ctx); err != nil {
		return nil, err
	}
	logger.Get().Info(ctx, "service is healthy")

	summary.Results = probeAll(ctx, client, config)
	for _, r := range summary.Results {
		summary.Counts[r.Verdict]++
	}
	summary.Duration = time.Since(start)

	displayFinalStats(ctx, summary)

	if n := summary.Failed(); n > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrProbeFailures, n, len(summary.Results))
	}
	return summary, nil
}

// probeAll queries every name with at most config.Workers requests in
// flight. Results keep the order of config.Names.
func probeAll(ctx context.Context, client *HTTPClient, config *Config) []Result {
	results := make([]Result, len(config.Names))

	var g errgroup.Group
	g.SetLimit(config.Workers)

	var mu sync.Mutex
	done := 0
	for i, name := range config.Names {
		g.Go(func() error {
			res := client.probeOne(ctx, name)
			results[i] = res

			mu.Lock()
			done++
			progress := done
			mu.Unlock()

			if config.Verbose {
				logger.Get().Info(ctx, "probe answered",
					logger.String("name", name),
					logger.String("verdict", string(res.Verdict)),
					logger.Int("status", res.Status),
					logger.Duration("latency", res.Latency),
					logger.Int("done", progress),
				)
			}
			if res.Err != nil {
				logger.Get().Warn(ctx, "probe failed", logger.String("name", name), logger.Error(res.Err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// displayFinalStats logs the run summary.
func displayFinalStats(ctx context.Context, s *Summary) {
	var perSecond float64
	if s.Duration > 0 {
		perSecond = float64(len(s.Results)) / s.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("probed", len(s.Results)),
		logger.Int("taller", s.Counts[VerdictTaller]),
		logger.Int("notTaller", s.Counts[VerdictNotTaller]),
		logger.Int("personNotFound", s.Counts[VerdictPersonNotFound]),
		logger.Int("heightUnknown", s.Counts[VerdictHeightUnknown]),
		logger.Int("unexpected", s.Counts[VerdictUnexpected]),
		logger.Duration("duration", s.Duration),
		logger.Float64("probesPerSecond", perSecond),
	)
}
