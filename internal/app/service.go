// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/yodataller/internal/adapters/swapi"
	"github.com/okian/yodataller/internal/domain/model"
	"github.com/okian/yodataller/internal/domain/taller"
	"github.com/okian/yodataller/pkg/logger"
	"github.com/okian/yodataller/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultSwapiBaseURL = "https://swapi.dev"
	defaultSwapiTimeout = 2 * time.Second
)

// Comparison results used as metric labels.
const (
	resultTaller         = "taller"
	resultNotTaller      = "not_taller"
	resultPersonNotFound = "person_not_found"
	resultHeightNotFound = "height_not_found"
	resultUnexpected     = "unexpected"
)

// ErrNotStarted is returned by IsTallerThan before Start succeeded.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the yoda-taller endpoint.
type Service struct {
	mu sync.RWMutex

	// Core components
	client     *swapi.Client
	comparator *taller.Comparator

	// Configuration
	swapiBaseURL string
	swapiTimeout time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSwapiBaseURL sets the root URL of the people search API.
func WithSwapiBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.swapiBaseURL = baseURL
		}
	}
}

// WithSwapiTimeout bounds every people search.
func WithSwapiTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.swapiTimeout = timeout
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		swapiBaseURL: defaultSwapiBaseURL,
		swapiTimeout: defaultSwapiTimeout,
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the SWAPI client and the comparator. It fails if the client
// configuration cannot be used.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting yoda-taller service...")

	client, err := swapi.New(s.swapiBaseURL, s.swapiTimeout)
	if err != nil {
		return fmt.Errorf("build swapi client: %w", err)
	}
	s.client = client
	s.comparator = taller.New(client)

	s.started = true
	s.logger.Info(ctx, "yoda-taller service started",
		logger.String("swapiBaseURL", client.BaseURL()),
		logger.Duration("swapiTimeout", client.Timeout()),
	)

	return nil
}

// Stop releases the SWAPI connection pool.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping yoda-taller service...")

	if s.client != nil {
		s.client.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "yoda-taller service stopped")
}

// IsTallerThan runs one comparison for name. Errors are the taller package
// sentinels (or ErrNotStarted); unexpected causes are logged here.
func (s *Service) IsTallerThan(ctx context.Context, name string) (model.Outcome, error) {
	s.mu.RLock()
	comparator, started := s.comparator, s.started
	s.mu.RUnlock()

	if !started {
		return model.Outcome{}, &taller.UnexpectedError{Cause: ErrNotStarted}
	}

	out, err := comparator.IsTallerThan(ctx, name)
	switch {
	case err == nil:
		if out.Taller {
			metrics.RecordComparison(resultTaller)
		} else {
			metrics.RecordComparison(resultNotTaller)
		}
		s.logger.Debug(ctx, "comparison done",
			logger.String("query", name),
			logger.Bool("taller", out.Taller),
		)
	case errors.Is(err, taller.ErrPersonNotFound):
		metrics.RecordComparison(resultPersonNotFound)
		s.logger.Debug(ctx, "person not found", logger.String("query", name))
	case errors.Is(err, taller.ErrHeightNotFound):
		metrics.RecordComparison(resultHeightNotFound)
		s.logger.Debug(ctx, "height unknown", logger.String("query", name))
	default:
		metrics.RecordComparison(resultUnexpected)
		s.logger.Error(ctx, "comparison failed",
			logger.String("query", name),
			logger.String("cause", swapi.Cause(errors.Unwrap(err))),
			logger.Error(err),
		)
	}
	return out, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":         s.started,
		"swapiBaseURL":    s.swapiBaseURL,
		"swapiTimeoutMs":  s.swapiTimeout.Milliseconds(),
		"referenceHeight": taller.YodaHeight,
		"referencePerson": "Yoda",
	}
}
