package salehook

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/xraph/salehook/delivery"
	"github.com/xraph/salehook/endpoint"
	"github.com/xraph/salehook/observability"
	"github.com/xraph/salehook/payload"
	"github.com/xraph/salehook/ratelimit"
)

// Submitter runs submissions end to end. It keeps no state between runs
// and is safe for concurrent use as long as its RandomSource is.
type Submitter struct {
	config     Config
	resolver   *endpoint.Resolver
	sender     *delivery.Sender
	contract   *payload.Contract
	limiter    *ratelimit.Limiter
	httpClient *http.Client
	clock      func() time.Time
	rng        payload.RandomSource
	logger     *slog.Logger
	metrics    *observability.Metrics
	tracer     *observability.Tracer
}

// Option configures a Submitter.
type Option func(*Submitter) error

// New creates a Submitter with the given options.
func New(opts ...Option) (*Submitter, error) {
	s := &Submitter{
		config: DefaultConfig(),
		clock:  time.Now,
		rng:    globalRand{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	contract, err := payload.NewContract()
	if err != nil {
		return nil, fmt.Errorf("salehook: %w", err)
	}
	s.contract = contract

	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: s.config.RequestTimeout}
	}
	s.resolver = endpoint.NewResolver(s.config.Endpoints)
	s.sender = delivery.NewSender(s.httpClient)
	s.limiter = ratelimit.New(s.config.RateLimit)

	return s, nil
}

// Resolver returns the endpoint resolver built from the configuration.
func (s *Submitter) Resolver() *endpoint.Resolver {
	return s.resolver
}

// Config returns the configuration the Submitter was built with.
func (s *Submitter) Config() Config {
	return s.config
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *Submitter) error {
		if cfg.RequestTimeout < 0 {
			return errors.New("salehook: request timeout must not be negative")
		}
		if cfg.RateLimit < 0 {
			return errors.New("salehook: rate limit must not be negative")
		}
		s.config = cfg
		return nil
	}
}

// WithEndpoints sets the URL overrides of the named targets.
func WithEndpoints(cfg endpoint.Config) Option {
	return func(s *Submitter) error {
		s.config.Endpoints = cfg
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) error {
		if logger == nil {
			return errors.New("salehook: logger must not be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithHTTPClient sets the client used for delivery. It takes precedence
// over Config.RequestTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) error {
		s.httpClient = client
		return nil
	}
}

// WithClock sets the time source used for sale_date and the site-visit date.
func WithClock(clock func() time.Time) Option {
	return func(s *Submitter) error {
		if clock == nil {
			return errors.New("salehook: clock must not be nil")
		}
		s.clock = clock
		return nil
	}
}

// WithRandom sets the source of sale and lead IDs. The Submitter calls it
// from every concurrent Run.
func WithRandom(rng payload.RandomSource) Option {
	return func(s *Submitter) error {
		if rng == nil {
			return errors.New("salehook: random source must not be nil")
		}
		s.rng = rng
		return nil
	}
}

// WithMetrics enables prometheus metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Submitter) error {
		s.metrics = m
		return nil
	}
}

// WithTracer enables OpenTelemetry spans per submission.
func WithTracer(t *observability.Tracer) Option {
	return func(s *Submitter) error {
		s.tracer = t
		return nil
	}
}

// globalRand draws from the math/rand/v2 top-level source, which is safe
// for concurrent use.
type globalRand struct{}

func (globalRand) Int64N(n int64) int64 { return rand.Int64N(n) }
