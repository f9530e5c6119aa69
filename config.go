package salehook

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xraph/salehook/endpoint"
)

// Environment variables read by ConfigFromEnv, in addition to the
// endpoint overrides (endpoint.EnvMakeURL, endpoint.EnvN8NURL).
const (
	EnvRequestTimeout = "SALEHOOK_REQUEST_TIMEOUT"
	EnvAddr           = "SALEHOOK_ADDR"
	EnvRateLimit      = "SALEHOOK_RATE_LIMIT"
)

// Config holds the configuration for a Submitter and its HTTP front end.
type Config struct {
	// Endpoints overrides the default URLs of the named targets.
	Endpoints endpoint.Config `json:"endpoints" yaml:"endpoints"`

	// RequestTimeout bounds the HTTP exchange of the default client.
	// Zero means no timeout: the submission waits until the transport
	// returns or fails.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// Addr is the listen address of the HTTP API.
	Addr string `json:"addr" yaml:"addr"`

	// RateLimit is the maximum submissions per second per target. Over
	// budget submissions fail without being sent. 0 means unlimited.
	RateLimit int `json:"rate_limit" yaml:"rate_limit"`
}

// DefaultConfig returns a Config with the built-in endpoint URLs, no
// request timeout and no rate limit.
func DefaultConfig() Config {
	return Config{
		Addr: ":8080",
	}
}

// ConfigFromEnv starts from DefaultConfig and applies the environment
// values found through lookup (typically os.LookupEnv).
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	cfg.Endpoints = endpoint.ConfigFromEnv(lookup)

	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("salehook: %s: %w", EnvRequestTimeout, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("salehook: %s must not be negative", EnvRequestTimeout)
		}
		cfg.RequestTimeout = d
	}

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}

	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("salehook: %s: %w", EnvRateLimit, err)
		}
		if n < 0 {
			return Config{}, fmt.Errorf("salehook: %s must not be negative", EnvRateLimit)
		}
		cfg.RateLimit = n
	}

	return cfg, nil
}
