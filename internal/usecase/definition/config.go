package definition

import (
	"fmt"
	"time"

	"clinton-lexicon/pkg/config"
)

// Default update-run parameters, used when the environment does not override them.
const (
	DefaultMaxRequests       = 10
	DefaultRequestDelay      = 3 * time.Second
	DefaultNotFoundRetryDays = 90
	DefaultErrorRetryDays    = 7
)

// Config controls a definition-update run.
type Config struct {
	// MaxRequests caps the number of provider calls in a single run.
	MaxRequests int

	// RequestDelay is the minimum interval between consecutive provider calls.
	RequestDelay time.Duration

	// NotFoundRetryDays is how long an entry marked not_found waits before
	// it becomes eligible for another lookup.
	NotFoundRetryDays int

	// ErrorRetryDays is how long an entry marked error waits before it
	// becomes eligible for another lookup.
	ErrorRetryDays int
}

// DefaultConfig returns the standard run parameters.
func DefaultConfig() Config {
	return Config{
		MaxRequests:       DefaultMaxRequests,
		RequestDelay:      DefaultRequestDelay,
		NotFoundRetryDays: DefaultNotFoundRetryDays,
		ErrorRetryDays:    DefaultErrorRetryDays,
	}
}

// LoadConfigFromEnv reads run parameters from environment variables,
// falling back to the defaults.
//
// Environment variables:
//   - UPDATER_MAX_REQUESTS: provider call cap per run (default: 10)
//   - UPDATER_REQUEST_DELAY: delay between provider calls (default: 3s)
//   - UPDATER_NOT_FOUND_RETRY_DAYS: not_found retry window in days (default: 90)
//   - UPDATER_ERROR_RETRY_DAYS: error retry window in days (default: 7)
func LoadConfigFromEnv() Config {
	return Config{
		MaxRequests:       config.GetEnvInt("UPDATER_MAX_REQUESTS", DefaultMaxRequests),
		RequestDelay:      config.GetEnvDuration("UPDATER_REQUEST_DELAY", DefaultRequestDelay),
		NotFoundRetryDays: config.GetEnvInt("UPDATER_NOT_FOUND_RETRY_DAYS", DefaultNotFoundRetryDays),
		ErrorRetryDays:    config.GetEnvInt("UPDATER_ERROR_RETRY_DAYS", DefaultErrorRetryDays),
	}
}

// Validate checks that the run parameters are usable. The upper bounds are
// generous sanity limits, not tuning advice.
func (c Config) Validate() error {
	if err := config.ValidateIntRange(c.MaxRequests, 1, 10000); err != nil {
		return fmt.Errorf("max requests: %w", err)
	}
	if err := config.ValidateNonNegativeDuration(c.RequestDelay); err != nil {
		return fmt.Errorf("request delay: %w", err)
	}
	if err := config.ValidateIntRange(c.NotFoundRetryDays, 1, 3650); err != nil {
		return fmt.Errorf("not-found retry window: %w", err)
	}
	if err := config.ValidateIntRange(c.ErrorRetryDays, 1, 3650); err != nil {
		return fmt.Errorf("error retry window: %w", err)
	}
	return nil
}
