// Package dictionary provides clients for third-party dictionary lookup APIs.
// It includes adapters for the Free Dictionary API and the Merriam-Webster
// collegiate API, selected by configuration, with circuit breaker protection.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clinton-lexicon/pkg/config"
)

// ErrDefinitionNotFound indicates the provider answered but has no
// definition for the word. Callers must distinguish this from transport or
// server errors: a not-found entry is retried on a much longer window.
var ErrDefinitionNotFound = errors.New("no definition found")

// Provider looks up the definition of a single word.
type Provider interface {
	// Lookup returns the primary definition for word.
	// Returns ErrDefinitionNotFound when the provider has no entry for it.
	Lookup(ctx context.Context, word string) (string, error)

	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Provider identifiers accepted by DICTIONARY_PROVIDER.
const (
	ProviderFree           = "free"
	ProviderMerriamWebster = "merriam-webster"
)

// ProviderConfig holds configuration for constructing a dictionary provider.
type ProviderConfig struct {
	// Provider selects the lookup API: "free" or "merriam-webster".
	Provider string

	// APIKey authenticates against providers that require one (Merriam-Webster).
	APIKey string

	// BaseURL overrides the provider endpoint, used in tests.
	BaseURL string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// LoadProviderConfig reads provider configuration from environment variables.
//
// Environment variables:
//   - DICTIONARY_PROVIDER: provider name (default: "free")
//   - DICTIONARY_API_KEY: API key for providers that need one
//   - DICTIONARY_TIMEOUT: per-request timeout (default: 10s)
func LoadProviderConfig() ProviderConfig {
	return ProviderConfig{
		Provider: config.GetEnvString("DICTIONARY_PROVIDER", ProviderFree),
		APIKey:   config.GetEnvString("DICTIONARY_API_KEY", ""),
		Timeout:  config.GetEnvDuration("DICTIONARY_TIMEOUT", 10*time.Second),
	}
}

// NewProvider constructs the provider selected by the configuration.
// Returns an error for unknown provider names or missing required keys.
func NewProvider(cfg ProviderConfig, client *http.Client) (Provider, error) {
	if client == nil {
		// A zero timeout would hang the whole run on one stuck call.
		if err := config.ValidatePositiveDuration(cfg.Timeout); err != nil {
			return nil, fmt.Errorf("dictionary timeout: %w", err)
		}
		client = &http.Client{Timeout: cfg.Timeout}
	}

	switch cfg.Provider {
	case ProviderFree:
		return NewFreeDictionary(cfg.BaseURL, client), nil
	case ProviderMerriamWebster:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("DICTIONARY_API_KEY is required for provider %q", cfg.Provider)
		}
		return NewMerriamWebster(cfg.BaseURL, cfg.APIKey, client), nil
	default:
		return nil, fmt.Errorf("unknown dictionary provider %q (expected %s or %s)",
			cfg.Provider, ProviderFree, ProviderMerriamWebster)
	}
}
