package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"clinton-lexicon/internal/resilience/circuitbreaker"
)

const merriamWebsterBaseURL = "https://dictionaryapi.com/api/v3/references/collegiate/json"

// MerriamWebster implements Provider against the Merriam-Webster collegiate
// API. The API requires an API key. For unknown words it answers 200 with a
// list of spelling suggestions (plain strings) instead of entry objects.
type MerriamWebster struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewMerriamWebster creates a Merriam-Webster collegiate API client.
// An empty baseURL selects the public endpoint.
func NewMerriamWebster(baseURL, apiKey string, client *http.Client) *MerriamWebster {
	if baseURL == "" {
		baseURL = merriamWebsterBaseURL
	}
	return &MerriamWebster{
		baseURL:        baseURL,
		apiKey:         apiKey,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.DictionaryAPIConfig("merriam-webster")),
	}
}

// Name returns the provider identifier.
func (m *MerriamWebster) Name() string { return ProviderMerriamWebster }

// merriamWebsterEntry is the subset of an entry object we consume.
type merriamWebsterEntry struct {
	ShortDef []string `json:"shortdef"`
}

// Lookup fetches the first short definition for word.
func (m *MerriamWebster) Lookup(ctx context.Context, word string) (string, error) {
	result, err := m.circuitBreaker.Execute(func() (interface{}, error) {
		return m.lookup(ctx, word)
	})
	if err != nil {
		return "", err
	}

	outcome := result.(*lookupOutcome)
	if outcome.notFound {
		return "", fmt.Errorf("%q: %w", word, ErrDefinitionNotFound)
	}
	return outcome.definition, nil
}

func (m *MerriamWebster) lookup(ctx context.Context, word string) (*lookupOutcome, error) {
	endpoint := fmt.Sprintf("%s/%s?key=%s",
		m.baseURL, url.PathEscape(strings.ToLower(word)), url.QueryEscape(m.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call merriam-webster API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("merriam-webster API returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// The response is either a list of entry objects or, for unknown words,
	// a list of suggestion strings. Decode into RawMessage to tell them apart.
	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode merriam-webster response: %w", err)
	}
	if len(raw) == 0 {
		return &lookupOutcome{notFound: true}, nil
	}

	var entry merriamWebsterEntry
	if err := json.Unmarshal(raw[0], &entry); err != nil {
		// First element is a suggestion string, not an entry object.
		return &lookupOutcome{notFound: true}, nil
	}
	if len(entry.ShortDef) == 0 || entry.ShortDef[0] == "" {
		return &lookupOutcome{notFound: true}, nil
	}
	return &lookupOutcome{definition: entry.ShortDef[0]}, nil
}
