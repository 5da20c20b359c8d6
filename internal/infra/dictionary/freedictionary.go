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

const freeDictionaryBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// lookupOutcome carries a lookup result through the circuit breaker.
// A not-found answer is a healthy provider response and must not count as a
// breaker failure, so it travels as data rather than as an error.
type lookupOutcome struct {
	definition string
	notFound   bool
}

// FreeDictionary implements Provider against the Free Dictionary API
// (dictionaryapi.dev). The API is keyless and answers HTTP 404 for words it
// does not know.
type FreeDictionary struct {
	baseURL        string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewFreeDictionary creates a Free Dictionary API client.
// An empty baseURL selects the public endpoint.
func NewFreeDictionary(baseURL string, client *http.Client) *FreeDictionary {
	if baseURL == "" {
		baseURL = freeDictionaryBaseURL
	}
	return &FreeDictionary{
		baseURL:        baseURL,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.DictionaryAPIConfig("free-dictionary")),
	}
}

// Name returns the provider identifier.
func (f *FreeDictionary) Name() string { return ProviderFree }

// freeDictionaryEntry is the subset of the response document we consume.
type freeDictionaryEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup fetches the first definition of the first meaning for word.
func (f *FreeDictionary) Lookup(ctx context.Context, word string) (string, error) {
	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.lookup(ctx, word)
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

func (f *FreeDictionary) lookup(ctx context.Context, word string) (*lookupOutcome, error) {
	endpoint := f.baseURL + "/" + url.PathEscape(strings.ToLower(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call free dictionary API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &lookupOutcome{notFound: true}, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("free dictionary API returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var entries []freeDictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode free dictionary response: %w", err)
	}

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if def.Definition != "" {
					return &lookupOutcome{definition: def.Definition}, nil
				}
			}
		}
	}

	// A 200 with no usable definition is treated the same as a miss.
	return &lookupOutcome{notFound: true}, nil
}
