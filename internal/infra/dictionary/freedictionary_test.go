package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeDictionary_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/covfefe", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"word": "covfefe",
			"meanings": [{
				"partOfSpeech": "noun",
				"definitions": [{"definition": "a mysterious late-night utterance"}]
			}]
		}]`))
	}))
	defer srv.Close()

	provider := NewFreeDictionary(srv.URL, srv.Client())
	def, err := provider.Lookup(context.Background(), "Covfefe")

	require.NoError(t, err)
	assert.Equal(t, "a mysterious late-night utterance", def)
}

func TestFreeDictionary_Lookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title": "No Definitions Found"}`))
	}))
	defer srv.Close()

	provider := NewFreeDictionary(srv.URL, srv.Client())
	_, err := provider.Lookup(context.Background(), "zzzzzz")

	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

func TestFreeDictionary_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider := NewFreeDictionary(srv.URL, srv.Client())
	_, err := provider.Lookup(context.Background(), "word")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDefinitionNotFound)
}

func TestFreeDictionary_Lookup_EmptyMeanings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"word": "word", "meanings": []}]`))
	}))
	defer srv.Close()

	provider := NewFreeDictionary(srv.URL, srv.Client())
	_, err := provider.Lookup(context.Background(), "word")

	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

func TestFreeDictionary_NotFoundDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	provider := NewFreeDictionary(srv.URL, srv.Client())
	for i := 0; i < 10; i++ {
		_, err := provider.Lookup(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrDefinitionNotFound)
	}
	assert.False(t, provider.circuitBreaker.IsOpen())
}
