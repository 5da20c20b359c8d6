package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerriamWebster_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bigly", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`[{"shortdef": ["in a big manner", "to a large degree"]}]`))
	}))
	defer srv.Close()

	provider := NewMerriamWebster(srv.URL, "test-key", srv.Client())
	def, err := provider.Lookup(context.Background(), "Bigly")

	require.NoError(t, err)
	assert.Equal(t, "in a big manner", def)
}

func TestMerriamWebster_Lookup_SuggestionsAreNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["big", "bight", "bigot"]`))
	}))
	defer srv.Close()

	provider := NewMerriamWebster(srv.URL, "test-key", srv.Client())
	_, err := provider.Lookup(context.Background(), "biglyy")

	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

func TestMerriamWebster_Lookup_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	provider := NewMerriamWebster(srv.URL, "test-key", srv.Client())
	_, err := provider.Lookup(context.Background(), "nothing")

	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

func TestMerriamWebster_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	provider := NewMerriamWebster(srv.URL, "test-key", srv.Client())
	_, err := provider.Lookup(context.Background(), "word")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDefinitionNotFound)
}

func TestNewProvider(t *testing.T) {
	timeout := 5 * time.Second

	t.Run("free by default", func(t *testing.T) {
		p, err := NewProvider(ProviderConfig{Provider: ProviderFree, Timeout: timeout}, nil)
		require.NoError(t, err)
		assert.Equal(t, ProviderFree, p.Name())
	})

	t.Run("merriam-webster requires key", func(t *testing.T) {
		_, err := NewProvider(ProviderConfig{Provider: ProviderMerriamWebster, Timeout: timeout}, nil)
		assert.Error(t, err)

		p, err := NewProvider(ProviderConfig{Provider: ProviderMerriamWebster, APIKey: "k", Timeout: timeout}, nil)
		require.NoError(t, err)
		assert.Equal(t, ProviderMerriamWebster, p.Name())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProvider(ProviderConfig{Provider: "urban", Timeout: timeout}, nil)
		assert.Error(t, err)
	})

	t.Run("zero timeout rejected for default client", func(t *testing.T) {
		_, err := NewProvider(ProviderConfig{Provider: ProviderFree}, nil)
		assert.ErrorContains(t, err, "timeout")
	})
}

func TestLoadProviderConfig(t *testing.T) {
	t.Setenv("DICTIONARY_PROVIDER", ProviderMerriamWebster)
	t.Setenv("DICTIONARY_API_KEY", "abc")

	cfg := LoadProviderConfig()

	assert.Equal(t, ProviderMerriamWebster, cfg.Provider)
	assert.Equal(t, "abc", cfg.APIKey)
}
