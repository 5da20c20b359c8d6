package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{name: "valid id", path: "/entries/123", prefix: "/entries/", want: 123},
		{name: "zero id", path: "/entries/0", prefix: "/entries/", wantErr: true},
		{name: "negative id", path: "/entries/-5", prefix: "/entries/", wantErr: true},
		{name: "non-numeric", path: "/entries/abc", prefix: "/entries/", wantErr: true},
		{name: "empty", path: "/entries/", prefix: "/entries/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractID(tt.path, tt.prefix)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/entries/123", "/entries/:id"},
		{"/entries/456/", "/entries/:id"},
		{"/entries/123?page=1", "/entries/:id"},
		{"/browse/c", "/browse/:letter"},
		{"/browse/C", "/browse/:letter"},
		{"/browse", "/browse"},
		{"/entries", "/entries"},
		{"/entries/search", "/entries/search"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/auth/token", "/auth/token"},
		{"/jobs/definitions", "/jobs/definitions"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.path), "path %s", tt.path)
	}
}
