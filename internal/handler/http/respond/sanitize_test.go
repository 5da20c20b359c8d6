package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "api key query parameter",
			err:  errors.New(`lookup "bridge": GET https://www.dictionaryapi.com/api/v3/references/collegiate/json/bridge?key=abc123-def456: timeout`),
			want: `lookup "bridge": GET https://www.dictionaryapi.com/api/v3/references/collegiate/json/bridge?key=****: timeout`,
		},
		{
			name: "dsn password",
			err:  errors.New("ping postgres://lexicon:s3cret@db:5432/lexicon: refused"),
			want: "ping postgres://lexicon:****@db:5432/lexicon: refused",
		},
		{
			name: "bearer token",
			err:  errors.New("upstream rejected Authorization: Bearer eyJhbGciOi.abc_def"),
			want: "upstream rejected Authorization: Bearer ****",
		},
		{
			name: "plain message untouched",
			err:  errors.New("entry not found"),
			want: "entry not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err))
		})
	}
}
