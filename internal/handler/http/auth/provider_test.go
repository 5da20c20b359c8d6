package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "clinton-lexicon/internal/service/auth"
)

func TestBasicAuthProvider_ValidateCredentials(t *testing.T) {
	t.Setenv("ADMIN_USER", "wjc")
	t.Setenv("ADMIN_USER_PASSWORD", "correct-horse-battery")

	provider := NewBasicAuthProvider(12)

	tests := []struct {
		name    string
		creds   authservice.Credentials
		wantErr bool
	}{
		{
			name:  "valid credentials",
			creds: authservice.Credentials{Username: "wjc", Password: "correct-horse-battery"},
		},
		{
			name:    "wrong password",
			creds:   authservice.Credentials{Username: "wjc", Password: "wrong-password-entirely"},
			wantErr: true,
		},
		{
			name:    "wrong username",
			creds:   authservice.Credentials{Username: "hrc", Password: "correct-horse-battery"},
			wantErr: true,
		},
		{
			name:    "empty credentials",
			creds:   authservice.Credentials{},
			wantErr: true,
		},
		{
			name:    "password below minimum length",
			creds:   authservice.Credentials{Username: "wjc", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := provider.ValidateCredentials(context.Background(), tt.creds)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBasicAuthProvider_ViewerCredentials(t *testing.T) {
	t.Setenv("ADMIN_USER", "wjc")
	t.Setenv("ADMIN_USER_PASSWORD", "correct-horse-battery")
	t.Setenv("VIEWER_USER", "press-pool")
	t.Setenv("VIEWER_USER_PASSWORD", "reading-room-only-42")

	provider := NewBasicAuthProvider(12)

	err := provider.ValidateCredentials(context.Background(), authservice.Credentials{
		Username: "press-pool", Password: "reading-room-only-42",
	})
	assert.NoError(t, err)

	err = provider.ValidateCredentials(context.Background(), authservice.Credentials{
		Username: "press-pool", Password: "wrong-password-entirely",
	})
	assert.Error(t, err)

	// The admin account is unaffected by the viewer being configured.
	err = provider.ValidateCredentials(context.Background(), authservice.Credentials{
		Username: "wjc", Password: "correct-horse-battery",
	})
	assert.NoError(t, err)
}

func TestBasicAuthProvider_ViewerNotConfigured(t *testing.T) {
	t.Setenv("ADMIN_USER", "wjc")
	t.Setenv("ADMIN_USER_PASSWORD", "correct-horse-battery")
	t.Setenv("VIEWER_USER", "")
	t.Setenv("VIEWER_USER_PASSWORD", "")

	provider := NewBasicAuthProvider(12)

	// Without a configured viewer, nothing but the admin pair passes,
	// even credentials matching the empty env values.
	err := provider.ValidateCredentials(context.Background(), authservice.Credentials{
		Username: "press-pool", Password: "reading-room-only-42",
	})
	assert.Error(t, err)

	_, err = provider.IdentifyUser(context.Background(), "press-pool")
	assert.Error(t, err)
}

func TestBasicAuthProvider_IdentifyUser(t *testing.T) {
	t.Setenv("ADMIN_USER", "wjc")
	t.Setenv("VIEWER_USER", "press-pool")

	provider := NewBasicAuthProvider(12)

	role, err := provider.IdentifyUser(context.Background(), "wjc")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = provider.IdentifyUser(context.Background(), "press-pool")
	require.NoError(t, err)
	assert.Equal(t, RoleViewer, role)

	_, err = provider.IdentifyUser(context.Background(), "somebody-else")
	assert.Error(t, err)

	_, err = provider.IdentifyUser(context.Background(), "")
	assert.Error(t, err)
}
