package auth

import (
	"context"
	"errors"
	"testing"
)

// mockAuthProvider is a mock implementation of AuthProvider for testing.
type mockAuthProvider struct {
	name            string
	validateErr     error
	identifyRole    string
	identifyErr     error
	validateCalls   int
	identifyCalls   int
	lastCredentials Credentials
}

func (m *mockAuthProvider) ValidateCredentials(ctx context.Context, creds Credentials) error {
	m.validateCalls++
	m.lastCredentials = creds
	return m.validateErr
}

func (m *mockAuthProvider) IdentifyUser(ctx context.Context, username string) (string, error) {
	m.identifyCalls++
	return m.identifyRole, m.identifyErr
}

func (m *mockAuthProvider) Name() string {
	return m.name
}

func TestNewAuthService(t *testing.T) {
	provider := &mockAuthProvider{name: "mock"}

	service := NewAuthService(provider)

	if service == nil {
		t.Fatal("expected service to be non-nil")
	}
	if service.Provider() != provider {
		t.Error("expected provider to be set correctly")
	}
}

func TestAuthService_ValidateCredentials(t *testing.T) {
	tests := []struct {
		name        string
		providerErr error
		expectError bool
	}{
		{
			name:        "successful validation",
			providerErr: nil,
			expectError: false,
		},
		{
			name:        "provider rejects credentials",
			providerErr: errors.New("invalid credentials"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockAuthProvider{validateErr: tt.providerErr}
			service := NewAuthService(provider)

			creds := Credentials{Username: "admin", Password: "correct horse battery"}
			err := service.ValidateCredentials(context.Background(), creds)

			if tt.expectError && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if provider.validateCalls != 1 {
				t.Errorf("expected 1 provider call, got %d", provider.validateCalls)
			}
			if provider.lastCredentials != creds {
				t.Error("expected credentials to be forwarded unchanged")
			}
		})
	}
}

func TestAuthService_IdentifyUser(t *testing.T) {
	t.Run("returns role from provider", func(t *testing.T) {
		provider := &mockAuthProvider{identifyRole: "admin"}
		service := NewAuthService(provider)

		role, err := service.IdentifyUser(context.Background(), "admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != "admin" {
			t.Errorf("expected role 'admin', got %q", role)
		}
	})

	t.Run("propagates provider error", func(t *testing.T) {
		provider := &mockAuthProvider{identifyErr: errors.New("unknown user")}
		service := NewAuthService(provider)

		if _, err := service.IdentifyUser(context.Background(), "nobody"); err == nil {
			t.Error("expected an error, got nil")
		}
	})
}
