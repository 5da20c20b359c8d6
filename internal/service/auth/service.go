// Package auth contains framework-agnostic authentication logic.
// HTTP specifics (token issuance, middleware) live in the handler layer.
package auth

import "context"

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// AuthProvider defines the interface for authentication providers.
type AuthProvider interface {
	// ValidateCredentials validates user credentials.
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// IdentifyUser returns the role for a given username.
	IdentifyUser(ctx context.Context, username string) (string, error)

	// Name returns the name of this provider.
	Name() string
}

// AuthService handles authentication business logic.
type AuthService struct {
	provider AuthProvider
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// ValidateCredentials validates user credentials via the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IdentifyUser resolves the role for a username via the configured provider.
func (s *AuthService) IdentifyUser(ctx context.Context, username string) (string, error) {
	return s.provider.IdentifyUser(ctx, username)
}

// Provider returns the current authentication provider.
func (s *AuthService) Provider() AuthProvider {
	return s.provider
}
