// Package auth implements JWT authentication for the admin API: credential
// validation against environment variables, token issuance, and the
// authorization middleware with its public-endpoint allowlist.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"

	authservice "clinton-lexicon/internal/service/auth"
)

// BasicAuthProvider implements environment-based authentication for the
// admin account and an optional read-only viewer account.
type BasicAuthProvider struct {
	minPasswordLength int
}

// NewBasicAuthProvider creates a new basic auth provider.
func NewBasicAuthProvider(minPasswordLength int) *BasicAuthProvider {
	return &BasicAuthProvider{minPasswordLength: minPasswordLength}
}

// ValidateCredentials validates credentials against ADMIN_USER and
// ADMIN_USER_PASSWORD, then the optional VIEWER_USER and
// VIEWER_USER_PASSWORD pair when a viewer is configured.
func (p *BasicAuthProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}
	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")

	// Constant-time comparison to prevent timing attacks.
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1

	if userMatch && passMatch {
		return nil
	}

	viewerUser := os.Getenv("VIEWER_USER")
	viewerPass := os.Getenv("VIEWER_USER_PASSWORD")
	if viewerUser != "" {
		userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(viewerUser)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(viewerPass)) == 1
		if userMatch && passMatch {
			return nil
		}
	}

	return fmt.Errorf("invalid credentials")
}

// IdentifyUser returns the role for a given username: RoleAdmin for the
// admin account, RoleViewer for the configured viewer.
func (p *BasicAuthProvider) IdentifyUser(_ context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username must not be empty")
	}

	adminUser := os.Getenv("ADMIN_USER")
	if subtle.ConstantTimeCompare([]byte(username), []byte(adminUser)) == 1 {
		return RoleAdmin, nil
	}

	viewerUser := os.Getenv("VIEWER_USER")
	if viewerUser != "" && subtle.ConstantTimeCompare([]byte(username), []byte(viewerUser)) == 1 {
		return RoleViewer, nil
	}

	return "", fmt.Errorf("user not found")
}

// Name returns the provider name.
func (p *BasicAuthProvider) Name() string {
	return "basic"
}
