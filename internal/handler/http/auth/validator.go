package auth

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// weakPasswordList contains common weak passwords that must be rejected.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"clinton",
	"lexicon",
	"test",
	"default",
	"root",
}

const (
	// minPasswordLength is the minimum admin password length.
	minPasswordLength = 12
	// minJWTSecretLength is the minimum JWT_SECRET length (HS256 key).
	minJWTSecretLength = 32
)

// MinPasswordLength exposes the password policy to provider construction.
func MinPasswordLength() int { return minPasswordLength }

// ValidateAdminCredentials validates admin credentials from environment
// variables at application startup. Must be called before the server
// starts: an empty or weak admin password would silently expose every
// mutating endpoint.
//
// Requirements:
//   - ADMIN_USER must not be empty
//   - ADMIN_USER_PASSWORD must not be empty, at least 12 characters, and
//     not based on common weak passwords
func ValidateAdminCredentials() error {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")

	if user == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER must not be empty")
	}
	if pass == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be empty")
	}
	if len(pass) < minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}

	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak {
			return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a weak password")
		}
		// Catches variations like "admin1234567890".
		if strings.HasPrefix(lowerPass, weak) && len(pass) < minPasswordLength+5 {
			return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be based on common weak passwords")
		}
	}

	return nil
}

// ValidateViewerCredentials validates the optional viewer credentials at
// startup. The viewer role degrades gracefully: misconfigured credentials
// disable the role with a warning instead of failing startup, and the
// server runs admin-only. VIEWER_USER is unset on misconfiguration so the
// provider never accepts the broken account.
func ValidateViewerCredentials(logger *slog.Logger) {
	viewerUser := os.Getenv("VIEWER_USER")
	viewerPass := os.Getenv("VIEWER_USER_PASSWORD")
	adminUser := os.Getenv("ADMIN_USER")

	if viewerUser == "" {
		logger.Info("viewer role not configured, running admin-only")
		return
	}

	disable := func(reason string) {
		logger.Warn("disabling viewer role", slog.String("reason", reason))
		_ = os.Unsetenv("VIEWER_USER")
		_ = os.Unsetenv("VIEWER_USER_PASSWORD")
	}

	if viewerPass == "" {
		disable("VIEWER_USER_PASSWORD must not be empty")
		return
	}
	if viewerUser == adminUser {
		disable("VIEWER_USER must differ from ADMIN_USER")
		return
	}
	if len(viewerPass) < minPasswordLength {
		disable(fmt.Sprintf("VIEWER_USER_PASSWORD must be at least %d characters", minPasswordLength))
		return
	}

	lowerPass := strings.ToLower(viewerPass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak || strings.HasPrefix(lowerPass, weak) {
			disable("VIEWER_USER_PASSWORD must not be based on common weak passwords")
			return
		}
	}

	logger.Info("viewer role configured", slog.String("user", viewerUser))
}

// ValidateJWTSecret validates JWT_SECRET at application startup.
// A short secret makes HS256 tokens forgeable by brute force.
func ValidateJWTSecret() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT secret validation failed: JWT_SECRET must not be empty")
	}
	if len(secret) < minJWTSecretLength {
		return fmt.Errorf("JWT secret validation failed: JWT_SECRET must be at least %d characters (current length: %d)", minJWTSecretLength, len(secret))
	}
	return nil
}
