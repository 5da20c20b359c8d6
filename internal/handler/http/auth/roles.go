package auth

import "strings"

// Role constants used in JWT claims and permission checks.
const (
	// RoleAdmin has full access to all endpoints and methods.
	RoleAdmin = "admin"
	// RoleViewer has read-only access to entry endpoints.
	RoleViewer = "viewer"
)

// Permission defines the allowed operations for a role.
type Permission struct {
	AllowedMethods []string
	AllowedPaths   []string
}

// RolePermissions maps each role to its allowed permissions.
// Pattern "/*" matches everything; "/entries/*" matches /entries and any
// subpath.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleViewer: {
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedPaths: []string{
			"/entries",
			"/entries/*",
		},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Unknown and empty roles are always denied.
func checkRolePermission(role, method, path string) bool {
	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	methodAllowed := false
	for _, m := range perm.AllowedMethods {
		if m == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}
