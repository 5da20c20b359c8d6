package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
//
// Justification for each public endpoint:
//   - /health, /ready, /live: orchestration health checks
//   - /metrics: Prometheus scraping
//   - /auth/token: token issuance (can't require a token to get one)
//   - /browse: the public face of the lexicon, readable by anyone
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/auth/token",
	"/browse",
	"/browse/",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Matching logic:
//   - Endpoints ending with '/' use prefix matching (/browse/ matches /browse/a)
//   - Endpoints without '/' require an exact match, a trailing slash, or
//     query parameters only (/health matches /health?x=1 but not /healthz)
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
