package pathutil

import (
	"regexp"
	"strings"
)

// pathPattern pairs a route regex with its normalized template.
type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// pathPatterns lists the dynamic routes, most specific first.
// Pre-compiled so normalization stays cheap on the request path.
var pathPatterns = []*pathPattern{
	{pattern: regexp.MustCompile(`^/entries/\d+$`), template: "/entries/:id"},
	{pattern: regexp.MustCompile(`^/browse/[a-zA-Z]$`), template: "/browse/:letter"},
}

// NormalizePath normalizes dynamic URL paths so Prometheus path labels stay
// bounded: /entries/123 becomes /entries/:id and /browse/c becomes
// /browse/:letter. Static paths pass through unchanged; query parameters
// and trailing slashes are stripped first.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
