// Package pathutil normalizes request paths for use as metric labels.
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

const uuidSegment = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// Patterns are evaluated in order, most specific first. Pre-compiled so
// normalization stays off the request hot path's allocation profile.
var pathPatterns = []pathPattern{
	{pattern: regexp.MustCompile(`^/users/` + uuidSegment + `/rate-limits$`), template: "/users/:userId/rate-limits"},
	{pattern: regexp.MustCompile(`^/users/` + uuidSegment + `$`), template: "/users/:userId"},
}

// NormalizePath collapses per-user paths to their route template so the
// user id never becomes a metric label value. Static paths like
// /api/check, /rate-limit-stats, /health and /metrics pass through
// unchanged (their user ids travel in the query string, which is not part
// of the label).
//
//	NormalizePath("/users/0c7f.../rate-limits")  // "/users/:userId/rate-limits"
//	NormalizePath("/api/check")                  // "/api/check"
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
