package nav

import (
	"net/url"
	"strings"
)

// RootPath is the catalog view.
const RootPath = "/"

const warpPrefix = "/warp/"

// WarpPath returns the detail path for a warp, with the name percent-encoded
// as a single path segment.
func WarpPath(name string) string {
	return warpPrefix + url.PathEscape(name)
}

// ParseWarpPath extracts the warp name from a detail path. It reports false
// for any other path, including a detail path with an empty or undecodable name.
func ParseWarpPath(path string) (string, bool) {
	if !strings.HasPrefix(path, warpPrefix) {
		return "", false
	}
	raw := strings.TrimPrefix(path, warpPrefix)
	if raw == "" || strings.Contains(raw, "/") {
		return "", false
	}
	name, err := url.PathUnescape(raw)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// NormalizePath makes a user-supplied start path absolute. Blank input maps to RootPath.
func NormalizePath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return RootPath
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return trimmed
}
