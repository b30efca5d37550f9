// Package shared provides error constructors and small helpers used across
// multiple packages in the composer-reconcile codebase.
package shared

import (
	"strings"
)

// NormalizePackageName trims a composer package name and lowercases it.
// Composer treats package names case-insensitively.
func NormalizePackageName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// LastPathSegment returns the part of value after its final slash, with
// a trailing ".git" removed (so repository URLs yield the project name).
func LastPathSegment(value string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(value), "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return strings.TrimSuffix(trimmed, ".git")
}
