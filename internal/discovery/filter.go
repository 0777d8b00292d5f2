package discovery

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter filters fixture files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters fixture files by name pattern using wildcard matching.
// Supports patterns like "*accounts.test" or "*budget*"; a pattern without
// wildcards matches any file name containing it.
func (f *Filter) FilterByName(fixtures []string, pattern string) []string {
	if pattern == "" {
		return fixtures
	}

	hasWildcard := strings.ContainsAny(pattern, "*?[")
	var filtered []string

	for _, fixture := range fixtures {
		name := filepath.Base(fixture)

		if hasWildcard {
			if matched, err := doublestar.Match(pattern, name); err == nil && matched {
				filtered = append(filtered, fixture)
				continue
			}
			// fall back to requiring each literal part somewhere in the name
			if matchesParts(name, pattern) {
				filtered = append(filtered, fixture)
			}
			continue
		}

		if strings.Contains(name, pattern) {
			filtered = append(filtered, fixture)
		}
	}

	return filtered
}

// matchesParts reports whether every non-empty part between "*" appears in name
func matchesParts(name, pattern string) bool {
	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasPart
}
