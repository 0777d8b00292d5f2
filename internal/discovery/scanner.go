package discovery

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"cte/internal/logger"
)

// DiscoveryError reports a path that could not be traversed
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// Scanner scans for fixture files in a directory
type Scanner struct {
	pattern  string
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner matching pattern (relative to the scan
// root, e.g. "**/*.test") and skipping the given directory names
func NewScanner(pattern string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{pattern: pattern, skipDirs: skipMap}
}

// Walk lazily yields fixture paths under root. Entries that cannot be read
// yield a *DiscoveryError and the walk carries on with the next entry.
func (s *Scanner) Walk(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		root = filepath.Clean(root)

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(path, &DiscoveryError{Path: path, Err: err}) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path == root {
					return nil
				}
				name := d.Name()
				// Skip hidden directories (starting with .)
				if strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if s.skipDirs[name] {
					return filepath.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if !doublestar.MatchUnvalidated(s.pattern, filepath.ToSlash(rel)) {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Scan finds all fixture files under root, sorted. Errors on individual
// entries are logged and skipped; only an unusable root fails the scan.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}
	if !doublestar.ValidatePattern(s.pattern) {
		return nil, fmt.Errorf("invalid fixture pattern: %s", s.pattern)
	}

	var fixtures []string
	for path, err := range s.Walk(root) {
		if err != nil {
			logger.Error("error discovering fixtures", "path", path, "error", err)
			continue
		}
		fixtures = append(fixtures, path)
	}

	sort.Strings(fixtures)
	return fixtures, nil
}
