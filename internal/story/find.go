package story

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/B16B1RD/cc-xp-kit/internal/config"
)

// FindStoriesFile returns the first existing stories document among the
// search patterns, tried in order relative to root.
//
// A pattern without glob characters is a plain path. Glob patterns support
// "**"; when one matches several files the lexically first wins.
//
// Parameters:
//   - root: Directory the patterns are relative to
//   - patterns: Candidate paths or doublestar globs
//
// Returns:
//   - string: Absolute path to the document
//   - error: *config.MissingFileError when nothing matches
func FindStoriesFile(root string, patterns []string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	for _, pattern := range patterns {
		candidate := pattern
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(absRoot, candidate)
		}

		if !containsGlob(pattern) {
			if isRegularFile(candidate) {
				log.Debug("Found stories file", "path", candidate)
				return candidate, nil
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(candidate)
		if err != nil {
			return "", fmt.Errorf("invalid search pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if isRegularFile(match) {
				log.Debug("Found stories file", "pattern", pattern, "path", match)
				return match, nil
			}
		}
	}

	return "", &config.MissingFileError{
		Candidates: patterns,
		Usage:      "ccxp autofix [stories-file] [fix-config.json]",
	}
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
