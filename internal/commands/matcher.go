package commands

import (
	"path"
	"strings"
)

const patternPathSeparator = "/"

// MatchesAnyPattern reports whether a path relative to the scan root matches
// at least one ignore pattern. The candidate path and every pattern are
// converted to forward-slash form before evaluation. A pattern ending with a
// trailing slash names a directory rooted at the scan root and matches that
// directory and every descendant path. Any other pattern is evaluated as a
// glob twice, first against the whole path and then against the final path
// segment, so a bare file pattern applies at any depth. A pattern with
// malformed glob syntax never matches.
func MatchesAnyPattern(relativePath string, ignorePatterns []string) bool {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", patternPathSeparator)
	lastSegment := path.Base(strings.TrimSuffix(normalizedPath, patternPathSeparator))

	for _, patternValue := range ignorePatterns {
		normalizedPattern := strings.ReplaceAll(patternValue, "\\", patternPathSeparator)
		if normalizedPattern == "" {
			continue
		}

		if strings.HasSuffix(normalizedPattern, patternPathSeparator) {
			trimmedPattern := strings.TrimSuffix(normalizedPattern, patternPathSeparator)
			if normalizedPath == trimmedPattern || strings.HasPrefix(normalizedPath, normalizedPattern) {
				return true
			}
			continue
		}

		if isMatched, matchError := path.Match(normalizedPattern, normalizedPath); matchError == nil && isMatched {
			return true
		}
		if isMatched, matchError := path.Match(normalizedPattern, lastSegment); matchError == nil && isMatched {
			return true
		}
	}
	return false
}
