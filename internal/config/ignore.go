// Package config loads ignore rules and application configuration for the context tool.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"llmctx/internal/utils"
)

// defaultIgnorePatterns lists the rules applied to every scan regardless of
// the ignore file's presence. Version control internals and common build
// artifacts never belong in a context document.
var defaultIgnorePatterns = []string{
	utils.GitDirectoryName + "/",
	".svn/",
	".hg/",
	"__pycache__/",
	"*.pyc",
	"*.pyo",
	"*.o",
	"*.so",
	"*.dll",
	"*.exe",
}

// DefaultIgnorePatterns returns a fresh copy of the built-in ignore rules.
// Callers combine these with loaded patterns explicitly; the loaders never
// append them on their own.
func DefaultIgnorePatterns() []string {
	return append([]string{}, defaultIgnorePatterns...)
}

// LoadIgnoreFilePatterns reads the ignore file at ignoreFilePath and returns
// its patterns together with a flag reporting whether the file existed.
// Blank lines and lines starting with # are skipped.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, bool, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, false, nil
		}
		return nil, false, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, true, scanError
	}
	return ignorePatterns, true, nil
}

// CombineIgnorePatterns merges ignore file patterns, extra exclusion
// patterns, and the built-in defaults into one deduplicated list. Exclusion
// patterns are trimmed and blank entries dropped.
func CombineIgnorePatterns(filePatterns []string, exclusionPatterns []string, builtinPatterns []string) []string {
	combinedPatterns := append([]string{}, filePatterns...)

	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		combinedPatterns = append(combinedPatterns, trimmedPattern)
	}

	combinedPatterns = append(combinedPatterns, builtinPatterns...)
	return utils.DeduplicatePatterns(combinedPatterns)
}

// LoadGitignoreMatcher compiles the .gitignore file at the root of
// absoluteDirectoryPath. A missing file yields a nil matcher and no error.
func LoadGitignoreMatcher(absoluteDirectoryPath string) (*gitignore.GitIgnore, error) {
	gitIgnoreFilePath := filepath.Join(absoluteDirectoryPath, utils.GitIgnoreFileName)
	if _, statError := os.Stat(gitIgnoreFilePath); statError != nil {
		if os.IsNotExist(statError) {
			return nil, nil
		}
		return nil, fmt.Errorf("inspecting %s: %w", gitIgnoreFilePath, statError)
	}
	matcher, compileError := gitignore.CompileIgnoreFile(gitIgnoreFilePath)
	if compileError != nil {
		return nil, fmt.Errorf("compiling %s: %w", gitIgnoreFilePath, compileError)
	}
	return matcher, nil
}
