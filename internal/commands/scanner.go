// Package commands contains the core scanning and classification logic for the context tool.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gitignore "github.com/sabhiram/go-gitignore"

	"llmctx/internal/types"
	"llmctx/internal/utils"
)

const (
	// WarningAccessPathFormat is used when a path cannot be visited during the walk.
	WarningAccessPathFormat = "Warning: error accessing path %s: %v\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorWalkDirectoryFormat is used when the walk itself fails.
	errorWalkDirectoryFormat = "walking directory %s: %w"

	// maxSizeDetailFormat documents the configured limit on oversize exclusions.
	maxSizeDetailFormat = "limit %s"
)

// Scanner walks a directory tree and partitions every visited entry into
// included files and tagged exclusions using configured options.
type Scanner struct {
	IgnorePatterns   []string
	GitignoreMatcher *gitignore.GitIgnore
	MaxFileSizeBytes int64
	Warn             func(string)
}

// Scan traverses rootDirectoryPath top-down and classifies every entry
// beneath it. Ignored directories are recorded once and pruned, so none of
// their contents appear in the result. Per-path filesystem errors become
// exclusion records; only a failure to walk the root itself is returned as
// an error.
func (scanner *Scanner) Scan(rootDirectoryPath string) (types.ScanResult, error) {
	warn := scanner.Warn
	if warn == nil {
		warn = func(string) {}
	}

	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return types.ScanResult{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	scanResult := types.ScanResult{Included: []string{}, Excluded: []types.ExclusionRecord{}}

	directoryWalkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)

		if accessError != nil {
			if relativePath == "." {
				return accessError
			}
			warn(fmt.Sprintf(WarningAccessPathFormat, walkedPath, accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				scanResult.Excluded = append(scanResult.Excluded, types.ExclusionRecord{
					RelativePath: relativePath + patternPathSeparator,
					Reason:       types.ReasonAccessError,
					Detail:       accessError.Error(),
				})
				return filepath.SkipDir
			}
			scanResult.Excluded = append(scanResult.Excluded, types.ExclusionRecord{
				RelativePath: relativePath,
				Reason:       types.ReasonAccessError,
				Detail:       accessError.Error(),
			})
			return nil
		}

		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			directoryCandidate := relativePath + patternPathSeparator
			if scanner.matchesIgnoreRules(directoryCandidate) {
				scanResult.Excluded = append(scanResult.Excluded, types.ExclusionRecord{
					RelativePath: directoryCandidate,
					Reason:       types.ReasonDirectory,
				})
				return filepath.SkipDir
			}
			return nil
		}

		scanResult.FilesVisited++
		if record, included := scanner.classifyFile(walkedPath, relativePath); included {
			scanResult.Included = append(scanResult.Included, relativePath)
		} else {
			scanResult.Excluded = append(scanResult.Excluded, record)
		}
		return nil
	})
	if directoryWalkError != nil {
		return types.ScanResult{}, fmt.Errorf(errorWalkDirectoryFormat, rootDirectoryPath, directoryWalkError)
	}

	sort.Strings(scanResult.Included)
	sort.Slice(scanResult.Excluded, func(firstIndex, secondIndex int) bool {
		return scanResult.Excluded[firstIndex].RelativePath < scanResult.Excluded[secondIndex].RelativePath
	})
	return scanResult, nil
}

// classifyFile applies the per-file checks in their fixed order: ignore
// rules, then size, then the content probe. The first failing check decides
// the exclusion reason.
func (scanner *Scanner) classifyFile(fullPath string, relativePath string) (types.ExclusionRecord, bool) {
	if scanner.matchesIgnoreRules(relativePath) {
		return types.ExclusionRecord{RelativePath: relativePath, Reason: types.ReasonIgnoredByPattern}, false
	}

	fileInfo, statError := os.Stat(fullPath)
	if statError != nil {
		return types.ExclusionRecord{
			RelativePath: relativePath,
			Reason:       types.ReasonAccessError,
			Detail:       statError.Error(),
		}, false
	}
	if fileInfo.Size() > scanner.MaxFileSizeBytes {
		return types.ExclusionRecord{
			RelativePath: relativePath,
			Reason:       types.ReasonExceedsMaxSize,
			Detail:       fmt.Sprintf(maxSizeDetailFormat, utils.FormatFileSize(scanner.MaxFileSizeBytes)),
		}, false
	}
	if fileInfo.Size() == 0 {
		return types.ExclusionRecord{RelativePath: relativePath, Reason: types.ReasonEmptyFile}, false
	}

	contentSample, sniffError := utils.SniffFile(fullPath)
	if sniffError != nil {
		return types.ExclusionRecord{
			RelativePath: relativePath,
			Reason:       types.ReasonReadError,
			Detail:       sniffError.Error(),
		}, false
	}
	if utils.IsBinary(contentSample) {
		return types.ExclusionRecord{
			RelativePath: relativePath,
			Reason:       types.ReasonLikelyBinary,
			Detail:       utils.DetectMimeType(contentSample),
		}, false
	}

	return types.ExclusionRecord{}, true
}

// matchesIgnoreRules applies the configured patterns first and the optional
// gitignore matcher second. Directory candidates arrive with a trailing
// slash so both rule sets see directory semantics.
func (scanner *Scanner) matchesIgnoreRules(candidatePath string) bool {
	if MatchesAnyPattern(candidatePath, scanner.IgnorePatterns) {
		return true
	}
	if scanner.GitignoreMatcher != nil && scanner.GitignoreMatcher.MatchesPath(candidatePath) {
		return true
	}
	return false
}
