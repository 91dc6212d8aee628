package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gitignore "github.com/sabhiram/go-gitignore"

	"llmctx/internal/commands"
	"llmctx/internal/types"
)

const (
	pythonFileName    = "main.py"
	pythonFileContent = "print('hello world')"
	binaryFileName    = "data.bin"
	sourceDirName     = "src"
	gitDirName        = ".git"
	defaultMaxSize    = 1024 * 1024
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// makeTestDirectory creates a directory, failing the test on error.
func makeTestDirectory(testingHandle *testing.T, directoryPath string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(directoryPath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create %s: %v", directoryPath, makeDirError)
	}
}

// findExclusion returns the record for the given path and reports whether it exists.
func findExclusion(records []types.ExclusionRecord, relativePath string) (types.ExclusionRecord, bool) {
	for _, record := range records {
		if record.RelativePath == relativePath {
			return record, true
		}
	}
	return types.ExclusionRecord{}, false
}

// TestScannerScan verifies the full classification flow over a populated root:
// pattern exclusions, directory pruning, and inclusion of surviving files.
func TestScannerScan(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	sourceDirectory := filepath.Join(rootDirectory, sourceDirName)
	gitDirectory := filepath.Join(rootDirectory, gitDirName)
	makeTestDirectory(testingHandle, sourceDirectory)
	makeTestDirectory(testingHandle, gitDirectory)
	writeTestFile(testingHandle, filepath.Join(sourceDirectory, pythonFileName), pythonFileContent)
	writeTestFile(testingHandle, filepath.Join(sourceDirectory, binaryFileName), "\x00")
	writeTestFile(testingHandle, filepath.Join(gitDirectory, "config"), "[core]")

	scanner := commands.Scanner{
		IgnorePatterns:   []string{"*.bin", gitDirName + "/"},
		MaxFileSizeBytes: defaultMaxSize,
	}
	scanResult, scanError := scanner.Scan(rootDirectory)
	if scanError != nil {
		testingHandle.Fatalf("Scan error: %v", scanError)
	}

	expectedIncluded := sourceDirName + "/" + pythonFileName
	if len(scanResult.Included) != 1 || scanResult.Included[0] != expectedIncluded {
		testingHandle.Fatalf("expected included [%s], got %v", expectedIncluded, scanResult.Included)
	}
	if len(scanResult.Excluded) != 2 {
		testingHandle.Fatalf("expected 2 exclusions, got %v", scanResult.Excluded)
	}

	gitRecord, gitFound := findExclusion(scanResult.Excluded, gitDirName+"/")
	if !gitFound || gitRecord.Reason != types.ReasonDirectory {
		testingHandle.Fatalf("expected %s/ excluded as directory, got %+v", gitDirName, scanResult.Excluded)
	}
	binaryRecord, binaryFound := findExclusion(scanResult.Excluded, sourceDirName+"/"+binaryFileName)
	if !binaryFound || binaryRecord.Reason != types.ReasonIgnoredByPattern {
		testingHandle.Fatalf("expected %s excluded by pattern, got %+v", binaryFileName, scanResult.Excluded)
	}

	if scanResult.FilesVisited != 2 {
		testingHandle.Fatalf("expected 2 visited files, got %d", scanResult.FilesVisited)
	}
}

// TestScannerCheckOrder verifies that the first failing check decides the
// exclusion reason for each file.
func TestScannerCheckOrder(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		fileName       string
		content        string
		patterns       []string
		maxSize        int64
		expectedReason types.ExclusionReason
	}{
		{
			name:           "pattern beats oversize",
			fileName:       "huge.log",
			content:        strings.Repeat("a", 64),
			patterns:       []string{"*.log"},
			maxSize:        8,
			expectedReason: types.ReasonIgnoredByPattern,
		},
		{
			name:           "oversize",
			fileName:       "huge.txt",
			content:        strings.Repeat("a", 64),
			maxSize:        8,
			expectedReason: types.ReasonExceedsMaxSize,
		},
		{
			name:           "empty file",
			fileName:       "empty.txt",
			content:        "",
			maxSize:        defaultMaxSize,
			expectedReason: types.ReasonEmptyFile,
		},
		{
			name:           "binary probe",
			fileName:       "image.dat",
			content:        "\x00\xff\x10",
			maxSize:        defaultMaxSize,
			expectedReason: types.ReasonLikelyBinary,
		},
		{
			name:           "null byte beats extension",
			fileName:       "looks_textual.txt",
			content:        "header\x00body",
			maxSize:        defaultMaxSize,
			expectedReason: types.ReasonLikelyBinary,
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			rootDirectory := subTest.TempDir()
			writeTestFile(subTest, filepath.Join(rootDirectory, testCase.fileName), testCase.content)

			scanner := commands.Scanner{
				IgnorePatterns:   testCase.patterns,
				MaxFileSizeBytes: testCase.maxSize,
			}
			scanResult, scanError := scanner.Scan(rootDirectory)
			if scanError != nil {
				subTest.Fatalf("Scan error: %v", scanError)
			}
			if len(scanResult.Included) != 0 {
				subTest.Fatalf("expected no included files, got %v", scanResult.Included)
			}
			record, found := findExclusion(scanResult.Excluded, testCase.fileName)
			if !found {
				subTest.Fatalf("missing exclusion record for %s: %v", testCase.fileName, scanResult.Excluded)
			}
			if record.Reason != testCase.expectedReason {
				subTest.Fatalf("expected reason %q, got %q", testCase.expectedReason, record.Reason)
			}
		})
	}
}

// TestScannerOversizeDetail verifies that oversize exclusions carry the
// configured limit in readable form.
func TestScannerOversizeDetail(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "big.txt"), strings.Repeat("b", 2048))

	scanner := commands.Scanner{MaxFileSizeBytes: 1024}
	scanResult, scanError := scanner.Scan(rootDirectory)
	if scanError != nil {
		testingHandle.Fatalf("Scan error: %v", scanError)
	}
	record, found := findExclusion(scanResult.Excluded, "big.txt")
	if !found {
		testingHandle.Fatalf("missing oversize record: %v", scanResult.Excluded)
	}
	if record.Detail != "limit 1kb" {
		testingHandle.Fatalf("expected detail %q, got %q", "limit 1kb", record.Detail)
	}
}

// TestScannerGitignoreMatcher verifies that a compiled gitignore matcher
// contributes pattern exclusions alongside the configured patterns.
func TestScannerGitignoreMatcher(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "keys.secret"), "s3cr3t")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "readme.md"), "docs")

	scanner := commands.Scanner{
		GitignoreMatcher: gitignore.CompileIgnoreLines("*.secret"),
		MaxFileSizeBytes: defaultMaxSize,
	}
	scanResult, scanError := scanner.Scan(rootDirectory)
	if scanError != nil {
		testingHandle.Fatalf("Scan error: %v", scanError)
	}
	if len(scanResult.Included) != 1 || scanResult.Included[0] != "readme.md" {
		testingHandle.Fatalf("expected included [readme.md], got %v", scanResult.Included)
	}
	record, found := findExclusion(scanResult.Excluded, "keys.secret")
	if !found || record.Reason != types.ReasonIgnoredByPattern {
		testingHandle.Fatalf("expected keys.secret excluded by pattern, got %+v", scanResult.Excluded)
	}
}

// TestScannerMissingRoot verifies that an unreadable root fails the scan.
func TestScannerMissingRoot(testingHandle *testing.T) {
	scanner := commands.Scanner{MaxFileSizeBytes: defaultMaxSize}
	if _, scanError := scanner.Scan(filepath.Join(testingHandle.TempDir(), "absent")); scanError == nil {
		testingHandle.Fatalf("expected error for missing root")
	}
}

// TestBuildFileTree verifies nesting and ordering of the constructed tree.
func TestBuildFileTree(testingHandle *testing.T) {
	includedPaths := []string{
		"zeta.txt",
		"beta/deep/inner.go",
		"beta/outer.go",
		"alpha/readme.md",
	}
	rootNode := commands.BuildFileTree(includedPaths)

	if len(rootNode.Files) != 1 || rootNode.Files[0] != "zeta.txt" {
		testingHandle.Fatalf("expected root files [zeta.txt], got %v", rootNode.Files)
	}
	if len(rootNode.Directories) != 2 {
		testingHandle.Fatalf("expected 2 root directories, got %d", len(rootNode.Directories))
	}

	alphaNode, alphaExists := rootNode.Directories["alpha"]
	if !alphaExists || len(alphaNode.Files) != 1 || alphaNode.Files[0] != "readme.md" {
		testingHandle.Fatalf("unexpected alpha node: %+v", alphaNode)
	}

	betaNode, betaExists := rootNode.Directories["beta"]
	if !betaExists || len(betaNode.Files) != 1 || betaNode.Files[0] != "outer.go" {
		testingHandle.Fatalf("unexpected beta node: %+v", betaNode)
	}
	deepNode, deepExists := betaNode.Directories["deep"]
	if !deepExists || len(deepNode.Files) != 1 || deepNode.Files[0] != "inner.go" {
		testingHandle.Fatalf("unexpected deep node: %+v", deepNode)
	}
}

// TestBuildFileTreeEmpty verifies that no included paths yield an empty root.
func TestBuildFileTreeEmpty(testingHandle *testing.T) {
	rootNode := commands.BuildFileTree(nil)
	if len(rootNode.Files) != 0 || len(rootNode.Directories) != 0 {
		testingHandle.Fatalf("expected empty tree, got %+v", rootNode)
	}
}
