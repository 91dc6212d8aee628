package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"llmctx/internal/utils"
)

// textFileName defines the name of the text file used in tests.
const textFileName = "sample.txt"

// binaryFileName defines the name of the binary file used in tests.
const binaryFileName = "sample.bin"

// probeLength mirrors the number of bytes the sniffer reads.
const probeLength = 1024

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			testName: "empty input",
			patterns: nil,
			expected: []string{},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected length %d, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %s at position %d, got %s", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

// TestContainsString verifies that ContainsString locates strings in a slice.
func TestContainsString(testingInstance *testing.T) {
	values := []string{"raw", "json"}
	if !utils.ContainsString(values, "raw") {
		testingInstance.Errorf("expected slice to contain raw")
	}
	if utils.ContainsString(values, "xml") {
		testingInstance.Errorf("did not expect slice to contain xml")
	}
	if utils.ContainsString(nil, "raw") {
		testingInstance.Errorf("did not expect nil slice to contain raw")
	}
}

// TestRelativePathOrSelf verifies relative path calculation against a root.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	nestedPath := filepath.Join(rootDirectory, "src", "main.go")

	if result := utils.RelativePathOrSelf(rootDirectory, rootDirectory); result != "." {
		testingInstance.Errorf("expected . for identical paths, got %s", result)
	}
	if result := utils.RelativePathOrSelf(nestedPath, rootDirectory); result != "src/main.go" {
		testingInstance.Errorf("expected src/main.go, got %s", result)
	}
}

// TestIsBinary verifies the null byte probe.
func TestIsBinary(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		data     []byte
		expected bool
	}{
		{testName: "empty", data: nil, expected: false},
		{testName: "plain text", data: []byte("package main"), expected: false},
		{testName: "leading null", data: []byte{0x00, 0x41}, expected: true},
		{testName: "embedded null", data: []byte("text\x00more"), expected: true},
		{testName: "high bytes without null", data: []byte{0xff, 0xfe, 0x41}, expected: false},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.testName, func(subTest *testing.T) {
			if result := utils.IsBinary(testCase.data); result != testCase.expected {
				subTest.Fatalf("expected %t, got %t", testCase.expected, result)
			}
		})
	}
}

// TestSniffFile verifies the bounded content sample read.
func TestSniffFile(testingInstance *testing.T) {
	tempDir := testingInstance.TempDir()

	textPath := filepath.Join(tempDir, textFileName)
	if err := os.WriteFile(textPath, []byte("plain text"), 0o600); err != nil {
		testingInstance.Fatalf("write sample file: %v", err)
	}
	sample, sniffError := utils.SniffFile(textPath)
	if sniffError != nil {
		testingInstance.Fatalf("unexpected sniff error: %v", sniffError)
	}
	if string(sample) != "plain text" {
		testingInstance.Fatalf("expected full short file content, got %q", string(sample))
	}

	longContent := strings.Repeat("a", probeLength) + "\x00tail"
	longPath := filepath.Join(tempDir, binaryFileName)
	if err := os.WriteFile(longPath, []byte(longContent), 0o600); err != nil {
		testingInstance.Fatalf("write long file: %v", err)
	}
	longSample, longError := utils.SniffFile(longPath)
	if longError != nil {
		testingInstance.Fatalf("unexpected sniff error: %v", longError)
	}
	if len(longSample) != probeLength {
		testingInstance.Fatalf("expected sample of %d bytes, got %d", probeLength, len(longSample))
	}
	if bytes.ContainsRune(longSample, 0) {
		testingInstance.Fatalf("null byte past the probe boundary should not appear in the sample")
	}

	if _, missingError := utils.SniffFile(filepath.Join(tempDir, "missing.txt")); missingError == nil {
		testingInstance.Fatalf("expected error for missing file")
	}
}

// TestDetectMimeType verifies content type detection from samples.
func TestDetectMimeType(testingInstance *testing.T) {
	if mimeType := utils.DetectMimeType([]byte("plain text")); mimeType != "text/plain; charset=utf-8" {
		testingInstance.Fatalf("expected text/plain mime type, got %q", mimeType)
	}
	if mimeType := utils.DetectMimeType([]byte{0x00, 0x01, 0x02}); mimeType != "application/octet-stream" {
		testingInstance.Fatalf("expected octet-stream mime type, got %q", mimeType)
	}
	if mimeType := utils.DetectMimeType(nil); mimeType != "" {
		testingInstance.Fatalf("expected empty mime type for empty sample, got %q", mimeType)
	}
}
