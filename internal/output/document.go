// Package output renders scan results: the pre-write report, the directory
// tree, and the final context document.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"llmctx/internal/tokenizer"
	"llmctx/internal/types"
	"llmctx/internal/utils"
)

const (
	documentHeaderPathFormat      = "# Project Context for: %s\n"
	documentHeaderGeneratedFormat = "# Generated on: %s\n\n"

	directorySectionHeader = "== Directory Structure ==\n"
	contentsSectionHeader  = "== File Contents ==\n"

	fileStartFormat      = "--- START FILE: %s ---\n"
	fileEndFormat        = "--- END FILE: %s ---\n\n"
	fileErrorStartFormat = "--- ERROR READING FILE: %s ---\n"
	fileErrorBodyFormat  = "Error: %v\n"
	fileErrorEndFormat   = "--- END ERROR: %s ---\n\n"

	codeFenceOpenFormat = "```%s\n"
	codeFenceClose      = "\n```\n"

	sectionRuleWidth = 80

	// WarningFileReadFormat is used when an included file cannot be read during writing.
	WarningFileReadFormat = "Warning: Could not read file %s: %v\n"
	// warningTokenCountFormat is used when token estimation fails for a file.
	warningTokenCountFormat = "Warning: failed to count tokens for %s: %v\n"

	errorWriteDocumentFormat = "writing context document: %w"
)

// sectionRule separates the major document sections.
var sectionRule = strings.Repeat("=", sectionRuleWidth) + "\n"

// DocumentOptions carries everything WriteDocument needs to serialize one
// context document. RelativePaths must already be sorted and TreeRoot built
// from the same list.
type DocumentOptions struct {
	RootDirectoryPath string
	RelativePaths     []string
	TreeRoot          *types.TreeNode
	GeneratedAt       time.Time
	TokenCounter      tokenizer.Counter
	TokenModel        string
	Warn              func(string)
}

// documentWriter tracks the first write error so the serialization loop can
// stay linear.
type documentWriter struct {
	destination  io.Writer
	bytesWritten int64
	writeError   error
}

func (writer *documentWriter) printf(format string, arguments ...interface{}) {
	if writer.writeError != nil {
		return
	}
	written, printError := fmt.Fprintf(writer.destination, format, arguments...)
	writer.bytesWritten += int64(written)
	writer.writeError = printError
}

func (writer *documentWriter) print(text string) {
	if writer.writeError != nil {
		return
	}
	written, printError := io.WriteString(writer.destination, text)
	writer.bytesWritten += int64(written)
	writer.writeError = printError
}

// WriteDocument serializes the context document: header, fenced directory
// tree, and one annotated block per included file. A file that cannot be
// read becomes an inline error block and serialization continues; a write
// failure on the destination aborts with an error.
func WriteDocument(destination io.Writer, options DocumentOptions) (types.DocumentStats, error) {
	warn := options.Warn
	if warn == nil {
		warn = func(string) {}
	}

	writer := &documentWriter{destination: destination}
	stats := types.DocumentStats{}

	writer.printf(documentHeaderPathFormat, options.RootDirectoryPath)
	writer.printf(documentHeaderGeneratedFormat, utils.FormatGeneratedTimestamp(options.GeneratedAt))

	writer.print(sectionRule)
	writer.print(directorySectionHeader)
	writer.print(sectionRule)
	writer.print("\n")

	rootLabel := filepath.Base(options.RootDirectoryPath) + "/"
	writer.printf(codeFenceOpenFormat, "")
	writer.print(RenderFileTree(rootLabel, options.TreeRoot))
	writer.print(codeFenceClose)
	writer.print("\n")

	writer.print(sectionRule)
	writer.print(contentsSectionHeader)
	writer.print(sectionRule)
	writer.print("\n")

	for _, relativePath := range options.RelativePaths {
		fullPath := filepath.Join(options.RootDirectoryPath, filepath.FromSlash(relativePath))
		fileBytes, fileReadError := os.ReadFile(fullPath)
		if fileReadError != nil {
			writer.printf(fileErrorStartFormat, relativePath)
			writer.printf(fileErrorBodyFormat, fileReadError)
			writer.printf(fileErrorEndFormat, relativePath)
			warn(fmt.Sprintf(WarningFileReadFormat, relativePath, fileReadError))
			stats.ErrorMarkers++
			continue
		}

		writer.printf(fileStartFormat, relativePath)
		writer.printf(codeFenceOpenFormat, LanguageHint(relativePath))
		writer.print(strings.TrimSpace(string(fileBytes)))
		writer.print(codeFenceClose)
		writer.printf(fileEndFormat, relativePath)
		stats.FilesWritten++

		if options.TokenCounter != nil {
			countResult, tokenError := tokenizer.CountBytes(options.TokenCounter, fileBytes)
			if tokenError != nil {
				warn(fmt.Sprintf(warningTokenCountFormat, relativePath, tokenError))
			} else if countResult.Counted {
				stats.TotalTokens += countResult.Tokens
			}
		}
	}

	if options.TokenCounter != nil && stats.TotalTokens > 0 {
		stats.Model = options.TokenModel
	}
	stats.BytesWritten = writer.bytesWritten
	if writer.writeError != nil {
		return stats, fmt.Errorf(errorWriteDocumentFormat, writer.writeError)
	}
	return stats, nil
}
