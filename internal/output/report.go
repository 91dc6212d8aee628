package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"llmctx/internal/types"
	"llmctx/internal/utils"
)

const (
	reportFoundFormat          = "Found %d total files/dirs.\n"
	reportPatternsFormat       = "Applying %d ignore patterns (including defaults).\n"
	reportExcludedHeaderFormat = "\nFiles/Directories to be EXCLUDED (%d):\n"
	reportIncludedHeaderFormat = "\nFiles to be INCLUDED (%d):\n"
	reportEntryFormat          = "  - %s\n"
	reportOverflowFormat       = "  ... and %d more.\n"
	reportEmptyListLine        = "  (None)\n"
	reportDestinationFormat    = "Output will be written to: %s\n"
	reportHintHeaderFormat     = "\nTo exclude specific files/directories, create a '%s' file\n"
	reportHintBodyFormat       = "in '%s' with one pattern per line (e.g., '*.log', 'dist/', 'build/').\n"

	// ScanningDirectoryFormat announces the scan root before traversal starts.
	ScanningDirectoryFormat = "\nScanning directory: %s\n"

	exclusionLabelFormat       = "%s (%s)"
	exclusionLabelDetailFormat = "%s (%s: %s)"

	excludedDisplayLimit = 20
	includedDisplayLimit = 30

	reportRuleWidth = 60

	indentPrefix = ""
	indentSpacer = "  "

	errorEncodeResultFormat = "encoding scan result: %w"
)

// reportRule separates the blocks of the pre-write report.
var reportRule = strings.Repeat("-", reportRuleWidth) + "\n"

// ScanReportOptions carries the figures shown before the confirmation prompt.
// OutputPath may be empty for preview runs that never write a document.
type ScanReportOptions struct {
	Result            types.ScanResult
	PatternCount      int
	RootDirectoryPath string
	OutputPath        string
}

// RenderScanReport produces the pre-write report: totals, capped samples of
// excluded and included paths, the destination path, and the ignore-file
// hint. The result slices are rendered in the order they arrive.
func RenderScanReport(options ScanReportOptions) string {
	builder := &strings.Builder{}

	builder.WriteString(reportRule)
	fmt.Fprintf(builder, reportFoundFormat, options.Result.FilesVisited)
	fmt.Fprintf(builder, reportPatternsFormat, options.PatternCount)
	builder.WriteString(reportRule)

	fmt.Fprintf(builder, reportExcludedHeaderFormat, len(options.Result.Excluded))
	writeExcludedSample(builder, options.Result.Excluded)

	fmt.Fprintf(builder, reportIncludedHeaderFormat, len(options.Result.Included))
	writeIncludedSample(builder, options.Result.Included)

	builder.WriteString(reportRule)
	if options.OutputPath != utils.EmptyString {
		fmt.Fprintf(builder, reportDestinationFormat, options.OutputPath)
	}
	fmt.Fprintf(builder, reportHintHeaderFormat, utils.IgnoreFileName)
	fmt.Fprintf(builder, reportHintBodyFormat, options.RootDirectoryPath)
	builder.WriteString(reportRule)

	return builder.String()
}

func writeExcludedSample(builder *strings.Builder, excludedRecords []types.ExclusionRecord) {
	if len(excludedRecords) == 0 {
		builder.WriteString(reportEmptyListLine)
		return
	}
	for recordIndex, excludedRecord := range excludedRecords {
		if recordIndex == excludedDisplayLimit {
			fmt.Fprintf(builder, reportOverflowFormat, len(excludedRecords)-excludedDisplayLimit)
			break
		}
		fmt.Fprintf(builder, reportEntryFormat, FormatExclusionLabel(excludedRecord))
	}
}

func writeIncludedSample(builder *strings.Builder, includedPaths []string) {
	if len(includedPaths) == 0 {
		builder.WriteString(reportEmptyListLine)
		return
	}
	for pathIndex, includedPath := range includedPaths {
		if pathIndex == includedDisplayLimit {
			fmt.Fprintf(builder, reportOverflowFormat, len(includedPaths)-includedDisplayLimit)
			break
		}
		fmt.Fprintf(builder, reportEntryFormat, includedPath)
	}
}

// FormatExclusionLabel renders one exclusion record as "path (reason)",
// appending the detail when the record carries one.
func FormatExclusionLabel(record types.ExclusionRecord) string {
	if record.Detail != "" {
		return fmt.Sprintf(exclusionLabelDetailFormat, record.RelativePath, record.Reason, record.Detail)
	}
	return fmt.Sprintf(exclusionLabelFormat, record.RelativePath, record.Reason)
}

// RenderScanResultJSON renders a scan result as indented JSON for the
// preview command.
func RenderScanResultJSON(result types.ScanResult) (string, error) {
	encodedResult, encodeError := json.MarshalIndent(result, indentPrefix, indentSpacer)
	if encodeError != nil {
		return "", fmt.Errorf(errorEncodeResultFormat, encodeError)
	}
	return string(encodedResult), nil
}

// FormatDocumentSummary renders the post-write summary line.
func FormatDocumentSummary(stats types.DocumentStats) string {
	fileLabel := "files"
	if stats.FilesWritten == 1 {
		fileLabel = "file"
	}
	tokenSuffix := ""
	if stats.TotalTokens > 0 {
		tokenSuffix = fmt.Sprintf(", %d tokens", stats.TotalTokens)
	}
	modelSuffix := ""
	if stats.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", stats.Model)
	}
	errorSuffix := ""
	if stats.ErrorMarkers > 0 {
		errorLabel := "read errors"
		if stats.ErrorMarkers == 1 {
			errorLabel = "read error"
		}
		errorSuffix = fmt.Sprintf(", %d %s", stats.ErrorMarkers, errorLabel)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s%s",
		stats.FilesWritten, fileLabel, utils.FormatFileSize(stats.BytesWritten), tokenSuffix, modelSuffix, errorSuffix)
}
