package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"llmctx/internal/config"
	"llmctx/internal/output"
	"llmctx/internal/types"
)

const (
	previewUse              = "preview [directory]"
	previewAlias            = "p"
	previewShortDescription = "preview included and excluded files (" + previewAlias + ")"
	previewLongDescription  = `Scan a directory and show which files the generate command would include,
without writing anything.
Use --format to select raw or json output.`
	previewUsageExample = `  # Preview the current directory
  llmctx preview

  # Machine-readable preview of a subdirectory
  llmctx preview --format json ./src`

	formatFlagName        = "format"
	formatFlagDescription = "output format"
)

// previewOptions captures the fully resolved inputs of one preview run.
type previewOptions struct {
	format            string
	maxFileSizeBytes  int64
	exclusionPatterns []string
	useGitignore      bool
	useIgnoreFile     bool
}

// createPreviewCommand returns the preview subcommand.
func createPreviewCommand() *cobra.Command {
	var pathConfiguration pathOptions
	var outputFormat string
	var maxFileSizeBytes int64

	previewCommand := &cobra.Command{
		Use:     previewUse,
		Aliases: []string{previewAlias},
		Short:   previewShortDescription,
		Long:    previewLongDescription,
		Example: previewUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultPath
			if len(arguments) > 0 {
				rootArgument = arguments[0]
			}

			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
			if configurationError != nil {
				return configurationError
			}
			previewConfiguration := applicationConfiguration.Preview

			if !command.Flags().Changed(formatFlagName) && previewConfiguration.Format != "" {
				outputFormat = previewConfiguration.Format
			}
			if !command.Flags().Changed(maxSizeFlagName) && previewConfiguration.MaxFileSize != nil {
				maxFileSizeBytes = *previewConfiguration.MaxFileSize
			}
			exclusionPatterns, useGitignore, useIgnoreFile := resolvePathRules(command, pathConfiguration, previewConfiguration.Paths)

			outputFormatLower := strings.ToLower(outputFormat)
			if !isSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormatLower)
			}

			return runPreview(rootArgument, previewOptions{
				format:            outputFormatLower,
				maxFileSizeBytes:  maxFileSizeBytes,
				exclusionPatterns: exclusionPatterns,
				useGitignore:      useGitignore,
				useIgnoreFile:     useIgnoreFile,
			})
		},
	}

	addPathFlags(previewCommand, &pathConfiguration)
	previewCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	previewCommand.Flags().Int64Var(&maxFileSizeBytes, maxSizeFlagName, defaultMaxFileSizeBytes, maxSizeFlagDescription)
	return previewCommand
}

// runPreview scans the directory and prints the inclusion report or its
// JSON form.
func runPreview(rootArgument string, options previewOptions) error {
	validatedRoot, rootValidationError := resolveAndValidateRoot(rootArgument)
	if rootValidationError != nil {
		return rootValidationError
	}

	scanResult, patternCount, scanError := executeScan(validatedRoot, scanConfiguration{
		exclusionPatterns: options.exclusionPatterns,
		useGitignore:      options.useGitignore,
		useIgnoreFile:     options.useIgnoreFile,
		maxFileSizeBytes:  options.maxFileSizeBytes,
		announce:          options.format == types.FormatRaw,
	})
	if scanError != nil {
		return scanError
	}

	if options.format == types.FormatJSON {
		renderedResult, renderError := output.RenderScanResultJSON(scanResult)
		if renderError != nil {
			return renderError
		}
		fmt.Println(renderedResult)
		return nil
	}

	fmt.Print(output.RenderScanReport(output.ScanReportOptions{
		Result:            scanResult,
		PatternCount:      patternCount,
		RootDirectoryPath: validatedRoot.AbsolutePath,
	}))
	return nil
}
