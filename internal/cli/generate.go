package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"llmctx/internal/commands"
	"llmctx/internal/config"
	"llmctx/internal/output"
	"llmctx/internal/services/clipboard"
	"llmctx/internal/tokenizer"
)

const (
	generateUse              = "generate [directory]"
	generateAlias            = "g"
	generateShortDescription = "generate the context document (" + generateAlias + ")"
	generateLongDescription  = `Scan a directory, show what will be included, and write the combined
context document after confirmation.
Use -e to add exclusion patterns, -y to skip the confirmation prompt, and
--tokens to estimate the document's token count.`
	generateUsageExample = `  # Generate llm_context.txt for the current directory
  llmctx generate

  # Write a custom output file without confirmation
  llmctx generate -o context.txt -y ./src

  # Exclude test fixtures and copy the result to the clipboard
  llmctx generate -e 'testdata/' --copy .`

	outputFlagName           = "output"
	outputFlagShorthand      = "o"
	assumeYesFlagName        = "yes"
	assumeYesFlagShorthand   = "y"
	copyFlagName             = "copy"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	outputFlagDescription    = "output file path"
	assumeYesFlagDescription = "skip the confirmation prompt"
	copyFlagDescription      = "copy the generated document to the clipboard"
	tokensFlagDescription    = "include token counts"
	modelFlagDescription     = "tokenizer model to use for token counting"

	defaultOutputFileName = "llm_context.txt"

	generatingFileFormat  = "\nGenerating %s...\n"
	generatedFileFormat   = "\nSuccessfully generated context file: %s\n"
	copiedToClipboardLine = "Copied context document to clipboard."

	warningClipboardFormat = "Warning: could not copy to clipboard: %v\n"

	errorNoFilesFormat      = "no files to include under %s"
	errorCreateOutputFormat = "creating output file %s: %w"
	errorCloseOutputFormat  = "closing output file %s: %w"
)

// generateOptions captures the fully resolved inputs of one generate run.
type generateOptions struct {
	outputPath        string
	maxFileSizeBytes  int64
	assumeYes         bool
	copyToClipboard   bool
	tokensEnabled     bool
	tokenizerModel    string
	exclusionPatterns []string
	useGitignore      bool
	useIgnoreFile     bool
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand() *cobra.Command {
	var pathConfiguration pathOptions
	var outputPath string
	var maxFileSizeBytes int64
	var assumeYes bool
	var copyToClipboard bool
	var tokensEnabled bool
	var tokenizerModel string

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
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
			generateConfiguration := applicationConfiguration.Generate

			if !command.Flags().Changed(outputFlagName) && generateConfiguration.Output != "" {
				outputPath = generateConfiguration.Output
			}
			if !command.Flags().Changed(maxSizeFlagName) && generateConfiguration.MaxFileSize != nil {
				maxFileSizeBytes = *generateConfiguration.MaxFileSize
			}
			if !command.Flags().Changed(assumeYesFlagName) && generateConfiguration.AssumeYes != nil {
				assumeYes = *generateConfiguration.AssumeYes
			}
			if !command.Flags().Changed(copyFlagName) && generateConfiguration.Clipboard != nil {
				copyToClipboard = *generateConfiguration.Clipboard
			}
			if !command.Flags().Changed(tokensFlagName) && generateConfiguration.Tokens.Enabled != nil {
				tokensEnabled = *generateConfiguration.Tokens.Enabled
			}
			if !command.Flags().Changed(modelFlagName) && generateConfiguration.Tokens.Model != "" {
				tokenizerModel = generateConfiguration.Tokens.Model
			}
			exclusionPatterns, useGitignore, useIgnoreFile := resolvePathRules(command, pathConfiguration, generateConfiguration.Paths)

			return runGenerate(rootArgument, generateOptions{
				outputPath:        outputPath,
				maxFileSizeBytes:  maxFileSizeBytes,
				assumeYes:         assumeYes,
				copyToClipboard:   copyToClipboard,
				tokensEnabled:     tokensEnabled,
				tokenizerModel:    tokenizerModel,
				exclusionPatterns: exclusionPatterns,
				useGitignore:      useGitignore,
				useIgnoreFile:     useIgnoreFile,
			})
		},
	}

	addPathFlags(generateCommand, &pathConfiguration)
	generateCommand.Flags().StringVarP(&outputPath, outputFlagName, outputFlagShorthand, defaultOutputFileName, outputFlagDescription)
	generateCommand.Flags().Int64Var(&maxFileSizeBytes, maxSizeFlagName, defaultMaxFileSizeBytes, maxSizeFlagDescription)
	generateCommand.Flags().BoolVarP(&assumeYes, assumeYesFlagName, assumeYesFlagShorthand, false, assumeYesFlagDescription)
	generateCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	generateCommand.Flags().BoolVar(&tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	generateCommand.Flags().StringVar(&tokenizerModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	return generateCommand
}

// runGenerate performs the scan, the pre-write report, the confirmation
// prompt, and the document write for one directory.
func runGenerate(rootArgument string, options generateOptions) error {
	validatedRoot, rootValidationError := resolveAndValidateRoot(rootArgument)
	if rootValidationError != nil {
		return rootValidationError
	}

	scanResult, patternCount, scanError := executeScan(validatedRoot, scanConfiguration{
		exclusionPatterns: options.exclusionPatterns,
		useGitignore:      options.useGitignore,
		useIgnoreFile:     options.useIgnoreFile,
		maxFileSizeBytes:  options.maxFileSizeBytes,
		announce:          true,
	})
	if scanError != nil {
		return scanError
	}

	outputAbsolutePath, outputPathError := filepath.Abs(options.outputPath)
	if outputPathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, options.outputPath, outputPathError)
	}

	fmt.Print(output.RenderScanReport(output.ScanReportOptions{
		Result:            scanResult,
		PatternCount:      patternCount,
		RootDirectoryPath: validatedRoot.AbsolutePath,
		OutputPath:        outputAbsolutePath,
	}))

	if len(scanResult.Included) == 0 {
		return fmt.Errorf(errorNoFilesFormat, validatedRoot.AbsolutePath)
	}

	if !options.assumeYes {
		confirmed, confirmationError := confirmProceed(os.Stdin, os.Stdout)
		if confirmationError != nil {
			return confirmationError
		}
		if !confirmed {
			fmt.Println(abortedByUserMessage)
			return nil
		}
	}

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if options.tokensEnabled {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokenizerModel})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}

	fmt.Printf(generatingFileFormat, options.outputPath)

	destinationFile, createError := os.Create(outputAbsolutePath)
	if createError != nil {
		return fmt.Errorf(errorCreateOutputFormat, options.outputPath, createError)
	}

	var destination io.Writer = destinationFile
	var clipboardBuffer *bytes.Buffer
	if options.copyToClipboard {
		clipboardBuffer = &bytes.Buffer{}
		destination = io.MultiWriter(destinationFile, clipboardBuffer)
	}

	stats, writeError := output.WriteDocument(destination, output.DocumentOptions{
		RootDirectoryPath: validatedRoot.AbsolutePath,
		RelativePaths:     scanResult.Included,
		TreeRoot:          commands.BuildFileTree(scanResult.Included),
		GeneratedAt:       time.Now(),
		TokenCounter:      tokenCounter,
		TokenModel:        tokenModel,
		Warn:              func(message string) { fmt.Fprint(os.Stderr, message) },
	})
	if writeError != nil {
		_ = destinationFile.Close()
		return writeError
	}
	if closeError := destinationFile.Close(); closeError != nil {
		return fmt.Errorf(errorCloseOutputFormat, options.outputPath, closeError)
	}

	if options.copyToClipboard {
		if copyError := clipboard.NewSystemCopier().Copy(clipboardBuffer.String()); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		} else {
			fmt.Println(copiedToClipboardLine)
		}
	}

	fmt.Printf(generatedFileFormat, outputAbsolutePath)
	fmt.Println(output.FormatDocumentSummary(stats))
	return nil
}
