// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"

	"llmctx/internal/commands"
	"llmctx/internal/config"
	"llmctx/internal/output"
	"llmctx/internal/types"
	"llmctx/internal/utils"
)

const (
	versionFlagName      = "version"
	versionTemplate      = "llmctx version: %s\n"
	defaultPath          = "."
	rootUse              = "llmctx"
	rootShortDescription = "llmctx command line interface"
	rootLongDescription  = `llmctx assembles a source tree into one context document for a language model.
It scans a directory, filters files through ignore patterns and content
heuristics, and concatenates what survives with start/end delimiters, a
directory tree, and markdown language hints.`
	versionFlagDescription = "display application version"

	exclusionFlagName               = "e"
	noGitignoreFlagName             = "no-gitignore"
	noIgnoreFlagName                = "no-ignore"
	maxSizeFlagName                 = "max-size"
	exclusionFlagDescription        = "exclude path pattern"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .llmignore"
	maxSizeFlagDescription          = "maximum size in bytes for an included file"

	defaultMaxFileSizeBytes int64 = 1024 * 1024

	infoLoadedPatternsFormat    = "INFO: Loaded %d patterns from %s\n"
	infoIgnoreFileMissingFormat = "INFO: %s not found in %s. Including all found files (respecting defaults like %s).\n"
	warningIgnoreFileReadFormat = "WARNING: Could not read %s: %v\n"
	warningGitignoreLoadFormat  = "Warning: could not load %s: %v\n"

	invalidFormatMessage = "Invalid format value '%s'"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing root path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root path that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
)

// supportedPreviewFormats lists the accepted values for the format flag.
var supportedPreviewFormats = []string{types.FormatRaw, types.FormatJSON}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	return utils.ContainsString(supportedPreviewFormats, format)
}

// Execute runs the llmctx application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createGenerateCommand(),
		createPreviewCommand(),
		createConfigCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	command.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	command.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
}

// resolvePathRules merges path flag values with configured defaults. Flags
// the user set explicitly win over configuration values; configured
// exclusions apply alongside the flag patterns.
func resolvePathRules(command *cobra.Command, options pathOptions, configured config.PathConfiguration) ([]string, bool, bool) {
	useGitignore := !options.disableGitignore
	if !command.Flags().Changed(noGitignoreFlagName) && configured.UseGitignore != nil {
		useGitignore = *configured.UseGitignore
	}
	useIgnoreFile := !options.disableIgnoreFile
	if !command.Flags().Changed(noIgnoreFlagName) && configured.UseIgnoreFile != nil {
		useIgnoreFile = *configured.UseIgnoreFile
	}
	exclusionPatterns := append(append([]string{}, configured.Exclude...), options.exclusionPatterns...)
	return exclusionPatterns, useGitignore, useIgnoreFile
}

// scanConfiguration carries the resolved inputs for one scan.
type scanConfiguration struct {
	exclusionPatterns []string
	useGitignore      bool
	useIgnoreFile     bool
	maxFileSizeBytes  int64
	announce          bool
}

// executeScan loads the ignore rules for the root, walks it, and returns the
// partitioned result plus the number of patterns that were applied. With
// announce set, the pattern-loading outcome and the scan root are printed
// before traversal starts.
func executeScan(validatedRoot types.ValidatedPath, configuration scanConfiguration) (types.ScanResult, int, error) {
	var filePatterns []string
	if configuration.useIgnoreFile {
		ignoreFilePath := filepath.Join(validatedRoot.AbsolutePath, utils.IgnoreFileName)
		loadedPatterns, ignoreFileFound, ignoreLoadError := config.LoadIgnoreFilePatterns(ignoreFilePath)
		switch {
		case ignoreLoadError != nil:
			fmt.Fprintf(os.Stderr, warningIgnoreFileReadFormat, ignoreFilePath, ignoreLoadError)
		case ignoreFileFound:
			filePatterns = loadedPatterns
			if configuration.announce {
				fmt.Printf(infoLoadedPatternsFormat, len(loadedPatterns), ignoreFilePath)
			}
		default:
			if configuration.announce {
				fmt.Printf(infoIgnoreFileMissingFormat, utils.IgnoreFileName, validatedRoot.AbsolutePath, utils.GitDirectoryName)
			}
		}
	}

	combinedPatterns := config.CombineIgnorePatterns(filePatterns, configuration.exclusionPatterns, config.DefaultIgnorePatterns())

	var gitignoreMatcher *gitignore.GitIgnore
	if configuration.useGitignore {
		loadedMatcher, matcherError := config.LoadGitignoreMatcher(validatedRoot.AbsolutePath)
		if matcherError != nil {
			fmt.Fprintf(os.Stderr, warningGitignoreLoadFormat, utils.GitIgnoreFileName, matcherError)
		} else {
			gitignoreMatcher = loadedMatcher
		}
	}

	if configuration.announce {
		fmt.Printf(output.ScanningDirectoryFormat, validatedRoot.AbsolutePath)
	}

	scanner := commands.Scanner{
		IgnorePatterns:   combinedPatterns,
		GitignoreMatcher: gitignoreMatcher,
		MaxFileSizeBytes: configuration.maxFileSizeBytes,
		Warn:             func(message string) { fmt.Fprint(os.Stderr, message) },
	}
	scanResult, scanError := scanner.Scan(validatedRoot.AbsolutePath)
	if scanError != nil {
		return types.ScanResult{}, 0, scanError
	}
	return scanResult, len(combinedPatterns), nil
}

// resolveAndValidateRoot converts the input path to absolute form and
// verifies it names an existing directory.
func resolveAndValidateRoot(inputPath string) (types.ValidatedPath, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	pathInfo, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !pathInfo.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}
