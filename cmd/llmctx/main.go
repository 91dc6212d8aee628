package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"llmctx/internal/cli"
	"llmctx/internal/utils"
)

// main is the entry point for the llmctx command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() {
		// Sync on a terminal stderr fails with an invalid-argument error.
		if term.IsTerminal(int(os.Stderr.Fd())) {
			return
		}
		_ = loggerInstance.Sync()
	}()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(fmt.Sprintf(utils.ErrorLogFormat, applicationExecutionError))
	}
}
