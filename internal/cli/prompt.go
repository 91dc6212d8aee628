package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	confirmationPrompt   = "Proceed with generating the context file? (y/N): "
	abortedByUserMessage = "Aborted by user."

	answerYesShort = "y"
	answerYesLong  = "yes"

	errorPromptUnavailable = "non-interactive environment detected or end of input, aborting"
)

// confirmProceed prints the confirmation prompt and reads one response line.
// Only an explicit yes proceeds; anything else declines. End of input before
// any response means the answer cannot be collected at all.
func confirmProceed(inputReader io.Reader, outputWriter io.Writer) (bool, error) {
	fmt.Fprint(outputWriter, confirmationPrompt)
	responseLine, readError := bufio.NewReader(inputReader).ReadString('\n')
	if readError != nil && responseLine == "" {
		return false, errors.New(errorPromptUnavailable)
	}
	normalizedResponse := strings.ToLower(strings.TrimSpace(responseLine))
	return normalizedResponse == answerYesShort || normalizedResponse == answerYesLong, nil
}
