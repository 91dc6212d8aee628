// Package clipboard copies generated documents to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

const errorCopyFormat = "copying to clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemCopier implements Copier using github.com/atotto/clipboard.
type SystemCopier struct{}

// NewSystemCopier constructs the platform clipboard implementation.
func NewSystemCopier() *SystemCopier {
	return &SystemCopier{}
}

// Copy writes text to the system clipboard.
func (copier *SystemCopier) Copy(text string) error {
	if copyError := clipboard.WriteAll(text); copyError != nil {
		return fmt.Errorf(errorCopyFormat, copyError)
	}
	return nil
}

var _ Copier = (*SystemCopier)(nil)
