// Package clipboard bridges the system clipboard to the driven port.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driven"
)

// Ensure Writer implements the port.
var _ driven.Clipboard = (*Writer)(nil)

// Writer copies text to the host clipboard.
type Writer struct{}

// NewWriter creates a clipboard writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteText places text on the system clipboard. Headless hosts
// without a clipboard report domain.ErrClipboardUnavailable.
func (w *Writer) WriteText(text string) error {
	if clipboard.Unsupported {
		return domain.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}
	return nil
}
