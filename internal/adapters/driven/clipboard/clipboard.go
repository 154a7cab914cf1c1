// Package clipboard writes exports to the system clipboard.
package clipboard

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// writeAll is replaced in tests.
var writeAll = clipboard.WriteAll

// unsupported reports whether the platform has no clipboard utility.
var unsupported = func() bool { return clipboard.Unsupported }

// System is the platform clipboard.
type System struct{}

// New returns the platform clipboard.
func New() *System {
	return &System{}
}

// WriteText replaces the clipboard contents.
func (s *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if unsupported() {
		return domain.ErrClipboardUnavailable
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}
	return nil
}
