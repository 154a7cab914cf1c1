package driven

import "context"

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	// WriteText replaces the clipboard contents.
	WriteText(ctx context.Context, text string) error
}
