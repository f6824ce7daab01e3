package port

import "context"

// Clipboard defines the port interface for reading the OS clipboard.
// The engine never touches the clipboard; hosts read it and feed the text
// in as a paste event.
type Clipboard interface {
	// ReadText reads text from the clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	ReadText(ctx context.Context) (string, error)

	// HasText returns true if the clipboard contains text data.
	HasText(ctx context.Context) (bool, error)
}
