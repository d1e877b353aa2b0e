package driven

// Clipboard is a host-provided sink for copied text.
type Clipboard interface {
	// WriteText places text on the system clipboard.
	WriteText(text string) error
}
