// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// SessionUpdated signals that the search session changed state: new
// results, a status transition or a selection change. The model pulls
// fresh state from the session when it receives one.
type SessionUpdated struct{}

// CopyCompleted signals a clipboard copy attempt finished.
type CopyCompleted struct {
	Count int
	Err   error
}

// HistoryRecorded signals that the current query was written to the
// search history.
type HistoryRecorded struct {
	Query string
	Err   error
}

// FlashExpired clears a transient status bar message.
type FlashExpired struct{}

// Quit signals the application should exit.
type Quit struct{}
