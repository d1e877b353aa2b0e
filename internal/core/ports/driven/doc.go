// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogProvider: Supplies the raw permission catalog
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Durable search history. Without it, history is
//     session-scoped only.
//   - SavedSearchStore: Durable saved searches. Without it, saved
//     searches are session-scoped only.
//   - Clipboard: System clipboard sink. Without it, name copying is
//     disabled.
//   - ConfigStore: Application configuration. Without it, defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
