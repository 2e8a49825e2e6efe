// Package app provides the orchestration layer for the tango client.
//
// # Overview
//
// This package wires together configuration, logging, the API client, the
// data caches, the preset levels and the UI. It is the composition root of
// the tango binary.
//
// # Startup
//
//  1. Load the client config from ~/.config/tango/config.toml (plus .env and
//     TANGO_* overrides)
//  2. Open the JSON log file; the terminal belongs to the UI
//  3. Create the HTTP client and a cache.Library on top of it
//  4. Load the embedded preset levels and the saved preferences
//  5. Launch the background poller
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Polling Behavior
//
// The poller revalidates the folder list and every cached word list at a
// configurable interval (default: 2 seconds). Consecutive failures double the
// delay up to 30 seconds; the first success returns to the base interval.
// Changes reach the UI through cache subscriptions.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file unreadable or invalid
//   - Log file cannot be opened
//   - Invalid API URL
//
// Recoverable errors (logged, the UI keeps running):
//   - Unreadable preferences (defaults are used)
//   - Poll failures while the server is down
package app
