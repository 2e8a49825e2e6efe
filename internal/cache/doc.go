// Package cache provides the client-side data cache shared by the background
// poller and the UI.
//
// # Overview
//
// Values are stored per resource key, the same path the value is fetched
// from ("/folders", "/folders/{name}/words"). The poller and the UI both go
// through Fetch, so two concurrent fetches of a key issue one request.
//
//	Poller / UI:                  Cache:
//	┌──────────────────┐         ┌─────────────────────┐
//	│ Fetch(key, fn)   │────────→│ singleflight by key │
//	│ Mutate(key, fn)  │────────→│ version++           │
//	│ Subscribe()      │←────────│ notify(key)         │
//	└──────────────────┘         └─────────────────────┘
//
// # Optimistic updates
//
// Mutate writes a local value immediately. Every write bumps the key's
// version; a fetch that started before the write completes without storing
// its result, so an optimistic value is not clobbered by a response that
// predates it. When the server rejects a change the caller reverts just that
// change with another Mutate, leaving other local edits to the key in place,
// and a following Fetch resyncs.
//
// # Failure tracking
//
// Failed fetches keep the previous value, record LastError and increment
// ConsecutiveFailures; IsOffline reports two or more failures in a row.
package cache
