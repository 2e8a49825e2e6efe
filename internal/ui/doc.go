// Package ui provides the terminal flashcard client for tango.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds the sidebar (preset levels and
// the user's folders), the deck state from package deck, and the transient
// chrome: search box, dialogs, notices and help overlay. All server access
// happens in tea.Cmd functions that report back through messages defined in
// commands.go, so Update never blocks.
//
// # Data Flow
//
//  1. New subscribes to both caches of the cache.Library and reopens the
//     remembered level or folder.
//  2. Cache notifications arrive as cacheChangedMsg and are merged into the
//     deck by card identity (deck.Resync).
//  3. Favorite toggles are optimistic: the card flips at once, the request
//     carries a deck snapshot, and the answer is reconciled against that
//     snapshot or rolled back.
//  4. New words appear immediately under a temporary id and are swapped for
//     the server's copy when it arrives.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View and Run
//   - commands.go: messages and the commands that call remote.API
//   - sidebar.go: level and folder list, folder create/delete
//   - study.go: card navigation, shuffle, favorites, word add/delete
//   - search.go: debounced keyword search and the favorites filter
//   - modal.go: confirm, prompt and add-word dialogs
//   - view.go, help.go: rendering
//   - theme.go, keys.go, layout.go: styles, key bindings and sizes
//
// # Key Bindings
//
//   - Tab: Switch between the list and the cards
//   - j/k, Enter: Move in the list and open an entry
//   - h/l: Previous/next card, Space flips the card
//   - f: Toggle favorite, F shows favorites only
//   - S/O: Shuffle and restore the original order
//   - /: Search Korean and Japanese text
//   - a/x: Add or delete a word, n/D create or delete a folder
//   - T: Cycle theme, ?: Help, q: Quit
package ui
