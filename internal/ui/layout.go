package ui

import "time"

// Layout sizes in terminal cells.
const (
	// SidebarWidth is the width of the list pane including its border.
	SidebarWidth = 28

	// LayoutCompactWidth is the threshold below which the sidebar is hidden
	// while the card pane has focus.
	LayoutCompactWidth = 70

	// CardMaxWidth caps the flashcard face on wide terminals.
	CardMaxWidth = 56

	// CardHeight is the height of the flashcard face.
	CardHeight = 9
)

// Timing constants.
const (
	// SearchDebounce is the quiet period before a typed keyword is applied.
	SearchDebounce = 250 * time.Millisecond

	// RequestTimeout bounds every mutation and translation request.
	RequestTimeout = 10 * time.Second
)
