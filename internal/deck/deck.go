// Package deck implements the flashcard navigation state machine.
//
// State is a value. Every transition goes through Reduce, which takes the
// current state and an Action and returns the next state without performing
// any I/O. Randomness is supplied by the caller (see Permutation) so that
// reductions stay deterministic.
//
// Cards are held in display order. When the deck is shuffled,
// ShuffledIndices[d] is the base (server) position of the card displayed at
// d, and OriginalOrder is its inverse: OriginalOrder[b] is the display
// position of base card b. When the deck is not shuffled ShuffledIndices is
// nil and OriginalOrder is the identity. Both always have len(Cards)
// entries, whatever sequence of actions was applied.
//
// CurrentIndex addresses the visible projection (Visible), which is the card
// list filtered by Keyword and FavoritesOnly.
package deck

import (
	"github.com/samber/lo"

	"github.com/five82/tango/internal/vocab"
)

// SourceKind tells where the cards of a deck come from.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceLevel
	SourceFolder
)

// Source identifies the card set being studied.
type Source struct {
	Kind SourceKind
	Name string
}

// LevelSource is a built-in preset identified by its level id.
func LevelSource(id string) Source { return Source{Kind: SourceLevel, Name: id} }

// FolderSource is a remote, user-owned folder.
func FolderSource(name string) Source { return Source{Kind: SourceFolder, Name: name} }

// Remote reports whether mutations on this source go to the server.
func (s Source) Remote() bool { return s.Kind == SourceFolder }

// Phase is the coarse state of the machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoaded
)

func (p Phase) String() string {
	if p == PhaseLoaded {
		return "loaded"
	}
	return "idle"
}

// State is the in-memory navigation state. It is never persisted.
type State struct {
	Source          Source
	Cards           []vocab.Word
	CurrentIndex    int
	IsShuffled      bool
	OriginalOrder   []int
	ShuffledIndices []int
	IsUpdating      bool
	Keyword         string
	FavoritesOnly   bool
}

// Phase derives the machine phase from the selected source.
func (s State) Phase() Phase {
	if s.Source.Kind == SourceNone {
		return PhaseIdle
	}
	return PhaseLoaded
}

// Visible returns the search projection the cursor moves over.
func (s State) Visible() []vocab.Word {
	return Filter(s.Cards, s.Keyword, s.FavoritesOnly)
}

// Current returns the card under the cursor. It reports false when the
// projection is empty or the cursor lies outside it.
func (s State) Current() (vocab.Word, bool) {
	visible := s.Visible()
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(visible) {
		return vocab.Word{}, false
	}
	return visible[s.CurrentIndex], true
}

// IndexOf returns the visible position of the card with the given id.
func (s State) IndexOf(id string) (int, bool) {
	_, idx, ok := lo.FindIndexOf(s.Visible(), func(w vocab.Word) bool { return w.ID == id })
	return idx, ok
}

// Next returns the cursor position after moving forward, wrapping at the end.
func (s State) Next() int { return Wrap(s.CurrentIndex+1, len(s.Visible())) }

// Prev returns the cursor position after moving back, wrapping at the start.
func (s State) Prev() int { return Wrap(s.CurrentIndex-1, len(s.Visible())) }

// Wrap maps i into [0, n) circularly. It returns 0 for empty lists.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// IDs lists card identities in order.
func IDs(cards []vocab.Word) []string {
	return lo.Map(cards, func(w vocab.Word, _ int) string { return w.ID })
}

func (s State) clone() State {
	s.Cards = vocab.CloneWords(s.Cards)
	s.OriginalOrder = cloneInts(s.OriginalOrder)
	s.ShuffledIndices = cloneInts(s.ShuffledIndices)
	return s
}

func (s State) currentID() (string, bool) {
	w, ok := s.Current()
	return w.ID, ok
}

// clamp keeps the cursor inside the visible projection.
func (s *State) clamp() {
	n := len(s.Visible())
	switch {
	case n == 0, s.CurrentIndex < 0:
		s.CurrentIndex = 0
	case s.CurrentIndex >= n:
		s.CurrentIndex = n - 1
	}
}

// follow moves the cursor onto the card with id when it is visible, and
// clamps otherwise.
func (s *State) follow(id string, ok bool) {
	if ok {
		if idx, found := s.IndexOf(id); found {
			s.CurrentIndex = idx
			return
		}
	}
	s.clamp()
}
