package deck

import (
	"github.com/samber/lo"

	"github.com/five82/tango/internal/vocab"
)

// Action is an input to the state machine.
type Action interface {
	apply(s State) State
}

// Reduce returns the state that results from applying a to s. The input
// state is left untouched. A cursor outside the visible projection is
// clamped before a is applied.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	next := s.clone()
	next.clamp()
	return a.apply(next)
}

// SelectSource switches the deck to another card set. Cards are cleared until
// the next SetCards. Search inputs are kept.
type SelectSource struct {
	Source Source
}

func (a SelectSource) apply(s State) State {
	return State{
		Source:        a.Source,
		OriginalOrder: []int{},
		Keyword:       s.Keyword,
		FavoritesOnly: s.FavoritesOnly,
	}
}

// SetCards replaces the card list. Cards are taken in display order. Nil
// overrides keep the prior cursor and shuffle flag. A shuffle mapping that
// does not fit the new list is dropped and the deck falls back to unshuffled.
type SetCards struct {
	Cards           []vocab.Word
	CurrentIndex    *int
	IsShuffled      *bool
	ShuffledIndices []int
}

func (a SetCards) apply(s State) State {
	n := len(a.Cards)
	s.Cards = vocab.CloneWords(a.Cards)

	shuffled := s.IsShuffled
	if a.IsShuffled != nil {
		shuffled = *a.IsShuffled
	}
	indices := s.ShuffledIndices
	if a.ShuffledIndices != nil {
		indices = a.ShuffledIndices
	}
	if shuffled && n > 0 && isPermutation(indices, n) {
		s.IsShuffled = true
		s.ShuffledIndices = cloneInts(indices)
	} else {
		s.IsShuffled = false
		s.ShuffledIndices = nil
	}
	s.OriginalOrder = originalOrder(s.ShuffledIndices, n)

	if a.CurrentIndex != nil {
		s.CurrentIndex = *a.CurrentIndex
	}
	s.clamp()
	return s
}

// Shuffle reorders the cards by Perm: the card shown at position Perm[d]
// moves to position d. The cursor stays on the same card. An invalid
// permutation leaves the state unchanged.
type Shuffle struct {
	Perm []int
}

func (a Shuffle) apply(s State) State {
	n := len(s.Cards)
	if n == 0 || !isPermutation(a.Perm, n) {
		return s
	}
	id, ok := s.currentID()
	base := s.ShuffledIndices
	if base == nil {
		base = identity(n)
	}

	cards := make([]vocab.Word, n)
	indices := make([]int, n)
	for d, p := range a.Perm {
		cards[d] = s.Cards[p]
		indices[d] = base[p]
	}
	s.Cards = cards
	s.IsShuffled = true
	s.ShuffledIndices = indices
	s.OriginalOrder = invert(indices)
	s.follow(id, ok)
	return s
}

// ResetOrder restores the base order. The cursor stays on the same card.
type ResetOrder struct{}

func (ResetOrder) apply(s State) State {
	if !s.IsShuffled {
		return s
	}
	id, ok := s.currentID()
	cards := make([]vocab.Word, len(s.Cards))
	for b, d := range s.OriginalOrder {
		cards[b] = s.Cards[d]
	}
	s.Cards = cards
	s.IsShuffled = false
	s.ShuffledIndices = nil
	s.OriginalOrder = identity(len(cards))
	s.follow(id, ok)
	return s
}

// SetIndex moves the cursor. Callers wrap at the boundaries (see Wrap);
// out-of-range values are clamped.
type SetIndex struct {
	Index int
}

func (a SetIndex) apply(s State) State {
	s.CurrentIndex = a.Index
	s.clamp()
	return s
}

// ToggleFavorite sets the favorite flag of one card in place.
type ToggleFavorite struct {
	WordID     string
	IsFavorite bool
}

func (a ToggleFavorite) apply(s State) State {
	id, ok := s.currentID()
	setFavorite(s.Cards, a.WordID, a.IsFavorite)
	s.follow(id, ok)
	return s
}

// SetUpdating marks a favorite update in flight.
type SetUpdating struct {
	Updating bool
}

func (a SetUpdating) apply(s State) State {
	s.IsUpdating = a.Updating
	return s
}

// SetQuery changes the search projection. The cursor stays on the current
// card while it remains visible.
type SetQuery struct {
	Keyword       string
	FavoritesOnly bool
}

func (a SetQuery) apply(s State) State {
	id, ok := s.currentID()
	s.Keyword = a.Keyword
	s.FavoritesOnly = a.FavoritesOnly
	s.follow(id, ok)
	return s
}

// Resync merges a fresh server copy of the card set, given in server order.
// An unshuffled deck adopts the server order. A shuffled deck keeps its
// display order by identity, appends cards it has not seen and drops the
// ones that are gone.
type Resync struct {
	Words []vocab.Word
}

func (a Resync) apply(s State) State {
	id, ok := s.currentID()
	if !s.IsShuffled {
		s.Cards = uniqueWords(a.Words)
		s.OriginalOrder = identity(len(s.Cards))
		s.follow(id, ok)
		return s
	}
	cards, indices := arrange(IDs(s.Cards), a.Words)
	s.Cards = cards
	if len(cards) == 0 {
		s.IsShuffled = false
		s.ShuffledIndices = nil
	} else {
		s.ShuffledIndices = indices
	}
	s.OriginalOrder = originalOrder(s.ShuffledIndices, len(cards))
	s.follow(id, ok)
	return s
}

// AppendCard adds one card after the others as the newest card of the server
// order. A shuffled deck shows it last. The cursor stays on the same card. A
// card whose id is already present is ignored.
type AppendCard struct {
	Word vocab.Word
}

func (a AppendCard) apply(s State) State {
	if lo.ContainsBy(s.Cards, func(w vocab.Word) bool { return w.ID == a.Word.ID }) {
		return s
	}
	id, ok := s.currentID()
	n := len(s.Cards)
	s.Cards = append(s.Cards, a.Word)
	if s.IsShuffled {
		s.ShuffledIndices = append(s.ShuffledIndices, n)
	}
	s.OriginalOrder = originalOrder(s.ShuffledIndices, n+1)
	s.follow(id, ok)
	return s
}

// ReplaceCard swaps the card with id ID for Word at the same position, as
// when a temporary card is confirmed by the server under its final id.
type ReplaceCard struct {
	ID   string
	Word vocab.Word
}

func (a ReplaceCard) apply(s State) State {
	_, d, found := lo.FindIndexOf(s.Cards, func(w vocab.Word) bool { return w.ID == a.ID })
	if !found {
		return s
	}
	if a.Word.ID != a.ID && lo.ContainsBy(s.Cards, func(w vocab.Word) bool { return w.ID == a.Word.ID }) {
		return RemoveCard{ID: a.ID}.apply(s)
	}
	id, ok := s.currentID()
	if ok && id == a.ID {
		id = a.Word.ID
	}
	s.Cards[d] = a.Word
	s.follow(id, ok)
	return s
}

// RemoveCard drops one card. A shuffled deck keeps the display order of the
// rest. The cursor stays on the same card, or is clamped when that card was
// the one removed.
type RemoveCard struct {
	ID string
}

func (a RemoveCard) apply(s State) State {
	_, d, found := lo.FindIndexOf(s.Cards, func(w vocab.Word) bool { return w.ID == a.ID })
	if !found {
		return s
	}
	id, ok := s.currentID()
	s.Cards = append(s.Cards[:d], s.Cards[d+1:]...)
	if s.IsShuffled {
		removed := s.ShuffledIndices[d]
		indices := append(s.ShuffledIndices[:d], s.ShuffledIndices[d+1:]...)
		for i, b := range indices {
			if b > removed {
				indices[i] = b - 1
			}
		}
		s.ShuffledIndices = indices
		if len(indices) == 0 {
			s.IsShuffled = false
			s.ShuffledIndices = nil
		}
	}
	s.OriginalOrder = originalOrder(s.ShuffledIndices, len(s.Cards))
	s.follow(id, ok)
	return s
}

// arrange lays out server words following order (a list of ids), then
// appends the server words order does not mention. It returns the cards and,
// for each, its position in the de-duplicated server list.
func arrange(order []string, words []vocab.Word) ([]vocab.Word, []int) {
	server := uniqueWords(words)
	pos := make(map[string]int, len(server))
	for i, w := range server {
		pos[w.ID] = i
	}
	cards := make([]vocab.Word, 0, len(server))
	indices := make([]int, 0, len(server))
	placed := make(map[string]bool, len(server))
	for _, id := range order {
		i, ok := pos[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		cards = append(cards, server[i])
		indices = append(indices, i)
	}
	for i, w := range server {
		if placed[w.ID] {
			continue
		}
		placed[w.ID] = true
		cards = append(cards, w)
		indices = append(indices, i)
	}
	return cards, indices
}

func setFavorite(cards []vocab.Word, id string, favorite bool) bool {
	for i := range cards {
		if cards[i].ID == id {
			cards[i].IsFavorite = favorite
			return true
		}
	}
	return false
}

// uniqueWords copies words keeping the first card of each id.
func uniqueWords(words []vocab.Word) []vocab.Word {
	return lo.UniqBy(words, func(w vocab.Word) string { return w.ID })
}
