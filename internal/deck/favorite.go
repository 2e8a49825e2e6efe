package deck

import (
	"slices"

	"github.com/samber/lo"

	"github.com/five82/tango/internal/vocab"
)

// FavoriteSnapshot is what a favorite update needs to know about the deck
// as it was when the update started. It is captured before the request is
// sent and handed back to the completion handler unchanged.
type FavoriteSnapshot struct {
	Source    Source
	WordID    string
	Previous  bool
	Next      bool
	CurrentID string
	Order     []string
	Shuffled  bool
}

// CaptureFavorite snapshots s for toggling the favorite flag of wordID. It
// reports false when the card is not in the deck.
func CaptureFavorite(s State, wordID string) (FavoriteSnapshot, bool) {
	var card vocab.Word
	found := false
	for _, w := range s.Cards {
		if w.ID == wordID {
			card, found = w, true
			break
		}
	}
	if !found {
		return FavoriteSnapshot{}, false
	}
	current, _ := s.currentID()
	return FavoriteSnapshot{
		Source:    s.Source,
		WordID:    wordID,
		Previous:  card.IsFavorite,
		Next:      !card.IsFavorite,
		CurrentID: current,
		Order:     IDs(s.Cards),
		Shuffled:  s.IsShuffled,
	}, true
}

// Optimistic is the immediate flip applied before the server answers.
func (f FavoriteSnapshot) Optimistic() ToggleFavorite {
	return ToggleFavorite{WordID: f.WordID, IsFavorite: f.Next}
}

// Merge combines the server's answer to the update with the local copy of
// the card set. Cards the local copy lost since the snapshot stay gone, and
// local cards the snapshot did not have are kept when the server did not
// return them. The result is in server order with the local additions last.
func (f FavoriteSnapshot) Merge(server, local []vocab.Word) []vocab.Word {
	inSnapshot := idSet(f.Order)
	inLocal := idSet(IDs(local))
	inServer := idSet(IDs(server))

	out := lo.Filter(server, func(w vocab.Word, _ int) bool {
		return !inSnapshot[w.ID] || inLocal[w.ID]
	})
	for _, w := range local {
		if !inSnapshot[w.ID] && !inServer[w.ID] {
			out = append(out, w)
		}
	}
	return uniqueWords(out)
}

// ReconcileFavorite applies the server's answer to a favorite update. Words
// is the full set in server order; the displayed order is rebuilt from the
// snapshot by identity and the cursor returns to the card that was shown,
// or to 0 when that card is gone. When the deck was reordered after the
// snapshot was taken, its current order is kept instead.
type ReconcileFavorite struct {
	Snapshot FavoriteSnapshot
	Words    []vocab.Word
}

func (a ReconcileFavorite) apply(s State) State {
	order, shuffled := a.Snapshot.Order, a.Snapshot.Shuffled
	if reordered(a.Snapshot, s) {
		order, shuffled = IDs(s.Cards), s.IsShuffled
	}
	cards, indices := arrange(order, a.Words)
	s.Cards = cards
	if shuffled && len(cards) > 0 {
		s.IsShuffled = true
		s.ShuffledIndices = indices
	} else {
		s.IsShuffled = false
		s.ShuffledIndices = nil
	}
	s.OriginalOrder = originalOrder(s.ShuffledIndices, len(cards))
	s.IsUpdating = false

	s.CurrentIndex = 0
	if idx, ok := s.IndexOf(a.Snapshot.CurrentID); ok {
		s.CurrentIndex = idx
	}
	return s
}

// RollbackFavorite reverts an optimistic flip after a failed update.
type RollbackFavorite struct {
	Snapshot FavoriteSnapshot
}

func (a RollbackFavorite) apply(s State) State {
	id, ok := s.currentID()
	setFavorite(s.Cards, a.Snapshot.WordID, a.Snapshot.Previous)
	s.IsUpdating = false
	s.follow(id, ok)
	return s
}

// reordered reports whether s no longer shows the snapshot's cards in the
// snapshot's order. Cards added or removed since do not count.
func reordered(snap FavoriteSnapshot, s State) bool {
	if snap.Shuffled != s.IsShuffled {
		return true
	}
	current := IDs(s.Cards)
	inCurrent, inSnapshot := idSet(current), idSet(snap.Order)
	before := lo.Filter(snap.Order, func(id string, _ int) bool { return inCurrent[id] })
	after := lo.Filter(current, func(id string, _ int) bool { return inSnapshot[id] })
	return !slices.Equal(before, after)
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
