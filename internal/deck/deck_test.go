package deck

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tango/internal/vocab"
)

func makeWords(ids ...string) []vocab.Word {
	out := make([]vocab.Word, 0, len(ids))
	for _, id := range ids {
		out = append(out, vocab.Word{ID: id, Korean: "ko-" + id, Japanese: "ja-" + id})
	}
	return out
}

func loaded(cards []vocab.Word) State {
	s := Reduce(State{}, SelectSource{Source: FolderSource("TOPIK1")})
	return Reduce(s, SetCards{Cards: cards})
}

func ptr[T any](v T) *T { return &v }

// serverCopy returns base in server order with one favorite flag changed.
func serverCopy(base []vocab.Word, id string, favorite bool) []vocab.Word {
	out := vocab.CloneWords(base)
	for i := range out {
		if out[i].ID == id {
			out[i].IsFavorite = favorite
		}
	}
	return out
}

func requireInvariants(t *testing.T, s State) {
	t.Helper()
	n := len(s.Cards)
	require.Len(t, s.OriginalOrder, n, "originalOrder length")
	require.True(t, isPermutation(s.OriginalOrder, n), "originalOrder %v is not a permutation", s.OriginalOrder)
	if s.IsShuffled {
		require.True(t, isPermutation(s.ShuffledIndices, n), "shuffledIndices %v is not a permutation", s.ShuffledIndices)
		require.Equal(t, invert(s.ShuffledIndices), s.OriginalOrder)
	} else {
		require.Nil(t, s.ShuffledIndices)
	}
	visible := len(s.Visible())
	if visible == 0 {
		require.Equal(t, 0, s.CurrentIndex)
	} else {
		require.GreaterOrEqual(t, s.CurrentIndex, 0)
		require.Less(t, s.CurrentIndex, visible)
	}
}

func currentID(t *testing.T, s State) string {
	t.Helper()
	w, ok := s.Current()
	require.True(t, ok, "deck has no current card")
	return w.ID
}

func TestPhase(t *testing.T) {
	var s State
	assert.Equal(t, PhaseIdle, s.Phase())

	s = Reduce(s, SelectSource{Source: LevelSource("beginner")})
	assert.Equal(t, PhaseLoaded, s.Phase())
	assert.False(t, s.Source.Remote())
	assert.True(t, FolderSource("x").Remote())
}

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 3, 0},
		{3, 3, 0},
		{-1, 3, 2},
		{-4, 3, 2},
		{7, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wrap(tt.i, tt.n), "Wrap(%d, %d)", tt.i, tt.n)
	}
}

func TestNextPrevWrapLaw(t *testing.T) {
	for n := 1; n <= 6; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprint(i + 1)
		}
		base := loaded(makeWords(ids...))
		for i := 0; i < n; i++ {
			s := Reduce(base, SetIndex{Index: i})

			forward := Reduce(s, SetIndex{Index: s.Next()})
			back := Reduce(forward, SetIndex{Index: forward.Prev()})
			assert.Equal(t, i, back.CurrentIndex, "n=%d next/prev from %d", n, i)

			backward := Reduce(s, SetIndex{Index: s.Prev()})
			again := Reduce(backward, SetIndex{Index: backward.Next()})
			assert.Equal(t, i, again.CurrentIndex, "n=%d prev/next from %d", n, i)
		}
	}

	s := loaded(makeWords("1", "2", "3"))
	s = Reduce(s, SetIndex{Index: 2})
	assert.Equal(t, 0, s.Next())
	s = Reduce(s, SetIndex{Index: 0})
	assert.Equal(t, 2, s.Prev())
}

func TestPermutationIsFisherYates(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for n := 0; n <= 10; n++ {
		assert.True(t, isPermutation(Permutation(r, n), n), "n=%d", n)
	}

	counts := map[string]int{}
	for i := 0; i < 6000; i++ {
		counts[fmt.Sprint(Permutation(r, 3))]++
	}
	require.Len(t, counts, 6)
	for perm, c := range counts {
		assert.InDelta(t, 1000, c, 200, "permutation %s drawn %d times", perm, c)
	}
}

func TestShuffleThenResetRestoresOrderAndCursor(t *testing.T) {
	s := loaded(makeWords("1", "2", "3", "4", "5"))
	s = Reduce(s, SetIndex{Index: 3})
	before := s

	shuffled := Reduce(s, Shuffle{Perm: []int{4, 2, 0, 3, 1}})
	requireInvariants(t, shuffled)
	assert.True(t, shuffled.IsShuffled)
	assert.Equal(t, []string{"5", "3", "1", "4", "2"}, IDs(shuffled.Cards))
	assert.Equal(t, "4", currentID(t, shuffled))

	reset := Reduce(shuffled, ResetOrder{})
	requireInvariants(t, reset)
	assert.False(t, reset.IsShuffled)
	assert.Equal(t, before.Cards, reset.Cards)
	assert.Equal(t, before.CurrentIndex, reset.CurrentIndex)

	r := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 50; i++ {
		start := Reduce(before, SetIndex{Index: r.IntN(5)})
		out := Reduce(Reduce(start, Shuffle{Perm: Permutation(r, 5)}), ResetOrder{})
		assert.Equal(t, start.Cards, out.Cards)
		assert.Equal(t, start.CurrentIndex, out.CurrentIndex)
	}
}

func TestShuffleTwiceResetsToBaseOrder(t *testing.T) {
	s := loaded(makeWords("1", "2", "3", "4"))
	s = Reduce(s, Shuffle{Perm: []int{1, 0, 3, 2}})
	s = Reduce(s, Shuffle{Perm: []int{3, 2, 1, 0}})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "4", "1", "2"}, IDs(s.Cards))

	s = Reduce(s, ResetOrder{})
	assert.Equal(t, []string{"1", "2", "3", "4"}, IDs(s.Cards))
}

func TestShuffleRejectsInvalidPermutation(t *testing.T) {
	s := loaded(makeWords("1", "2", "3"))
	for _, perm := range [][]int{nil, {0, 1}, {0, 0, 1}, {0, 1, 3}} {
		out := Reduce(s, Shuffle{Perm: perm})
		assert.False(t, out.IsShuffled, "perm %v", perm)
		assert.Equal(t, s.Cards, out.Cards)
	}
}

func TestResetOrderOnUnshuffledDeckIsNoop(t *testing.T) {
	s := Reduce(loaded(makeWords("1", "2")), SetIndex{Index: 1})
	assert.Equal(t, s, Reduce(s, ResetOrder{}))
}

func TestSetCardsDropsMismatchedShuffle(t *testing.T) {
	s := loaded(makeWords("1", "2", "3"))
	s = Reduce(s, Shuffle{Perm: []int{2, 1, 0}})
	require.True(t, s.IsShuffled)

	s = Reduce(s, SetCards{Cards: makeWords("1", "2", "3", "4")})
	requireInvariants(t, s)
	assert.False(t, s.IsShuffled)
	assert.Len(t, s.OriginalOrder, 4)
}

func TestSetCardsKeepsFittingShuffle(t *testing.T) {
	s := loaded(makeWords("1", "2", "3"))
	s = Reduce(s, Shuffle{Perm: []int{2, 1, 0}})

	s = Reduce(s, SetCards{Cards: makeWords("3", "2", "1")})
	requireInvariants(t, s)
	assert.True(t, s.IsShuffled)
	assert.Equal(t, []int{2, 1, 0}, s.ShuffledIndices)
}

func TestSetCardsOverrides(t *testing.T) {
	s := loaded(nil)
	s = Reduce(s, SetCards{
		Cards:           makeWords("c", "a", "b"),
		CurrentIndex:    ptr(1),
		IsShuffled:      ptr(true),
		ShuffledIndices: []int{2, 0, 1},
	})
	requireInvariants(t, s)
	assert.True(t, s.IsShuffled)
	assert.Equal(t, []int{1, 2, 0}, s.OriginalOrder)
	assert.Equal(t, "a", currentID(t, s))

	s = Reduce(s, ResetOrder{})
	assert.Equal(t, []string{"a", "b", "c"}, IDs(s.Cards))
	assert.Equal(t, "a", currentID(t, s))
}

func TestSetCardsClampsCursor(t *testing.T) {
	s := Reduce(loaded(makeWords("1", "2", "3", "4", "5")), SetIndex{Index: 4})

	s = Reduce(s, SetCards{Cards: makeWords("1", "2")})
	assert.Equal(t, 1, s.CurrentIndex)

	s = Reduce(s, SetCards{Cards: nil})
	assert.Equal(t, 0, s.CurrentIndex)
	_, ok := s.Current()
	assert.False(t, ok)
	requireInvariants(t, s)
}

func TestSetIndexClamps(t *testing.T) {
	s := loaded(makeWords("1", "2", "3"))
	assert.Equal(t, 2, Reduce(s, SetIndex{Index: 9}).CurrentIndex)
	assert.Equal(t, 0, Reduce(s, SetIndex{Index: -2}).CurrentIndex)
}

func TestFilterProjection(t *testing.T) {
	cards := []vocab.Word{
		{ID: "1", Korean: "안녕", Japanese: "こんにちは"},
		{ID: "2", Korean: "감사", Japanese: "ありがとう", IsFavorite: true},
		{ID: "3", Korean: "안녕히 가세요", Japanese: "さようなら"},
		{ID: "4", Korean: "Apple", Japanese: "りんご", IsFavorite: true},
	}

	for _, keyword := range []string{"", "안녕", " 안녕 ", "こ", "う", "apple", "Apple", "없음"} {
		got := Filter(cards, keyword, false)
		k := strings.TrimSpace(keyword)
		inResult := map[string]bool{}
		for _, w := range got {
			inResult[w.ID] = true
			assert.True(t, strings.Contains(w.Korean, k) || strings.Contains(w.Japanese, k), "keyword %q matched %s", keyword, w.ID)
		}
		for _, w := range cards {
			if !inResult[w.ID] {
				assert.False(t, strings.Contains(w.Korean, k) || strings.Contains(w.Japanese, k), "keyword %q missed %s", keyword, w.ID)
			}
		}
	}

	assert.Equal(t, []string{"2", "4"}, IDs(Filter(cards, "", true)))
	assert.Equal(t, []string{"2"}, IDs(Filter(cards, "う", true)))
	assert.Empty(t, Filter(cards, "apple", false))
	assert.Len(t, cards, 4)
}

func TestSetQueryClampsAndFollowsCursor(t *testing.T) {
	cards := []vocab.Word{
		{ID: "1", Korean: "안녕", Japanese: "こんにちは"},
		{ID: "2", Korean: "감사", Japanese: "ありがとう"},
		{ID: "3", Korean: "안녕히", Japanese: "さようなら"},
		{ID: "4", Korean: "사과", Japanese: "りんご"},
	}
	s := Reduce(loaded(cards), SetIndex{Index: 2})

	kept := Reduce(s, SetQuery{Keyword: "안녕"})
	assert.Equal(t, "3", currentID(t, kept))
	assert.Equal(t, 1, kept.CurrentIndex)

	s = Reduce(s, SetIndex{Index: 3})
	clamped := Reduce(s, SetQuery{Keyword: "안녕"})
	requireInvariants(t, clamped)
	assert.Equal(t, 1, clamped.CurrentIndex)

	empty := Reduce(s, SetQuery{Keyword: "zzz"})
	assert.Equal(t, 0, empty.CurrentIndex)
	assert.Len(t, empty.Cards, 4)
}

func TestToggleFavoriteInPlace(t *testing.T) {
	s := loaded(makeWords("1", "2", "3"))
	s = Reduce(s, Shuffle{Perm: []int{2, 0, 1}})
	order := IDs(s.Cards)
	indices := s.ShuffledIndices

	out := Reduce(s, ToggleFavorite{WordID: "1", IsFavorite: true})
	assert.Equal(t, order, IDs(out.Cards))
	assert.Equal(t, indices, out.ShuffledIndices)
	assert.True(t, out.Cards[1].IsFavorite)
	assert.False(t, s.Cards[1].IsFavorite, "Reduce must not mutate its input")
}

func toggle(t *testing.T, s State, base []vocab.Word) (State, []vocab.Word) {
	t.Helper()
	id := currentID(t, s)
	snap, ok := CaptureFavorite(s, id)
	require.True(t, ok)

	s = Reduce(s, snap.Optimistic())
	s = Reduce(s, SetUpdating{Updating: true})
	require.True(t, s.IsUpdating)

	server := serverCopy(base, id, snap.Next)
	s = Reduce(s, ReconcileFavorite{Snapshot: snap, Words: server})
	require.False(t, s.IsUpdating)
	requireInvariants(t, s)
	return s, server
}

func TestToggleFavoriteTwiceIsIdentity(t *testing.T) {
	base := makeWords("1", "2", "3", "4")
	s := loaded(base)
	s = Reduce(s, Shuffle{Perm: []int{2, 0, 3, 1}})
	s = Reduce(s, SetIndex{Index: 2})
	before := s
	require.Equal(t, "4", currentID(t, s))

	s, base = toggle(t, s, base)
	assert.True(t, s.Cards[s.CurrentIndex].IsFavorite)
	s, _ = toggle(t, s, base)

	assert.Equal(t, before.Cards, s.Cards)
	assert.Equal(t, IDs(before.Cards), IDs(s.Cards))
	assert.Equal(t, "4", currentID(t, s))
	assert.Equal(t, before.ShuffledIndices, s.ShuffledIndices)
}

func TestTOPIK1FavoriteKeepsShuffledPosition(t *testing.T) {
	base := []vocab.Word{
		{ID: "1", Korean: "안녕", Japanese: "こんにちは"},
		{ID: "2", Korean: "감사", Japanese: "ありがとう"},
	}
	for _, perm := range [][]int{{0, 1}, {1, 0}} {
		t.Run(fmt.Sprint(perm), func(t *testing.T) {
			s := loaded(base)
			s = Reduce(s, Shuffle{Perm: perm})
			s = Reduce(s, SetIndex{Index: 0})
			toggled := currentID(t, s)
			require.Equal(t, base[perm[0]].ID, toggled)

			s, _ = toggle(t, s, base)

			shown := s.Visible()[0]
			assert.Equal(t, 0, s.CurrentIndex)
			assert.Equal(t, toggled, shown.ID)
			assert.True(t, shown.IsFavorite)
		})
	}
}

func TestReconcileFallsBackToFirstCard(t *testing.T) {
	base := makeWords("1", "2", "3")
	s := Reduce(loaded(base), SetIndex{Index: 2})
	snap, ok := CaptureFavorite(s, "1")
	require.True(t, ok)
	s = Reduce(s, snap.Optimistic())

	server := serverCopy(makeWords("1", "2"), "1", true)
	s = Reduce(s, ReconcileFavorite{Snapshot: snap, Words: server})
	requireInvariants(t, s)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, []string{"1", "2"}, IDs(s.Cards))
}

func TestReconcileAppendsUnknownCards(t *testing.T) {
	base := makeWords("1", "2", "3")
	s := Reduce(loaded(base), Shuffle{Perm: []int{2, 1, 0}})
	s = Reduce(s, SetIndex{Index: 1})
	snap, _ := CaptureFavorite(s, "2")

	server := serverCopy(makeWords("1", "2", "3", "9"), "2", true)
	s = Reduce(s, ReconcileFavorite{Snapshot: snap, Words: server})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "2", "1", "9"}, IDs(s.Cards))
	assert.Equal(t, "2", currentID(t, s))
	assert.Equal(t, []int{2, 1, 0, 3}, s.ShuffledIndices)
}

func TestCaptureFavoriteUnknownCard(t *testing.T) {
	_, ok := CaptureFavorite(loaded(makeWords("1")), "nope")
	assert.False(t, ok)
}

func TestRollbackFavorite(t *testing.T) {
	s := loaded(makeWords("1", "2"))
	snap, ok := CaptureFavorite(s, "2")
	require.True(t, ok)

	s = Reduce(s, snap.Optimistic())
	s = Reduce(s, SetUpdating{Updating: true})
	require.True(t, s.Cards[1].IsFavorite)

	s = Reduce(s, RollbackFavorite{Snapshot: snap})
	assert.False(t, s.Cards[1].IsFavorite)
	assert.False(t, s.IsUpdating)
}

func TestResyncShuffledKeepsDisplayOrder(t *testing.T) {
	s := loaded(makeWords("1", "2", "3"))
	s = Reduce(s, Shuffle{Perm: []int{2, 0, 1}})
	s = Reduce(s, SetIndex{Index: 2})
	require.Equal(t, "2", currentID(t, s))

	s = Reduce(s, Resync{Words: makeWords("1", "3", "4")})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "1", "4"}, IDs(s.Cards))
	assert.True(t, s.IsShuffled)
	assert.Equal(t, 2, s.CurrentIndex)
}

func TestResyncUnshuffledAdoptsServerOrder(t *testing.T) {
	s := Reduce(loaded(makeWords("1", "2", "3")), SetIndex{Index: 1})

	s = Reduce(s, Resync{Words: makeWords("3", "2", "1", "2")})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "2", "1"}, IDs(s.Cards))
	assert.Equal(t, "2", currentID(t, s))
}

func TestOptimisticAddRollbackRestoresDeck(t *testing.T) {
	base := makeWords("1", "2")
	for _, shuffle := range []bool{false, true} {
		s := loaded(base)
		if shuffle {
			s = Reduce(s, Shuffle{Perm: []int{1, 0}})
		}
		before := s

		withTemp := append(vocab.CloneWords(base), vocab.Word{ID: "tmp-1", Korean: "사랑", Japanese: "愛"})
		s = Reduce(s, Resync{Words: withTemp})
		_, found := s.IndexOf("tmp-1")
		require.True(t, found)

		s = Reduce(s, Resync{Words: base})
		requireInvariants(t, s)
		assert.Equal(t, before.Cards, s.Cards)
		assert.Equal(t, before.CurrentIndex, s.CurrentIndex)
	}
}

func TestSelectSourceClearsCards(t *testing.T) {
	s := loaded(makeWords("1", "2"))
	s = Reduce(s, SetQuery{Keyword: "ko", FavoritesOnly: true})
	s = Reduce(s, SelectSource{Source: LevelSource("advanced")})

	requireInvariants(t, s)
	assert.Empty(t, s.Cards)
	assert.Equal(t, "ko", s.Keyword)
	assert.True(t, s.FavoritesOnly)
	assert.Equal(t, LevelSource("advanced"), s.Source)
}

func TestReduceClampsOutOfRangeCursor(t *testing.T) {
	s := State{
		Source:        FolderSource("TOPIK1"),
		Cards:         makeWords("1", "2", "3"),
		OriginalOrder: identity(3),
		CurrentIndex:  9,
	}
	_, ok := s.Current()
	assert.False(t, ok)

	require.NotPanics(t, func() {
		s = Reduce(s, Shuffle{Perm: []int{2, 0, 1}})
	})
	requireInvariants(t, s)
	assert.Equal(t, "3", currentID(t, s))

	s.CurrentIndex = -4
	s = Reduce(s, ResetOrder{})
	requireInvariants(t, s)
	assert.Equal(t, "3", currentID(t, s))
}

func TestAppendCardKeepsShuffleBookkeeping(t *testing.T) {
	s := Reduce(loaded(makeWords("1", "2", "3")), Shuffle{Perm: []int{2, 0, 1}})
	s = Reduce(s, SetIndex{Index: 1})

	s = Reduce(s, AppendCard{Word: vocab.Word{ID: "9"}})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "1", "2", "9"}, IDs(s.Cards))
	assert.Equal(t, []int{2, 0, 1, 3}, s.ShuffledIndices)
	assert.Equal(t, "1", currentID(t, s))

	again := Reduce(s, AppendCard{Word: vocab.Word{ID: "9"}})
	assert.Equal(t, IDs(s.Cards), IDs(again.Cards))

	s = Reduce(s, ResetOrder{})
	assert.Equal(t, []string{"1", "2", "3", "9"}, IDs(s.Cards))
}

func TestRemoveCardRenumbersBaseIndices(t *testing.T) {
	s := Reduce(loaded(makeWords("1", "2", "3")), Shuffle{Perm: []int{2, 0, 1}})
	s = Reduce(s, SetIndex{Index: 1})
	require.Equal(t, "1", currentID(t, s))

	s = Reduce(s, RemoveCard{ID: "1"})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "2"}, IDs(s.Cards))
	assert.Equal(t, []int{1, 0}, s.ShuffledIndices)
	assert.Equal(t, "2", currentID(t, s))

	s = Reduce(s, ResetOrder{})
	assert.Equal(t, []string{"2", "3"}, IDs(s.Cards))

	s = Reduce(Reduce(s, RemoveCard{ID: "2"}), RemoveCard{ID: "3"})
	requireInvariants(t, s)
	assert.Empty(t, s.Cards)
}

func TestReplaceCardKeepsPosition(t *testing.T) {
	s := Reduce(loaded(makeWords("1", "pending-1", "3")), Shuffle{Perm: []int{2, 0, 1}})
	s = Reduce(s, SetIndex{Index: 2})
	require.Equal(t, "pending-1", currentID(t, s))

	s = Reduce(s, ReplaceCard{ID: "pending-1", Word: vocab.Word{ID: "w9", Korean: "고양이"}})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "1", "w9"}, IDs(s.Cards))
	assert.Equal(t, []int{2, 0, 1}, s.ShuffledIndices)
	assert.Equal(t, "w9", currentID(t, s))

	// An id already on the deck only drops the temporary card.
	s = Reduce(s, AppendCard{Word: vocab.Word{ID: "pending-2"}})
	s = Reduce(s, ReplaceCard{ID: "pending-2", Word: vocab.Word{ID: "w9"}})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "1", "w9"}, IDs(s.Cards))
}

func TestReconcileKeepsOrderChangedAfterSnapshot(t *testing.T) {
	base := makeWords("1", "2", "3")
	s := Reduce(loaded(base), SetIndex{Index: 1})
	snap, ok := CaptureFavorite(s, "2")
	require.True(t, ok)
	s = Reduce(s, snap.Optimistic())
	s = Reduce(s, Shuffle{Perm: []int{2, 0, 1}})
	require.Equal(t, []string{"3", "1", "2"}, IDs(s.Cards))

	s = Reduce(s, ReconcileFavorite{Snapshot: snap, Words: serverCopy(base, "2", true)})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "1", "2"}, IDs(s.Cards))
	assert.True(t, s.IsShuffled)
	assert.Equal(t, []int{2, 0, 1}, s.ShuffledIndices)
	assert.Equal(t, "2", currentID(t, s))
}

func TestReconcileKeepsSnapshotOrderAcrossAddsAndRemoves(t *testing.T) {
	base := makeWords("1", "2", "3")
	s := Reduce(loaded(base), Shuffle{Perm: []int{2, 0, 1}})
	snap, _ := CaptureFavorite(s, "3")
	s = Reduce(s, snap.Optimistic())
	s = Reduce(s, RemoveCard{ID: "1"})
	s = Reduce(s, AppendCard{Word: vocab.Word{ID: "9"}})
	assert.False(t, reordered(snap, s))

	server := snap.Merge(serverCopy(base, "3", true), append(makeWords("2", "3"), vocab.Word{ID: "9"}))
	s = Reduce(s, ReconcileFavorite{Snapshot: snap, Words: server})
	requireInvariants(t, s)
	assert.Equal(t, []string{"3", "2", "9"}, IDs(s.Cards))
	assert.True(t, s.Cards[0].IsFavorite)
}

func TestFavoriteMerge(t *testing.T) {
	snap := FavoriteSnapshot{WordID: "1", Next: true, Order: []string{"1", "2", "3"}}
	server := serverCopy(makeWords("1", "2", "3", "9"), "1", true)
	local := makeWords("1", "3", "pending-1")

	merged := snap.Merge(server, local)
	assert.Equal(t, []string{"1", "3", "9", "pending-1"}, IDs(merged))
	assert.True(t, merged[0].IsFavorite)

	assert.Equal(t, IDs(server), IDs(snap.Merge(server, server)))
}
