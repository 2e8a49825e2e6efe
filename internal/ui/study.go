package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/five82/tango/internal/cache"
	"github.com/five82/tango/internal/deck"
	"github.com/five82/tango/internal/vocab"
)

const tempIDPrefix = "pending-"

const waitForFavorite = "Wait for the favorite update to finish"

func (m Model) step(index int) Model {
	m.deck = deck.Reduce(m.deck, deck.SetIndex{Index: index})
	m.flipped = false
	return m
}

// shuffleDialog asks before shuffling. Reordering is refused while a favorite
// update is in flight; its answer is laid out in the order the deck had when
// the update started.
func (m Model) shuffleDialog() Model {
	if m.deck.IsUpdating {
		m.notice = infoNotice(waitForFavorite)
		return m
	}
	if len(m.deck.Cards) < 2 {
		return m
	}
	m.modal = newConfirmModal("Shuffle", "Shuffle the cards of this list?", shuffleConfirmedMsg{})
	return m
}

func (m Model) shuffle() Model {
	if m.deck.IsUpdating {
		m.notice = infoNotice(waitForFavorite)
		return m
	}
	perm := deck.Permutation(m.rng, len(m.deck.Cards))
	m.deck = deck.Reduce(m.deck, deck.Shuffle{Perm: perm})
	m.flipped = false
	return m
}

func (m Model) resetOrder() Model {
	if m.deck.IsUpdating {
		m.notice = infoNotice(waitForFavorite)
		return m
	}
	m.deck = deck.Reduce(m.deck, deck.ResetOrder{})
	return m
}

// toggleFavorite flips the current card at once. Folder cards are then sent
// to the server with a snapshot of the deck taken before the flip; the
// answer is reconciled against that snapshot in favoriteDone.
func (m Model) toggleFavorite() (Model, tea.Cmd) {
	if m.deck.IsUpdating {
		return m, nil
	}
	card, ok := m.deck.Current()
	if !ok {
		return m, nil
	}
	snap, ok := deck.CaptureFavorite(m.deck, card.ID)
	if !ok {
		return m, nil
	}
	m.deck = deck.Reduce(m.deck, snap.Optimistic())

	if !snap.Source.Remote() {
		favs := m.levelFavorites[snap.Source.Name]
		if favs == nil {
			favs = make(map[string]bool)
			m.levelFavorites[snap.Source.Name] = favs
		}
		favs[snap.WordID] = snap.Next
		return m, nil
	}

	m.deck = deck.Reduce(m.deck, deck.SetUpdating{Updating: true})
	m.lib.Words.Mutate(cache.WordsKey(snap.Source.Name), markFavorite(snap.WordID, snap.Next))
	return m, m.setFavoriteCmd(snap)
}

func markFavorite(wordID string, favorite bool) func([]vocab.Word, bool) []vocab.Word {
	return func(words []vocab.Word, _ bool) []vocab.Word {
		for i := range words {
			if words[i].ID == wordID {
				words[i].IsFavorite = favorite
			}
		}
		return words
	}
}

// favoriteDone settles a favorite update. Adds and deletes that completed
// while it was in flight were applied to the cache and the deck meanwhile,
// so a failure only reverts the one flag and a success merges the server's
// answer with them.
func (m Model) favoriteDone(msg favoriteDoneMsg) (Model, tea.Cmd) {
	key := cache.WordsKey(msg.snap.Source.Name)
	active := m.deck.Source == msg.snap.Source && msg.gen == m.openGen

	if msg.err != nil {
		m.logger.Warn("set favorite failed",
			zap.String("folder", msg.snap.Source.Name),
			zap.String("word", msg.snap.WordID),
			zap.Error(msg.err))
		m.lib.Words.Mutate(key, markFavorite(msg.snap.WordID, msg.snap.Previous))
		m.notice = errorNotice("Could not update favorite", msg.err)
		if active {
			m.deck = deck.Reduce(m.deck, deck.RollbackFavorite{Snapshot: msg.snap})
		}
		return m, m.loadWordsCmd(msg.snap.Source.Name)
	}

	words := msg.snap.Merge(msg.words, m.lib.Words.Get(key).Value)
	m.lib.Words.Set(key, words)
	if active {
		m.deck = deck.Reduce(m.deck, deck.ReconcileFavorite{Snapshot: msg.snap, Words: words})
	} else if m.deck.Source == msg.snap.Source && !m.deck.IsUpdating {
		// Reopened while the request was in flight.
		m.deck = deck.Reduce(m.deck, deck.Resync{Words: words})
	}
	return m, nil
}

func (m Model) addWordDialog() Model {
	if !m.deck.Source.Remote() {
		m.notice = infoNotice(ternary(m.deck.Phase() == deck.PhaseIdle,
			"Open a folder to add words", "Preset levels are read-only"))
		return m
	}
	m.modal = newAddWordModal(m.deck.Source.Name)
	return m
}

// addWord inserts a temporary card right away and sends the word. The
// temporary card is replaced by the server's copy, or removed on failure.
func (m Model) addWord(req addWordRequestMsg) (Model, tea.Cmd) {
	in, err := req.word.Normalize()
	if err != nil {
		m.notice = errorNotice("Could not add word", err)
		return m, nil
	}
	key := cache.WordsKey(req.folder)
	temp := in.Build(tempIDPrefix+m.newID(), m.now().UTC())
	m.lib.Words.Mutate(key, func(words []vocab.Word, _ bool) []vocab.Word {
		return append(words, temp)
	})
	if m.deck.Source == deck.FolderSource(req.folder) {
		m.deck = deck.Reduce(m.deck, deck.AppendCard{Word: temp})
		if idx, ok := m.deck.IndexOf(temp.ID); ok {
			m = m.step(idx)
		}
	}
	m.pending++
	return m, m.addWordCmd(req.folder, in, temp.ID)
}

func (m Model) wordAdded(msg wordAddedMsg) (Model, tea.Cmd) {
	m.done()
	key := cache.WordsKey(msg.folder)
	onDeck := m.deck.Source == deck.FolderSource(msg.folder)
	active := onDeck && !m.deck.IsUpdating

	if msg.err != nil {
		m.logger.Warn("add word failed", zap.String("folder", msg.folder), zap.Error(msg.err))
		m.lib.Words.Mutate(key, func(words []vocab.Word, _ bool) []vocab.Word {
			return lo.Reject(words, func(w vocab.Word, _ int) bool { return w.ID == msg.tempID })
		})
		m.notice = errorNotice("Could not add word", msg.err)
		switch {
		case active:
			m.deck = deck.Reduce(m.deck, deck.Resync{Words: m.lib.Words.Get(key).Value})
		case onDeck:
			m.deck = deck.Reduce(m.deck, deck.RemoveCard{ID: msg.tempID})
		}
		return m, nil
	}

	m.lib.Words.Mutate(key, func(words []vocab.Word, _ bool) []vocab.Word {
		replaced := false
		for i := range words {
			if words[i].ID == msg.tempID {
				words[i] = msg.word
				replaced = true
			}
		}
		if !replaced {
			words = append(words, msg.word)
		}
		return lo.UniqBy(words, func(w vocab.Word) string { return w.ID })
	})
	switch {
	case active:
		cur, onTemp := m.deck.Current()
		onTemp = onTemp && cur.ID == msg.tempID
		m.deck = deck.Reduce(m.deck, deck.Resync{Words: m.lib.Words.Get(key).Value})
		if idx, ok := m.deck.IndexOf(msg.word.ID); ok && onTemp {
			m.deck = deck.Reduce(m.deck, deck.SetIndex{Index: idx})
		}
	case onDeck:
		m.deck = deck.Reduce(m.deck, deck.ReplaceCard{ID: msg.tempID, Word: msg.word})
	}
	m.notice = infoNotice(fmt.Sprintf("Added %s / %s", msg.word.Korean, msg.word.Japanese))
	return m, nil
}

func (m Model) deleteWordDialog() Model {
	card, ok := m.deck.Current()
	if !ok {
		return m
	}
	if !m.deck.Source.Remote() {
		m.notice = infoNotice("Preset levels are read-only")
		return m
	}
	if strings.HasPrefix(card.ID, tempIDPrefix) {
		m.notice = infoNotice("This word is still being saved")
		return m
	}
	m.modal = newConfirmModal(
		"Delete word",
		fmt.Sprintf("Delete %s / %s?", card.Korean, card.Japanese),
		deleteWordConfirmedMsg{folder: m.deck.Source.Name, word: card},
	)
	return m
}

// wordDeleted drops the card only once the server confirmed; a failure
// leaves nothing to undo.
func (m Model) wordDeleted(msg wordDeletedMsg) Model {
	m.done()
	if msg.err != nil {
		m.logger.Warn("delete word failed",
			zap.String("folder", msg.folder), zap.String("word", msg.wordID), zap.Error(msg.err))
		m.notice = errorNotice("Could not delete word", msg.err)
		return m
	}
	key := cache.WordsKey(msg.folder)
	m.lib.Words.Mutate(key, func(words []vocab.Word, _ bool) []vocab.Word {
		return lo.Reject(words, func(w vocab.Word, _ int) bool { return w.ID == msg.wordID })
	})
	if m.deck.Source == deck.FolderSource(msg.folder) {
		if m.deck.IsUpdating {
			m.deck = deck.Reduce(m.deck, deck.RemoveCard{ID: msg.wordID})
		} else {
			m.deck = deck.Reduce(m.deck, deck.Resync{Words: m.lib.Words.Get(key).Value})
		}
		m.flipped = false
	}
	return m
}

func (m Model) refresh() (Model, tea.Cmd) {
	cmds := []tea.Cmd{m.loadFoldersCmd()}
	if m.deck.Source.Remote() {
		m.loading = true
		cmds = append(cmds, m.loadWordsCmd(m.deck.Source.Name))
	}
	return m, tea.Batch(cmds...)
}
