package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tango/internal/deck"
)

func (m Model) startSearch() (Model, tea.Cmd) {
	m.searching = true
	m.focus = paneCards
	return m, m.search.Focus()
}

// handleSearchKey edits the keyword. The projection is applied after the
// input has been quiet for SearchDebounce; enter applies it at once and esc
// clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.searchSeq++
		return m.applySearch(), nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.searchSeq++
		return m.applySearch(), nil
	case "ctrl+c":
		return m.quit()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, debounceSearch(m.searchSeq))
}

func debounceSearch(seq int) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m Model) applySearch() Model {
	m.deck = deck.Reduce(m.deck, deck.SetQuery{
		Keyword:       m.search.Value(),
		FavoritesOnly: m.deck.FavoritesOnly,
	})
	m.flipped = false
	return m
}

func (m Model) toggleFavoritesOnly() Model {
	m.deck = deck.Reduce(m.deck, deck.SetQuery{
		Keyword:       m.deck.Keyword,
		FavoritesOnly: !m.deck.FavoritesOnly,
	})
	m.flipped = false
	return m.savePrefs()
}
