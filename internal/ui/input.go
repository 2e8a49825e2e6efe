package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes a key press: help overlay, then dialog, then search box,
// then global keys, then the focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m.savePrefs(), nil

	case key.Matches(msg, m.keys.Tab):
		m.focus = ternary(m.focus == paneSidebar, paneCards, paneSidebar)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.notice = notice{}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keys.Search):
		return m.startSearch()

	case key.Matches(msg, m.keys.FavoritesOnly):
		return m.toggleFavoritesOnly(), nil

	case key.Matches(msg, m.keys.AddWord):
		return m.addWordDialog(), nil
	}

	if m.focus == paneSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleCardKey(msg)
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveSelection(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.moveSelection(1), nil
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Next):
		return m.openSelected()
	case key.Matches(msg, m.keys.NewFolder):
		return m.newFolderDialog(), nil
	case key.Matches(msg, m.keys.DelFolder):
		return m.deleteFolderDialog(), nil
	}
	return m, nil
}

func (m Model) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.deck.Visible())
	switch {
	case key.Matches(msg, m.keys.Next):
		if n > 0 {
			return m.step(m.deck.Next()), nil
		}
	case key.Matches(msg, m.keys.Prev):
		if n > 0 {
			return m.step(m.deck.Prev()), nil
		}
	case key.Matches(msg, m.keys.First):
		return m.step(0), nil
	case key.Matches(msg, m.keys.Flip), key.Matches(msg, m.keys.Open):
		if n > 0 {
			m.flipped = !m.flipped
		}
	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite()
	case key.Matches(msg, m.keys.Shuffle):
		return m.shuffleDialog(), nil
	case key.Matches(msg, m.keys.ResetOrder):
		return m.resetOrder(), nil
	case key.Matches(msg, m.keys.DeleteWord):
		return m.deleteWordDialog(), nil
	}
	return m, nil
}
