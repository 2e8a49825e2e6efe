package ui

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/five82/tango/internal/cache"
	"github.com/five82/tango/internal/deck"
	"github.com/five82/tango/internal/presets"
	"github.com/five82/tango/internal/vocab"
)

// entry is one row of the sidebar: a preset level or a folder.
type entry struct {
	label  string
	source deck.Source
}

func (m Model) entries() []entry {
	out := make([]entry, 0, len(m.levels)+len(m.folders))
	for _, lv := range m.levels {
		out = append(out, entry{label: "TOPIK (" + lv.Label + ")", source: deck.LevelSource(lv.ID)})
	}
	for _, f := range m.folders {
		out = append(out, entry{label: f.Name, source: deck.FolderSource(f.Name)})
	}
	return out
}

func (m Model) entryIndex(src deck.Source) int {
	_, idx, ok := lo.FindIndexOf(m.entries(), func(e entry) bool { return e.source == src })
	if !ok {
		return 0
	}
	return idx
}

func (m Model) selectedEntry() (entry, bool) {
	entries := m.entries()
	if m.sidebarIndex < 0 || m.sidebarIndex >= len(entries) {
		return entry{}, false
	}
	return entries[m.sidebarIndex], true
}

func (m Model) hasFolder(name string) bool {
	return slices.ContainsFunc(m.folders, func(f vocab.Folder) bool { return f.Name == name })
}

// setFolders replaces the sidebar folder list, keeping the selection on the
// same row when it still exists.
func (m Model) setFolders(folders []vocab.Folder) Model {
	selected, ok := m.selectedEntry()
	m.folders = folders
	if ok {
		m.sidebarIndex = m.entryIndex(selected.source)
	}
	if n := len(m.entries()); m.sidebarIndex >= n {
		m.sidebarIndex = maxInt(0, n-1)
	}
	return m.dropMissingSource()
}

// dropMissingSource closes the open folder once a loaded folder list no
// longer contains it.
func (m Model) dropMissingSource() Model {
	src := m.deck.Source
	if !src.Remote() || m.hasFolder(src.Name) || m.lib == nil || !m.lib.Folders.Get(cache.FoldersKey).HasValue {
		return m
	}
	m.openGen++
	m.loading = false
	m.deck = deck.Reduce(m.deck, deck.SelectSource{})
	m.focus = paneSidebar
	m.notice = infoNotice(fmt.Sprintf("Folder %q no longer exists", src.Name))
	return m
}

// applyCacheChange folds a cache notification into the view. Changes of the
// open folder are merged by identity; nothing happens while a favorite
// update is reconciling the same cards.
func (m Model) applyCacheChange(key string) Model {
	if m.lib == nil {
		return m
	}
	if key == cache.FoldersKey {
		return m.setFolders(m.lib.Folders.Get(key).Value)
	}
	name, ok := cache.FolderFromKey(key)
	if !ok || m.deck.Source != deck.FolderSource(name) {
		return m
	}
	entry := m.lib.Words.Get(key)
	if !entry.HasValue || m.deck.IsUpdating {
		return m
	}
	m.deck = deck.Reduce(m.deck, deck.Resync{Words: entry.Value})
	return m
}

// openSource switches the deck to src. Cached folder words are shown at once
// and revalidated in the background.
func (m Model) openSource(src deck.Source) (Model, tea.Cmd) {
	m.openGen++
	m.flipped = false
	m.loading = false
	m.deck = deck.Reduce(m.deck, deck.SelectSource{Source: src})

	switch src.Kind {
	case deck.SourceLevel:
		lv, ok := presets.Find(m.levels, src.Name)
		if !ok {
			m.deck = deck.Reduce(m.deck, deck.SelectSource{})
			return m, nil
		}
		m.deck = deck.Reduce(m.deck, deck.SetCards{Cards: m.levelWords(lv)})
		return m, nil

	case deck.SourceFolder:
		if m.lib == nil {
			return m, nil
		}
		if cached := m.lib.Words.Get(cache.WordsKey(src.Name)); cached.HasValue {
			m.deck = deck.Reduce(m.deck, deck.SetCards{Cards: cached.Value})
		}
		m.loading = true
		return m, m.loadWordsCmd(src.Name)
	}
	return m, nil
}

// levelWords returns the preset words with the favorites toggled this
// session. Preset favorites are never sent to the server.
func (m Model) levelWords(lv presets.Level) []vocab.Word {
	words := vocab.CloneWords(lv.Words)
	favs := m.levelFavorites[lv.ID]
	for i := range words {
		words[i].IsFavorite = favs[words[i].ID]
	}
	return words
}

func (m Model) wordsLoaded(msg wordsLoadedMsg) Model {
	if m.deck.Source != deck.FolderSource(msg.folder) {
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.logger.Warn("load words failed", zap.String("folder", msg.folder), zap.Error(msg.err))
		m.notice = errorNotice("Could not load words", msg.err)
	}
	if m.deck.IsUpdating || (msg.err != nil && msg.words == nil) {
		return m
	}
	m.deck = deck.Reduce(m.deck, deck.Resync{Words: msg.words})
	return m
}

func (m Model) moveSelection(delta int) Model {
	n := len(m.entries())
	if n == 0 {
		return m
	}
	m.sidebarIndex = min(max(m.sidebarIndex+delta, 0), n-1)
	return m
}

func (m Model) openSelected() (Model, tea.Cmd) {
	e, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	m, cmd := m.openSource(e.source)
	m.focus = paneCards
	m = m.savePrefs()
	return m, cmd
}

// validateFolderName applies the server's naming rules and rejects names the
// sidebar already lists.
func (m Model) validateFolderName(raw string) (string, error) {
	name, err := vocab.NormalizeFolderName(raw)
	if err != nil {
		return "", err
	}
	if m.hasFolder(name) {
		return "", fmt.Errorf("folder %q already exists: %w", name, vocab.ErrDuplicateName)
	}
	return name, nil
}

func (m Model) newFolderDialog() Model {
	m.modal = newPromptModal("New folder", "Folder name", func(value string) (tea.Msg, error) {
		name, err := m.validateFolderName(value)
		if err != nil {
			return nil, err
		}
		return createFolderRequestMsg{name: name}, nil
	})
	return m
}

func (m Model) deleteFolderDialog() Model {
	e, ok := m.selectedEntry()
	if !ok {
		return m
	}
	if !e.source.Remote() {
		m.notice = infoNotice("Preset levels cannot be deleted")
		return m
	}
	m.modal = newConfirmModal(
		"Delete folder",
		fmt.Sprintf("Delete %q and all of its words?", e.source.Name),
		deleteFolderConfirmedMsg{name: e.source.Name},
	)
	return m
}

func (m Model) folderCreated(msg folderCreatedMsg) (Model, tea.Cmd) {
	m.done()
	if msg.err != nil {
		m.logger.Warn("create folder failed", zap.Error(msg.err))
		m.notice = errorNotice("Could not create folder", msg.err)
		return m, nil
	}
	m.lib.Folders.Mutate(cache.FoldersKey, func(folders []vocab.Folder, _ bool) []vocab.Folder {
		if slices.ContainsFunc(folders, func(f vocab.Folder) bool { return f.Name == msg.folder.Name }) {
			return folders
		}
		return append(folders, msg.folder)
	})
	m = m.setFolders(m.lib.Folders.Get(cache.FoldersKey).Value)
	m.lib.Words.Set(cache.WordsKey(msg.folder.Name), []vocab.Word{})
	m.sidebarIndex = m.entryIndex(deck.FolderSource(msg.folder.Name))
	m.notice = infoNotice(fmt.Sprintf("Created folder %q", msg.folder.Name))
	return m.openSelected()
}

func (m Model) folderDeleted(msg folderDeletedMsg) Model {
	m.done()
	if msg.err != nil {
		m.logger.Warn("delete folder failed", zap.String("folder", msg.name), zap.Error(msg.err))
		m.notice = errorNotice("Could not delete folder", msg.err)
		return m
	}
	if m.deck.Source == deck.FolderSource(msg.name) {
		m.openGen++
		m.loading = false
		m.deck = deck.Reduce(m.deck, deck.SelectSource{})
		m.focus = paneSidebar
	}
	m.lib.Folders.Mutate(cache.FoldersKey, func(folders []vocab.Folder, _ bool) []vocab.Folder {
		return lo.Reject(folders, func(f vocab.Folder, _ int) bool { return f.Name == msg.name })
	})
	m.lib.Words.Delete(cache.WordsKey(msg.name))
	m = m.setFolders(m.lib.Folders.Get(cache.FoldersKey).Value)
	m.notice = infoNotice(fmt.Sprintf("Deleted folder %q", msg.name))
	return m.savePrefs()
}
