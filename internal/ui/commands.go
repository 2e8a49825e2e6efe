package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tango/internal/deck"
	"github.com/five82/tango/internal/vocab"
)

// Messages

// cacheChangedMsg reports a change of one cache key. ch is re-armed by the
// handler so each subscription keeps one pending read.
type cacheChangedMsg struct {
	key string
	ch  <-chan string
}

type foldersLoadedMsg struct {
	folders []vocab.Folder
	err     error
}

type wordsLoadedMsg struct {
	folder string
	words  []vocab.Word
	err    error
}

type favoriteDoneMsg struct {
	snap  deck.FavoriteSnapshot
	gen   int
	words []vocab.Word
	err   error
}

type wordAddedMsg struct {
	folder string
	tempID string
	word   vocab.Word
	err    error
}

type wordDeletedMsg struct {
	folder string
	wordID string
	err    error
}

type folderCreatedMsg struct {
	folder vocab.Folder
	err    error
}

type folderDeletedMsg struct {
	name string
	err  error
}

type translatedMsg struct {
	field int
	text  string
	err   error
}

type searchTickMsg struct {
	seq int
}

// Requests emitted by dialogs once the user confirms.

type shuffleConfirmedMsg struct{}

type deleteWordConfirmedMsg struct {
	folder string
	word   vocab.Word
}

type deleteFolderConfirmedMsg struct {
	name string
}

type createFolderRequestMsg struct {
	name string
}

type addWordRequestMsg struct {
	folder string
	word   vocab.NewWord
}

type translateRequestMsg struct {
	field    int
	text     string
	from, to string
}

// Commands

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func waitForChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		key, ok := <-ch
		if !ok {
			return nil
		}
		return cacheChangedMsg{key: key, ch: ch}
	}
}

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, RequestTimeout)
}

func (m Model) loadFoldersCmd() tea.Cmd {
	lib := m.lib
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		folders, err := lib.RevalidateFolders(ctx)
		return foldersLoadedMsg{folders: folders, err: err}
	}
}

func (m Model) loadWordsCmd(folder string) tea.Cmd {
	lib := m.lib
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		words, err := lib.RevalidateWords(ctx, folder)
		return wordsLoadedMsg{folder: folder, words: words, err: err}
	}
}

func (m Model) setFavoriteCmd(snap deck.FavoriteSnapshot) tea.Cmd {
	api, gen := m.api, m.openGen
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		words, err := api.SetFavorite(ctx, snap.Source.Name, snap.WordID, snap.Next)
		return favoriteDoneMsg{snap: snap, gen: gen, words: words, err: err}
	}
}

func (m Model) addWordCmd(folder string, in vocab.NewWord, tempID string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		word, err := api.AddWord(ctx, folder, in)
		return wordAddedMsg{folder: folder, tempID: tempID, word: word, err: err}
	}
}

func (m Model) deleteWordCmd(folder, wordID string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return wordDeletedMsg{folder: folder, wordID: wordID, err: api.DeleteWord(ctx, folder, wordID)}
	}
}

func (m Model) createFolderCmd(name string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		folder, err := api.CreateFolder(ctx, name)
		return folderCreatedMsg{folder: folder, err: err}
	}
}

func (m Model) deleteFolderCmd(name string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return folderDeletedMsg{name: name, err: api.DeleteFolder(ctx, name)}
	}
}

func (m Model) translateCmd(req translateRequestMsg) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		tr, err := api.Translate(ctx, req.text, req.from, req.to)
		return translatedMsg{field: req.field, text: tr.Text, err: err}
	}
}
