package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/multierr"

	"github.com/five82/tango/internal/vocab"
)

// FoldersKey is the resource key of the folder list.
const FoldersKey = "/folders"

// WordsKey is the resource key of a folder's word list.
func WordsKey(folder string) string {
	return "/folders/" + url.PathEscape(folder) + "/words"
}

// FolderFromKey returns the folder a WordsKey belongs to.
func FolderFromKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, "/folders/")
	if !ok {
		return "", false
	}
	escaped, ok := strings.CutSuffix(rest, "/words")
	if !ok || escaped == "" || strings.Contains(escaped, "/") {
		return "", false
	}
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return name, true
}

// Fetcher loads the resources a Library caches. *remote.Client satisfies it.
type Fetcher interface {
	ListFolders(ctx context.Context) ([]vocab.Folder, error)
	ListWords(ctx context.Context, folder string) ([]vocab.Word, error)
}

// Library caches the folder list and every opened folder's words.
type Library struct {
	Folders *Cache[[]vocab.Folder]
	Words   *Cache[[]vocab.Word]
	api     Fetcher
}

// NewLibrary creates empty caches backed by api.
func NewLibrary(api Fetcher) *Library {
	return &Library{
		Folders: New(vocab.CloneFolders),
		Words:   New(vocab.CloneWords),
		api:     api,
	}
}

// RevalidateFolders refetches the folder list.
func (l *Library) RevalidateFolders(ctx context.Context) ([]vocab.Folder, error) {
	return l.Folders.Fetch(ctx, FoldersKey, l.api.ListFolders)
}

// RevalidateWords refetches one folder's words.
func (l *Library) RevalidateWords(ctx context.Context, folder string) ([]vocab.Word, error) {
	return l.Words.Fetch(ctx, WordsKey(folder), func(ctx context.Context) ([]vocab.Word, error) {
		return l.api.ListWords(ctx, folder)
	})
}

// RevalidateAll refetches the folder list and the words of every cached
// folder. Word lists of folders that no longer exist are dropped.
func (l *Library) RevalidateAll(ctx context.Context) error {
	folders, err := l.RevalidateFolders(ctx)
	if err != nil {
		return fmt.Errorf("folders: %w", err)
	}
	exists := make(map[string]bool, len(folders))
	for _, f := range folders {
		exists[f.Name] = true
	}

	var errs error
	for _, key := range l.Words.Keys() {
		name, ok := FolderFromKey(key)
		if !ok {
			continue
		}
		if !exists[name] {
			l.Words.Delete(key)
			continue
		}
		if _, err := l.RevalidateWords(ctx, name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("words of %q: %w", name, err))
		}
	}
	return errs
}
