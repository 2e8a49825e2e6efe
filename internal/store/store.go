// Package store persists folders and words in SQL, laid out as
// users/{uid}/folders/{folderName}/words/{wordId}: every row is keyed by the
// owning user id, words additionally by their folder name.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/multierr"

	"github.com/five82/tango/internal/vocab"
)

// Store is the persistence boundary used by the services.
type Store interface {
	ListFolders(ctx context.Context, userID string) ([]vocab.Folder, error)
	CreateFolder(ctx context.Context, userID string, folder vocab.Folder) error
	DeleteFolder(ctx context.Context, userID, name string) error
	ListWords(ctx context.Context, userID, folder string) ([]vocab.Word, error)
	InsertWord(ctx context.Context, userID, folder string, word vocab.Word) error
	DeleteWord(ctx context.Context, userID, folder, wordID string) error
	SetFavorite(ctx context.Context, userID, folder, wordID string, favorite bool) ([]vocab.Word, error)
}

// Ensure SQLStore implements Store at compile time.
var _ Store = (*SQLStore)(nil)

// SQLStore implements Store on Postgres or SQLite through sqlx. Queries are
// written with ? placeholders and rebound for the active driver.
type SQLStore struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const (
	listFoldersQuery = `SELECT name, created_at FROM folders WHERE user_id = ? ORDER BY created_at ASC, name ASC`
	countFolderQuery = `SELECT COUNT(*) FROM folders WHERE user_id = ? AND name = ?`
	insertFolderStmt = `INSERT INTO folders (user_id, name, created_at) VALUES (?, ?, ?)`
	deleteWordsStmt  = `DELETE FROM words WHERE user_id = ? AND folder_name = ?`
	deleteFolderStmt = `DELETE FROM folders WHERE user_id = ? AND name = ?`
	listWordsQuery   = `SELECT id, korean, japanese, is_favorite, created_at FROM words WHERE user_id = ? AND folder_name = ? ORDER BY created_at ASC, id ASC`
	insertWordStmt   = `INSERT INTO words (user_id, folder_name, id, korean, japanese, is_favorite, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	deleteWordStmt   = `DELETE FROM words WHERE user_id = ? AND folder_name = ? AND id = ?`
	setFavoriteStmt  = `UPDATE words SET is_favorite = ? WHERE user_id = ? AND folder_name = ? AND id = ?`
)

type folderRow struct {
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (r folderRow) folder() vocab.Folder {
	return vocab.Folder{ID: r.Name, Name: r.Name, CreatedAt: r.CreatedAt}
}

// ListFolders returns the user's folders, oldest first.
func (s *SQLStore) ListFolders(ctx context.Context, userID string) ([]vocab.Folder, error) {
	var rows []folderRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(listFoldersQuery), userID); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	folders := make([]vocab.Folder, 0, len(rows))
	for _, r := range rows {
		folders = append(folders, r.folder())
	}
	return folders, nil
}

// CreateFolder inserts the folder, failing with vocab.ErrDuplicateName when
// the user already has one with that name.
func (s *SQLStore) CreateFolder(ctx context.Context, userID string, folder vocab.Folder) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := folderExists(ctx, tx, userID, folder.Name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("folder %q: %w", folder.Name, vocab.ErrDuplicateName)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(insertFolderStmt), userID, folder.Name, folder.CreatedAt); err != nil {
			// A concurrent create can pass the count check too.
			if isUniqueViolation(err) {
				return fmt.Errorf("folder %q: %w", folder.Name, vocab.ErrDuplicateName)
			}
			return fmt.Errorf("insert folder: %w", err)
		}
		return nil
	})
}

// DeleteFolder removes every word of the folder and then the folder itself
// in one transaction. Deleting a folder that does not exist succeeds, so an
// interrupted delete can simply be retried.
func (s *SQLStore) DeleteFolder(ctx context.Context, userID, name string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteWordsStmt), userID, name); err != nil {
			return fmt.Errorf("delete folder words: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteFolderStmt), userID, name); err != nil {
			return fmt.Errorf("delete folder: %w", err)
		}
		return nil
	})
}

// ListWords returns the folder's words ordered by creation time.
func (s *SQLStore) ListWords(ctx context.Context, userID, folder string) ([]vocab.Word, error) {
	return listWords(ctx, s.db, userID, folder)
}

// InsertWord adds a word to an existing folder.
func (s *SQLStore) InsertWord(ctx context.Context, userID, folder string, word vocab.Word) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := folderExists(ctx, tx, userID, folder)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("folder %q: %w", folder, vocab.ErrNotFound)
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(insertWordStmt),
			userID, folder, word.ID, word.Korean, word.Japanese, word.IsFavorite, word.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert word: %w", err)
		}
		return nil
	})
}

// DeleteWord removes a word. Missing words are not an error.
func (s *SQLStore) DeleteWord(ctx context.Context, userID, folder, wordID string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(deleteWordStmt), userID, folder, wordID); err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	return nil
}

// SetFavorite updates one word's flag and returns the folder's full word set
// as stored after the update.
func (s *SQLStore) SetFavorite(ctx context.Context, userID, folder, wordID string, favorite bool) ([]vocab.Word, error) {
	var words []vocab.Word
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(setFavoriteStmt), favorite, userID, folder, wordID)
		if err != nil {
			return fmt.Errorf("update favorite: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update favorite: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("word %q: %w", wordID, vocab.ErrNotFound)
		}
		words, err = listWords(ctx, tx, userID, folder)
		return err
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func listWords(ctx context.Context, q queryer, userID, folder string) ([]vocab.Word, error) {
	words := []vocab.Word{}
	if err := sqlx.SelectContext(ctx, q, &words, q.Rebind(listWordsQuery), userID, folder); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

func folderExists(ctx context.Context, q queryer, userID, name string) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, q.Rebind(countFolderQuery), userID, name); err != nil {
		return false, fmt.Errorf("check folder: %w", err)
	}
	return count > 0, nil
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, context.Canceled) {
			return multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
