package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/tango/internal/store"
	"github.com/five82/tango/internal/vocab"
)

// WordService handles word-related business logic
type WordService struct {
	store  store.Store
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(st store.Store, logger *zap.Logger) *WordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WordService{
		store:  st,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logger,
	}
}

// List returns the folder's words in creation order.
func (s *WordService) List(ctx context.Context, userID, folder string) ([]vocab.Word, error) {
	folder, err := s.scope(userID, folder)
	if err != nil {
		return nil, err
	}
	return s.store.ListWords(ctx, userID, folder)
}

// Add stores a new word with a fresh id and the favorite flag cleared.
func (s *WordService) Add(ctx context.Context, userID, folder string, in vocab.NewWord) (vocab.Word, error) {
	folder, err := s.scope(userID, folder)
	if err != nil {
		return vocab.Word{}, err
	}
	in, err = in.Normalize()
	if err != nil {
		return vocab.Word{}, err
	}

	word := in.Build(s.newID(), s.now().UTC())
	if err := s.store.InsertWord(ctx, userID, folder, word); err != nil {
		return vocab.Word{}, err
	}
	s.logger.Debug("word added",
		zap.String("user", userID),
		zap.String("folder", folder),
		zap.String("word", word.ID),
	)
	return word, nil
}

// Delete removes a word. Deleting a word that is already gone succeeds.
func (s *WordService) Delete(ctx context.Context, userID, folder, wordID string) error {
	folder, err := s.scope(userID, folder)
	if err != nil {
		return err
	}
	wordID, err = requireWordID(wordID)
	if err != nil {
		return err
	}
	return s.store.DeleteWord(ctx, userID, folder, wordID)
}

// SetFavorite sets the word's favorite flag and returns the folder's full
// word set after the update.
func (s *WordService) SetFavorite(ctx context.Context, userID, folder, wordID string, favorite bool) ([]vocab.Word, error) {
	folder, err := s.scope(userID, folder)
	if err != nil {
		return nil, err
	}
	wordID, err = requireWordID(wordID)
	if err != nil {
		return nil, err
	}
	return s.store.SetFavorite(ctx, userID, folder, wordID, favorite)
}

func (s *WordService) scope(userID, folder string) (string, error) {
	if err := requireUser(userID); err != nil {
		return "", err
	}
	return vocab.NormalizeFolderName(folder)
}

func requireWordID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", vocab.Invalid("word id is required")
	}
	return id, nil
}
