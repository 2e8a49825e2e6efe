// Package service holds the folder and word business rules on top of the
// store: identity checks, input normalization and id assignment.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tango/internal/store"
	"github.com/five82/tango/internal/vocab"
)

// FolderService handles folder-related business logic
type FolderService struct {
	store  store.Store
	now    func() time.Time
	logger *zap.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(st store.Store, logger *zap.Logger) *FolderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FolderService{store: st, now: time.Now, logger: logger}
}

// List returns the user's folders.
func (s *FolderService) List(ctx context.Context, userID string) ([]vocab.Folder, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.store.ListFolders(ctx, userID)
}

// Create adds a folder named after the trimmed name.
func (s *FolderService) Create(ctx context.Context, userID, name string) (vocab.Folder, error) {
	if err := requireUser(userID); err != nil {
		return vocab.Folder{}, err
	}
	name, err := vocab.NormalizeFolderName(name)
	if err != nil {
		return vocab.Folder{}, err
	}

	folder := vocab.Folder{ID: name, Name: name, CreatedAt: s.now().UTC()}
	if err := s.store.CreateFolder(ctx, userID, folder); err != nil {
		return vocab.Folder{}, err
	}
	s.logger.Info("folder created", zap.String("user", userID), zap.String("folder", name))
	return folder, nil
}

// Delete removes the folder and all of its words.
func (s *FolderService) Delete(ctx context.Context, userID, name string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	name, err := vocab.NormalizeFolderName(name)
	if err != nil {
		return err
	}
	if err := s.store.DeleteFolder(ctx, userID, name); err != nil {
		return err
	}
	s.logger.Info("folder deleted", zap.String("user", userID), zap.String("folder", name))
	return nil
}

func requireUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("no authenticated user: %w", vocab.ErrUnauthorized)
	}
	return nil
}
