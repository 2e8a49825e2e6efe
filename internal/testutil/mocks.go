package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/five82/tango/internal/vocab"
)

// MockStore is a mock for store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListFolders(ctx context.Context, userID string) ([]vocab.Folder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vocab.Folder), args.Error(1)
}

func (m *MockStore) CreateFolder(ctx context.Context, userID string, folder vocab.Folder) error {
	args := m.Called(ctx, userID, folder)
	return args.Error(0)
}

func (m *MockStore) DeleteFolder(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockStore) ListWords(ctx context.Context, userID, folder string) ([]vocab.Word, error) {
	args := m.Called(ctx, userID, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vocab.Word), args.Error(1)
}

func (m *MockStore) InsertWord(ctx context.Context, userID, folder string, word vocab.Word) error {
	args := m.Called(ctx, userID, folder, word)
	return args.Error(0)
}

func (m *MockStore) DeleteWord(ctx context.Context, userID, folder, wordID string) error {
	args := m.Called(ctx, userID, folder, wordID)
	return args.Error(0)
}

func (m *MockStore) SetFavorite(ctx context.Context, userID, folder, wordID string, favorite bool) ([]vocab.Word, error) {
	args := m.Called(ctx, userID, folder, wordID, favorite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vocab.Word), args.Error(1)
}

// MockTranslator is a mock for the server's translation backend
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text, from, to string) (vocab.Translation, error) {
	args := m.Called(ctx, text, from, to)
	return args.Get(0).(vocab.Translation), args.Error(1)
}
