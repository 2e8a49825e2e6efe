package vocab

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFolderName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trims", input: "  TOPIK1 ", want: "TOPIK1"},
		{name: "korean", input: "단어장", want: "단어장"},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "dot segment", input: " .. ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFolderName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWordNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   NewWord
		want    NewWord
		wantErr bool
	}{
		{name: "valid", input: NewWord{Korean: " 안녕 ", Japanese: "こんにちは "}, want: NewWord{Korean: "안녕", Japanese: "こんにちは"}},
		{name: "both empty", input: NewWord{}, wantErr: true},
		{name: "korean missing", input: NewWord{Japanese: "ありがとう"}, wantErr: true},
		{name: "japanese blank", input: NewWord{Korean: "감사", Japanese: "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWordBuild(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	w := NewWord{Korean: "감사", Japanese: "ありがとう"}.Build("w1", at)

	assert.Equal(t, Word{ID: "w1", Korean: "감사", Japanese: "ありがとう", CreatedAt: at}, w)
	assert.False(t, w.IsFavorite)
}

func TestKind(t *testing.T) {
	assert.Equal(t, ErrNotFound, Kind(fmt.Errorf("set favorite: %w", ErrNotFound)))
	assert.Equal(t, ErrDuplicateName, Kind(ErrDuplicateName))
	assert.Equal(t, ErrUpstream, Kind(errors.New("connection reset")))
	assert.Equal(t, ErrInvalidInput, Kind(Invalid("bad %s", "field")))
}

func TestCloneWordsIsIndependent(t *testing.T) {
	words := []Word{{ID: "1"}, {ID: "2"}}
	dup := CloneWords(words)
	dup[0].ID = "changed"

	assert.Equal(t, "1", words[0].ID)
	assert.Nil(t, CloneWords(nil))
}
