// Package vocab holds the data model shared by the tango server and client:
// folders, words, translation results, the error taxonomy and input
// normalization rules.
package vocab

import (
	"strings"
	"time"
)

// Folder is a named, user-owned collection of words. The folder name is its
// identity within a user's library, so ID always equals Name.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Word is a single flashcard: a Korean/Japanese pair with a favorite flag.
type Word struct {
	ID         string    `json:"id" db:"id"`
	Korean     string    `json:"korean" db:"korean"`
	Japanese   string    `json:"japanese" db:"japanese"`
	IsFavorite bool      `json:"isFavorite" db:"is_favorite"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// NewWord is the user input for a word that does not exist yet.
type NewWord struct {
	Korean   string `json:"korean"`
	Japanese string `json:"japanese"`
}

// Translation is the result of a translation request.
type Translation struct {
	Text string `json:"text"`
	To   string `json:"to"`
}

// NormalizeFolderName trims the name and rejects empty names.
func NormalizeFolderName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", invalid("folder name is required")
	}
	if strings.ContainsAny(trimmed, "/\\") {
		return "", invalid("folder name must not contain slashes")
	}
	if trimmed == "." || trimmed == ".." {
		return "", invalid("folder name must not be a dot segment")
	}
	return trimmed, nil
}

// Normalize trims both fields. A word needs both sides of the pair.
func (w NewWord) Normalize() (NewWord, error) {
	out := NewWord{
		Korean:   strings.TrimSpace(w.Korean),
		Japanese: strings.TrimSpace(w.Japanese),
	}
	switch {
	case out.Korean == "" && out.Japanese == "":
		return NewWord{}, invalid("korean and japanese are required")
	case out.Korean == "":
		return NewWord{}, invalid("korean is required")
	case out.Japanese == "":
		return NewWord{}, invalid("japanese is required")
	}
	return out, nil
}

// Build materializes the new word with a server-assigned identity.
func (w NewWord) Build(id string, createdAt time.Time) Word {
	return Word{
		ID:        id,
		Korean:    w.Korean,
		Japanese:  w.Japanese,
		CreatedAt: createdAt,
	}
}

// CloneWords returns an independent copy of words.
func CloneWords(words []Word) []Word {
	if words == nil {
		return nil
	}
	dup := make([]Word, len(words))
	copy(dup, words)
	return dup
}

// CloneFolders returns an independent copy of folders.
func CloneFolders(folders []Folder) []Folder {
	if folders == nil {
		return nil
	}
	dup := make([]Folder, len(folders))
	copy(dup, folders)
	return dup
}
