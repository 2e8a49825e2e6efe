// Package presets ships the built-in level word lists.
package presets

import (
	_ "embed"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tango/internal/vocab"
)

//go:embed levels.toml
var levelsTOML []byte

// Level is one read-only preset list.
type Level struct {
	ID    string
	Label string
	Words []vocab.Word
}

type rawLevel struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Words []struct {
		ID       string `toml:"id"`
		Korean   string `toml:"korean"`
		Japanese string `toml:"japanese"`
	} `toml:"words"`
}

// Load parses the embedded presets in their file order.
func Load() ([]Level, error) {
	return parse(levelsTOML)
}

func parse(data []byte) ([]Level, error) {
	var raw struct {
		Levels []rawLevel `toml:"level"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	levels := make([]Level, 0, len(raw.Levels))
	seen := make(map[string]bool)
	for _, rl := range raw.Levels {
		id := strings.TrimSpace(rl.ID)
		if id == "" || seen[id] {
			return nil, fmt.Errorf("preset level id %q is empty or duplicated", rl.ID)
		}
		seen[id] = true

		lv := Level{ID: id, Label: rl.Label, Words: make([]vocab.Word, 0, len(rl.Words))}
		ids := make(map[string]bool, len(rl.Words))
		for _, w := range rl.Words {
			if w.ID == "" || ids[w.ID] {
				return nil, fmt.Errorf("preset %s: word id %q is empty or duplicated", id, w.ID)
			}
			ids[w.ID] = true
			lv.Words = append(lv.Words, vocab.Word{ID: w.ID, Korean: w.Korean, Japanese: w.Japanese})
		}
		levels = append(levels, lv)
	}
	return levels, nil
}

// Find returns the level with the given id.
func Find(levels []Level, id string) (Level, bool) {
	for _, lv := range levels {
		if lv.ID == id {
			return lv, true
		}
	}
	return Level{}, false
}
