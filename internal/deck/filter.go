package deck

import (
	"strings"

	"github.com/samber/lo"

	"github.com/five82/tango/internal/vocab"
)

// Filter returns the cards whose Korean or Japanese text contains the trimmed
// keyword (case-sensitive), restricted to favorites when favoritesOnly is
// set. The input slice is never modified.
func Filter(cards []vocab.Word, keyword string, favoritesOnly bool) []vocab.Word {
	k := strings.TrimSpace(keyword)
	if k == "" && !favoritesOnly {
		return cards
	}
	return lo.Filter(cards, func(w vocab.Word, _ int) bool {
		if favoritesOnly && !w.IsFavorite {
			return false
		}
		return k == "" || strings.Contains(w.Korean, k) || strings.Contains(w.Japanese, k)
	})
}
