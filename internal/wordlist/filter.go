// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Letters keeps words made only of letters, so that the level filter can
// judge them by their characters alone.
func Letters(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// MaxLength keeps words of at most n runes.
func MaxLength(n int) FilterFunc {
	return func(word string) bool {
		return len([]rune(word)) <= n
	}
}

// Clean lowercases words, drops the ones rejected by any filter and removes
// duplicates while keeping the first occurrence order.
func Clean(words []string, filters ...FilterFunc) []string {
	kept := lo.FilterMap(words, func(word string, _ int) (string, bool) {
		word = strings.ToLower(word)
		return word, lo.EveryBy(filters, func(keep FilterFunc) bool { return keep(word) })
	})
	return lo.Uniq(kept)
}
