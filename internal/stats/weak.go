package stats

import (
	"sort"
)

// KeyErrors is the lifetime error count of one expected character.
type KeyErrors struct {
	Char   string
	Errors int
	// Share is the fraction of all recorded errors.
	Share float64
}

// WeakestKeys sorts the error heatmap by descending error count. A top of
// zero or less returns every key.
func WeakestKeys(heatmap map[string]int, top int) []KeyErrors {
	total := 0
	keys := make([]KeyErrors, 0, len(heatmap))
	for ch, n := range heatmap {
		if n <= 0 {
			continue
		}
		total += n
		keys = append(keys, KeyErrors{Char: ch, Errors: n})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Errors == keys[j].Errors {
			return keys[i].Char < keys[j].Char
		}
		return keys[i].Errors > keys[j].Errors
	})
	for i := range keys {
		keys[i].Share = float64(keys[i].Errors) / float64(total)
	}
	if top > 0 && top < len(keys) {
		keys = keys[:top]
	}
	return keys
}

// CharLabel makes whitespace visible in tables.
func CharLabel(ch string) string {
	switch ch {
	case " ":
		return "<space>"
	case "\n":
		return "<enter>"
	case "\t":
		return "<tab>"
	default:
		return ch
	}
}
