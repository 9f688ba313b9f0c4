// Package levels builds the campaign and training level catalogs from keyboard layouts.
package levels

import "github.com/samber/lo"

// Finger names the finger that presses a key.
type Finger string

const (
	PinkyLeft   Finger = "pinky-left"
	RingLeft    Finger = "ring-left"
	MiddleLeft  Finger = "middle-left"
	IndexLeft   Finger = "index-left"
	IndexRight  Finger = "index-right"
	MiddleRight Finger = "middle-right"
	RingRight   Finger = "ring-right"
	PinkyRight  Finger = "pinky-right"
	ThumbRight  Finger = "thumb-right"
)

// Rows are numbered from the number row (1) down to the space bar (5).
const (
	RowNumber = 1
	RowTop    = 2
	RowHome   = 3
	RowBottom = 4
	RowSpace  = 5
)

// Key is one printable key of a layout.
type Key struct {
	Char   rune
	Finger Finger
	Row    int
}

// DefaultLayout is used for unknown layout ids.
const DefaultLayout = "qwerty"

// rowKeys expands a row string into keys, one finger per character.
func rowKeys(row int, chars string, fingers ...Finger) []Key {
	runes := []rune(chars)
	keys := make([]Key, len(runes))
	for i, r := range runes {
		keys[i] = Key{Char: r, Finger: fingers[i], Row: row}
	}
	return keys
}

var (
	numberFingers = []Finger{PinkyLeft, PinkyLeft, RingLeft, MiddleLeft, IndexLeft, IndexLeft, IndexRight, IndexRight, MiddleRight, RingRight, PinkyRight, PinkyRight, PinkyRight}
	topFingers    = []Finger{PinkyLeft, RingLeft, MiddleLeft, IndexLeft, IndexLeft, IndexRight, IndexRight, MiddleRight, RingRight, PinkyRight, PinkyRight, PinkyRight, PinkyRight}
	homeFingers   = []Finger{PinkyLeft, RingLeft, MiddleLeft, IndexLeft, IndexLeft, IndexRight, IndexRight, MiddleRight, RingRight, PinkyRight, PinkyRight}
	bottomFingers = []Finger{PinkyLeft, RingLeft, MiddleLeft, IndexLeft, IndexLeft, IndexRight, IndexRight, MiddleRight, RingRight, PinkyRight}
)

var layouts = map[string][]Key{
	"qwerty": concat(
		rowKeys(RowNumber, "`1234567890-=", numberFingers...),
		rowKeys(RowTop, "qwertyuiop[]\\", topFingers...),
		rowKeys(RowHome, "asdfghjkl;'", homeFingers...),
		rowKeys(RowBottom, "zxcvbnm,./", bottomFingers...),
		[]Key{{Char: ' ', Finger: ThumbRight, Row: RowSpace}},
	),
	"qwertz": concat(
		rowKeys(RowNumber, "^1234567890ß´", numberFingers...),
		rowKeys(RowTop, "qwertzuiopü+#", topFingers...),
		rowKeys(RowHome, "asdfghjklöä", homeFingers...),
		// ISO key left of y.
		rowKeys(RowBottom, "<", PinkyLeft),
		rowKeys(RowBottom, "yxcvbnm,.-", bottomFingers...),
		[]Key{{Char: ' ', Finger: ThumbRight, Row: RowSpace}},
	),
}

func concat(parts ...[]Key) []Key {
	return lo.Flatten(parts)
}

// Layout returns the key table for id, falling back to qwerty.
func Layout(id string) []Key {
	if keys, ok := layouts[id]; ok {
		return keys
	}
	return layouts[DefaultLayout]
}

// Layouts lists the known layout ids.
func Layouts() []string {
	return []string{"qwerty", "qwertz"}
}

// KnownLayout reports whether id names a built-in layout.
func KnownLayout(id string) bool {
	_, ok := layouts[id]
	return ok
}

// chars returns the distinct characters of keys matching keep, in layout order.
func chars(keys []Key, keep func(Key) bool) []rune {
	return lo.Uniq(lo.FilterMap(keys, func(k Key, _ int) (rune, bool) {
		return k.Char, keep(k)
	}))
}

func onRow(rows ...int) func(Key) bool {
	return func(k Key) bool { return lo.Contains(rows, k.Row) }
}

func withFingers(keep func(Key) bool, fingers ...Finger) func(Key) bool {
	return func(k Key) bool { return keep(k) && lo.Contains(fingers, k.Finger) }
}
