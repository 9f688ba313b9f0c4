package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	missedSpaceGlyph = '•'
	newlineGlyph     = '↵'
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
	isBreak bool
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\n'
}

// buildStyledRunes styles the target text against the typed input. A
// negative ghostIndex disables the ghost marker.
func buildStyledRunes(targetRunes, inputRunes []rune, cursorIndex, ghostIndex int) []styledRune {
	words := findWords(targetRunes)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		if target == '\n' {
			displayed = newlineGlyph
		}
		style := pendingStyle
		typed := i < len(inputRunes)
		if typed {
			switch {
			case inputRunes[i] == target:
				style = correctStyle
			case target == ' ':
				displayed = missedSpaceGlyph
				style = incorrectStyle
			default:
				style = incorrectStyle
			}
		} else if !isSeparator(target) && currentWord != nil && i >= currentWord.start && i < currentWord.end {
			style = currentWordStyle
		}
		switch {
		case i == cursorIndex && i >= len(inputRunes):
			style = style.Underline(true)
		case i == ghostIndex:
			style = style.Background(ghostColor)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
			isBreak: target == '\n',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if isSeparator(r) {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return &words[len(words)-1]
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits width and after
// every newline in the target text.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		width = 1 << 30
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	flush := func(items []styledRune) {
		out.WriteString(renderStyledRunes(items))
		out.WriteRune('\n')
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				// The breaking space stays at the end of the line so the
				// cursor remains visible on it.
				flush(line[:lastSpaceIdx+1])
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
			} else {
				flush(line)
				line = line[:0]
			}
			lineWidth = lineWidthOf(line)
			lastSpaceIdx = lastSpaceIndex(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
		if item.isBreak {
			flush(line)
			line = line[:0]
			lineWidth = 0
			lastSpaceIdx = -1
		}
	}
	out.WriteString(renderStyledRunes(line))
	return strings.TrimSuffix(out.String(), "\n")
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
