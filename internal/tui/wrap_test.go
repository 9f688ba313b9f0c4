package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")

	runes := buildStyledRunes(target, input, len(input), -1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesCursorOnSpace(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), []rune("a"), 1, -1)
	if runes[1].s != cursorStyle.Render(" ") {
		t.Fatalf("expected pending cursor style on space")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("a"), []rune("a"), -1, -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), []rune("ax"), 2, -1)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")

	runes := buildStyledRunes(target, input, len(input), -1)
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesMissedSpace(t *testing.T) {
	// The engine fills a skipped space with a placeholder.
	runes := buildStyledRunes([]rune("a b"), []rune("a_b"), -1, -1)
	if runes[1].s != incorrectStyle.Render(string(missedSpaceGlyph)) {
		t.Fatalf("expected red dot for missed space")
	}
	if runes[2].s != correctStyle.Render("b") {
		t.Fatalf("expected the following char to be correct")
	}
}

func TestBuildStyledRunesGhost(t *testing.T) {
	runes := buildStyledRunes([]rune("abcd"), []rune("a"), 1, 3)
	if runes[3].s != currentWordStyle.Background(ghostColor).Render("d") {
		t.Fatalf("expected ghost marker on fourth rune")
	}
	// The cursor wins when both meet.
	runes = buildStyledRunes([]rune("abcd"), []rune("a"), 1, 1)
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected cursor style to win over ghost")
	}
}

func plain(runes []rune) []styledRune {
	out := make([]styledRune, len(runes))
	for i, r := range runes {
		out[i] = styledRune{s: string(r), width: 1, isSpace: r == ' ', isBreak: r == '\n'}
	}
	return out
}

func TestWrapStyledRunesAtSpaces(t *testing.T) {
	got := wrapStyledRunes(plain([]rune("one two three")), 8)
	want := "one two \nthree"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	got := wrapStyledRunes(plain([]rune("abcdefgh")), 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesNewline(t *testing.T) {
	got := wrapStyledRunes(plain([]rune("ab\ncd")), 0)
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("expected a break after the newline glyph, got %q", got)
	}
}
