package wordlist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLetters(t *testing.T) {
	for _, word := range []string{"hello", "résumé", "straße"} {
		if !Letters(word) {
			t.Fatalf("expected %q to pass", word)
		}
	}
	for _, word := range []string{"", "don’t", "co-op", "a1"} {
		if Letters(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestClean(t *testing.T) {
	got := Clean([]string{"Glad", "ask", "glad", "co-op", "extraordinary"}, Letters, MaxLength(8))
	want := []string{"glad", "ask"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha\n\n  beta \r\ngamma\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"alpha", "beta", "gamma"}) {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestLoadTypeable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("Flask\nx-ray\nflask\nsalad\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadTypeable(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"flask", "salad"}) {
		t.Fatalf("unexpected words: %v", words)
	}

	bad := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(bad, []byte("x-ray\n1234\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadTypeable(bad); err == nil {
		t.Fatalf("expected error when nothing survives filtering")
	}
}
