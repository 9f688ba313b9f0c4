// Package wordlist loads custom word lists for the lesson generator.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// maxWordLength bounds custom words to what any level can ask for.
const maxWordLength = 15

// LoadTypeable loads a word list and keeps the lowercase, letter-only words
// the generator can use.
func LoadTypeable(path string) ([]string, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	words = Clean(words, Letters, MaxLength(maxWordLength))
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s has no usable words", path)
	}
	return words, nil
}
