// Package generator builds lesson text from level configurations.
package generator

import (
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/verte-zerg/fingertypos/internal/model"
)

// EmptyPoolText is returned when a character lesson has nothing to draw from.
const EmptyPoolText = "Error: No allowed characters."

const (
	minShortLength     = 20
	truncationOverrun  = 50
	fullAlphabetCutoff = 24
	maxExtraCopies     = 10
)

// Generator produces randomized lesson text.
type Generator struct {
	rnd    *rand.Rand
	common []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithWords replaces the built-in common word corpus.
func WithWords(words []string) Option {
	return func(g *Generator) {
		if len(words) > 0 {
			g.common = words
		}
	}
}

// New returns a Generator seeded with the current time.
func New(opts ...Option) *Generator {
	return NewWithSeed(time.Now().UnixNano(), opts...)
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rnd:    rand.New(rand.NewSource(seed)),
		common: commonWords,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TargetLength scales a level's base length by the length variant.
func TargetLength(base int, length model.LengthVariant) int {
	if base <= 0 {
		base = model.DefaultTargetTextLength
	}
	switch length {
	case model.LengthShort:
		return max(minShortLength, base/2)
	case model.LengthLong:
		return base * 2
	default:
		return base
	}
}

// Generate builds the target text for a session.
func (g *Generator) Generate(cfg model.LevelConfig, stats model.UserStats, length model.LengthVariant) string {
	target := TargetLength(cfg.TargetTextLength, length)
	switch cfg.Mode {
	case model.ModeCode:
		return g.code(target)
	case model.ModeNumbers:
		return g.numbers(target)
	case model.ModeSentence:
		return g.sentences(target)
	case model.ModeWords, model.ModeMixed:
		return g.words(cfg, stats, target)
	default:
		return g.chars(cfg, stats, target)
	}
}

func (g *Generator) code(target int) string {
	var b strings.Builder
	n := 0
	for n < target {
		if n > 0 {
			b.WriteByte('\n')
			n++
		}
		snippet := pick(g.rnd, codeSnippets)
		b.WriteString(snippet)
		n += utf8.RuneCountInString(snippet)
	}
	return truncate(b.String(), target+truncationOverrun)
}

func (g *Generator) numbers(target int) string {
	var b strings.Builder
	for b.Len() < target {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		size := g.rnd.Intn(5) + 2
		for i := 0; i < size; i++ {
			b.WriteByte(byte('0' + g.rnd.Intn(10)))
		}
	}
	return b.String()
}

func (g *Generator) sentences(target int) string {
	var b strings.Builder
	n := 0
	last := ""
	for n < target {
		sentence := pick(g.rnd, sentences)
		if sentence == last {
			// One resample only; a repeat is still possible.
			sentence = pick(g.rnd, sentences)
		}
		last = sentence
		if n > 0 {
			if g.rnd.Float64() > 0.8 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
			n++
		}
		b.WriteString(sentence)
		n += utf8.RuneCountInString(sentence)
	}
	return truncate(b.String(), target+truncationOverrun)
}

func (g *Generator) words(cfg model.LevelConfig, stats model.UserStats, target int) string {
	mixed := cfg.Mode == model.ModeMixed
	pool := filterWords(cfg, g.common)
	if mixed {
		pool = append(pool, filterWords(cfg, complexWords)...)
	}
	if len(pool) == 0 {
		return g.chars(cfg, stats, target)
	}
	canRepeat := len(lo.Uniq(pool)) == 1
	elite := mixed && cfg.IncludeNumbers && cfg.IncludePunctuation

	var words []string
	n := 0
	last := ""
	for n < target {
		var word string
		if elite && g.rnd.Float64() > 0.7 {
			word = pick(g.rnd, elitePatterns)
		} else {
			word = pick(g.rnd, pool)
			if word == last && !canRepeat {
				continue
			}
		}
		last = word
		if mixed {
			word = g.decorate(cfg, word, words)
		}
		words = append(words, word)
		n += utf8.RuneCountInString(word) + 1
	}

	if !elite {
		return strings.Join(words, " ")
	}
	var b strings.Builder
	for i, word := range words {
		if i > 0 {
			if g.rnd.Float64() > 0.9 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(word)
	}
	return b.String()
}

// decorate applies the mixed-mode transformations to one word.
func (g *Generator) decorate(cfg model.LevelConfig, word string, prev []string) string {
	if cfg.IncludeNumbers {
		if repl, ok := homoglyphWords[word]; ok {
			word = repl
		}
	}
	sentenceStart := len(prev) == 0 || strings.HasSuffix(prev[len(prev)-1], ".")
	if sentenceStart || g.rnd.Float64() > 0.8 {
		word = capitalize(word)
	}
	if !cfg.IncludeNumbers && g.rnd.Float64() > 0.9 {
		word = pick(g.rnd, properNames)
	}
	if cfg.IncludePunctuation && g.rnd.Float64() > 0.85 {
		mark := pick(g.rnd, punctuationMarks)
		if mark == "\"" {
			word = "\"" + word + "\""
		} else {
			word += mark
		}
	}
	if cfg.IncludeNumbers && cfg.IncludePunctuation && g.rnd.Float64() > 0.85 {
		for _, sub := range leetSubstitutions {
			word = strings.Replace(word, sub[0], sub[1], 1)
		}
	}
	return word
}

func (g *Generator) chars(cfg model.LevelConfig, stats model.UserStats, target int) string {
	pool := CharPool(cfg, stats)
	if len(pool) == 0 {
		return EmptyPoolText
	}
	minLen := max(cfg.MinWordLength, 1)
	maxLen := max(cfg.MaxWordLength, minLen)

	var words []string
	n := 0
	for n < target {
		size := g.rnd.Intn(maxLen-minLen+1) + minLen
		word := make([]rune, size)
		for i := range word {
			word[i] = pool[g.rnd.Intn(len(pool))]
		}
		words = append(words, string(word))
		n += size + 1
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// CharPool returns the weighted selection pool for character lessons. Each
// allowed character appears once plus up to ten extra copies scaled by its
// lifetime error count and the level's adaptive weight.
func CharPool(cfg model.LevelConfig, stats model.UserStats) []rune {
	var pool []rune
	for _, c := range cfg.AllowedChars {
		if c == ' ' {
			continue
		}
		pool = append(pool, c)
		errs := stats.ErrorHeatmap[string(c)]
		if errs <= 0 || cfg.AdaptiveWeight <= 0 {
			continue
		}
		extra := min(int(math.Floor(float64(errs)*cfg.AdaptiveWeight)), maxExtraCopies)
		for i := 0; i < extra; i++ {
			pool = append(pool, c)
		}
	}
	return pool
}

func filterWords(cfg model.LevelConfig, list []string) []string {
	if len(cfg.AllowedChars) > fullAlphabetCutoff {
		return append([]string(nil), list...)
	}
	allowed := make(map[rune]struct{}, len(cfg.AllowedChars))
	for _, c := range cfg.AllowedChars {
		allowed[unicode.ToLower(c)] = struct{}{}
	}
	return lo.Filter(list, func(word string, _ int) bool {
		size := utf8.RuneCountInString(word)
		if size < cfg.MinWordLength || size > cfg.MaxWordLength {
			return false
		}
		return lo.EveryBy([]rune(word), func(r rune) bool {
			_, ok := allowed[unicode.ToLower(r)]
			return ok
		})
	})
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.Intn(len(items))]
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
