// Package engine implements the keystroke matching state machine behind a typing session.
package engine

import (
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/stats"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Key names understood by HandleKey besides single characters.
const (
	KeyBackspace = "Backspace"
	KeyEnter     = "Enter"
)

// placeholderRune fills the slot of a space the typist skipped.
const placeholderRune = '_'

var modifierKeys = map[string]struct{}{
	"Shift":    {},
	"CapsLock": {},
	"Tab":      {},
	"Escape":   {},
	"Control":  {},
	"Alt":      {},
}

// Key is a normalized key press delivered by the input layer.
type Key struct {
	Value string
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(clock Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// Session holds the state of one typing session. It is not safe for
// concurrent use; callers serialize input, ticks and reads.
type Session struct {
	clock Clock

	phase      Phase
	text       []rune
	typed      []rune
	transcript Transcript
	startedAt  time.Time

	elapsedSeconds int
	wpm            int
	accuracy       int
	errors         int
	attempts       int
}

// New returns an idle session.
func New(opts ...Option) *Session {
	s := &Session{clock: time.Now, accuracy: 100}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a session on text. Any previous state is discarded. The start
// time stays unset until the first accepted keystroke.
func (s *Session) Start(text string) {
	s.clear()
	s.text = []rune(text)
	s.phase = PhaseActive
	if len(s.text) == 0 {
		s.phase = PhaseFinished
	}
}

// Pause suspends input handling and clock ticks.
func (s *Session) Pause() {
	if s.phase == PhaseActive {
		s.phase = PhasePaused
	}
}

// Resume continues a paused session.
func (s *Session) Resume() {
	if s.phase == PhasePaused {
		s.phase = PhaseActive
	}
}

// Abort drops the session and returns to idle. Nothing of it is kept.
func (s *Session) Abort() {
	s.clear()
	s.text = nil
}

// Reset is an alias for Abort.
func (s *Session) Reset() {
	s.Abort()
}

// Phase reports the current lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// HandleInput processes a key value without modifiers.
func (s *Session) HandleInput(value string) {
	s.HandleKey(Key{Value: value})
}

// HandleKey processes one key press. Anything it does not understand is ignored.
func (s *Session) HandleKey(k Key) {
	if s.phase != PhaseActive {
		return
	}
	if k.Ctrl || k.Alt || k.Meta {
		return
	}
	if _, ok := modifierKeys[k.Value]; ok {
		return
	}
	value := k.Value
	if value == KeyEnter {
		value = "\n"
	}
	backspace := value == KeyBackspace
	if !backspace && utf8.RuneCountInString(value) != 1 {
		return
	}

	now := s.clock()
	if s.startedAt.IsZero() {
		s.startedAt = now
	}

	if backspace {
		if len(s.typed) > 0 {
			s.typed = s.typed[:len(s.typed)-1]
		}
	} else {
		r, _ := utf8.DecodeRuneInString(value)
		s.typeRune(r, now)
	}

	s.accuracy = stats.GrossAccuracy(s.attempts, s.errors)
	s.refreshSpeed(now)
	if len(s.typed) == len(s.text) {
		s.phase = PhaseFinished
	}
}

func (s *Session) typeRune(input rune, now time.Time) {
	pos := len(s.typed)
	if pos >= len(s.text) {
		return
	}
	s.attempts++
	expected := s.text[pos]

	if input == expected {
		s.typed = append(s.typed, input)
		s.transcript.Append(entry(string(input), expected, now, true))
		return
	}

	// Typist skipped a space and typed the character after it.
	if expected == ' ' && pos+1 < len(s.text) && input == s.text[pos+1] {
		s.errors++
		s.transcript.Append(entry(model.MissingSpaceInput, expected, now, false))
		s.typed = append(s.typed, placeholderRune, input)
		s.transcript.Append(entry(string(input), s.text[pos+1], now, true))
		return
	}

	// Input matches the previous target after a miss: fix it in place. The
	// recorded error stays counted.
	if pos > 0 && input == s.text[pos-1] {
		if last, ok := s.transcript.Last(); ok && !last.Correct {
			if s.transcript.AmendLast(entry(string(input), s.text[pos-1], now, true)) {
				s.typed[pos-1] = input
				return
			}
		}
	}

	s.errors++
	s.typed = append(s.typed, input)
	s.transcript.Append(entry(string(input), expected, now, false))
}

func (s *Session) clear() {
	s.phase = PhaseIdle
	s.typed = nil
	s.transcript.reset()
	s.startedAt = time.Time{}
	s.elapsedSeconds = 0
	s.wpm = 0
	s.accuracy = 100
	s.errors = 0
	s.attempts = 0
}

func entry(input string, expected rune, at time.Time, correct bool) model.KeystrokeLogEntry {
	return model.KeystrokeLogEntry{
		Input:    input,
		Expected: string(expected),
		At:       at,
		Correct:  correct,
	}
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Text           string
	Typed          string
	CursorIndex    int
	WPM            int
	Accuracy       int
	Errors         int
	Attempts       int
	ElapsedSeconds int
	StartedAt      time.Time
	Phase          Phase
}

// Active reports whether the session accepts input.
func (s Snapshot) Active() bool { return s.Phase == PhaseActive }

// Finished reports whether the whole text was typed.
func (s Snapshot) Finished() bool { return s.Phase == PhaseFinished }

// Started reports whether the first keystroke happened.
func (s Snapshot) Started() bool { return !s.StartedAt.IsZero() }

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Text:           string(s.text),
		Typed:          string(s.typed),
		CursorIndex:    len(s.typed),
		WPM:            s.wpm,
		Accuracy:       s.accuracy,
		Errors:         s.errors,
		Attempts:       s.attempts,
		ElapsedSeconds: s.elapsedSeconds,
		StartedAt:      s.startedAt,
		Phase:          s.phase,
	}
}

// Transcript returns a copy of the keystroke log.
func (s *Session) Transcript() []model.KeystrokeLogEntry {
	return s.transcript.Entries()
}
