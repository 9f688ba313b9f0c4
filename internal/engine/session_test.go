package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/fingertypos/internal/model"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func typeAll(s *Session, keys string) {
	for _, r := range keys {
		s.HandleInput(string(r))
	}
}

func TestStartDefersStartTime(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Start("hello")

	snap := s.Snapshot()
	assert.Equal(t, PhaseActive, snap.Phase)
	assert.False(t, snap.Started())
	assert.Equal(t, 100, snap.Accuracy)

	clock.Advance(10 * time.Second)
	first := clock.Now()
	s.HandleInput("h")
	assert.Equal(t, first, s.Snapshot().StartedAt)
}

func TestCorrectTypingFinishes(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("abc")
	typeAll(s, "abc")

	snap := s.Snapshot()
	assert.True(t, snap.Finished())
	assert.False(t, snap.Active())
	assert.Equal(t, len(snap.Text), len(snap.Typed))
	assert.Equal(t, 3, snap.CursorIndex)
	assert.Equal(t, 0, snap.Errors)
	assert.Equal(t, 100, snap.Accuracy)

	s.HandleInput("x")
	assert.Equal(t, 3, s.Snapshot().Attempts, "input after finish is ignored")
}

func TestMissingSpaceInference(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("go fast")
	typeAll(s, "gofast")

	snap := s.Snapshot()
	require.True(t, snap.Finished())
	assert.Equal(t, 1, snap.Errors)
	assert.Equal(t, 7, len([]rune(snap.Typed)))
	assert.Equal(t, "go_fast", snap.Typed)
	assert.Equal(t, 6, snap.Attempts)

	entries := s.Transcript()
	require.Len(t, entries, 7)
	for i, e := range entries {
		if i == 2 {
			assert.Equal(t, model.MissingSpaceInput, e.Input)
			assert.Equal(t, " ", e.Expected)
			assert.False(t, e.Correct)
			continue
		}
		assert.True(t, e.Correct, "entry %d (%q) should be correct", i, e.Input)
	}
	assert.Equal(t, "f", entries[3].Input)
	assert.Equal(t, "f", entries[3].Expected)
}

func TestRetroactiveFixKeepsError(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("cat")
	typeAll(s, "cxa")

	snap := s.Snapshot()
	assert.Equal(t, "ca", snap.Typed)
	assert.Equal(t, 2, snap.CursorIndex)
	assert.Equal(t, 1, snap.Errors)
	assert.Equal(t, 3, snap.Attempts)
	assert.Equal(t, 67, snap.Accuracy)
	assert.Equal(t, PhaseActive, snap.Phase)

	entries := s.Transcript()
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Correct)
	assert.Equal(t, "a", entries[1].Input)
	assert.Equal(t, "a", entries[1].Expected)

	s.HandleInput("t")
	assert.True(t, s.Snapshot().Finished())
	assert.Equal(t, 1, s.Snapshot().Errors)
}

func TestRetroactiveFixRequiresPreviousMiss(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("aab")
	typeAll(s, "aa")
	// Expected 'b', previous target 'a' but previous entry was correct.
	s.HandleInput("a")

	snap := s.Snapshot()
	assert.Equal(t, "aaa", snap.Typed)
	assert.Equal(t, 1, snap.Errors)
	assert.True(t, snap.Finished())
}

func TestBackspaceIsFree(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("abc")
	for i := 0; i < 5; i++ {
		s.HandleInput(KeyBackspace)
	}
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Attempts)
	assert.Equal(t, 100, snap.Accuracy)
	assert.Equal(t, "", snap.Typed)
	assert.Empty(t, s.Transcript())

	typeAll(s, "ax")
	s.HandleInput(KeyBackspace)
	snap = s.Snapshot()
	assert.Equal(t, "a", snap.Typed)
	assert.Equal(t, 1, snap.Errors, "backspace does not undo a recorded error")
	assert.Equal(t, 2, snap.Attempts)
	assert.Len(t, s.Transcript(), 2)
}

func TestGrossAccuracyAfterMistakes(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("abcdefghij")
	typeAll(s, "abzdezghij")

	snap := s.Snapshot()
	assert.Equal(t, 10, snap.Attempts)
	assert.Equal(t, 2, snap.Errors)
	assert.Equal(t, 80, snap.Accuracy)
	assert.True(t, snap.Finished())
}

func TestIgnoredInput(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.HandleInput("a")
	assert.Equal(t, PhaseIdle, s.Phase())

	s.Start("ab")
	for _, k := range []Key{
		{Value: "Shift"},
		{Value: "CapsLock"},
		{Value: "Tab"},
		{Value: "Escape"},
		{Value: "Control"},
		{Value: "Alt"},
		{Value: "a", Ctrl: true},
		{Value: "a", Alt: true},
		{Value: "a", Meta: true},
		{Value: "ArrowLeft"},
		{Value: ""},
		{Value: "ab"},
	} {
		s.HandleKey(k)
	}
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Attempts)
	assert.False(t, snap.Started())
	assert.Empty(t, snap.Typed)
}

func TestEnterMapsToNewline(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("a\nb")
	s.HandleInput("a")
	s.HandleInput(KeyEnter)
	s.HandleInput("b")

	snap := s.Snapshot()
	assert.True(t, snap.Finished())
	assert.Equal(t, 0, snap.Errors)
}

func TestMultibyteCharacters(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("äö")
	typeAll(s, "äö")
	assert.True(t, s.Snapshot().Finished())
	assert.Equal(t, 2, s.Snapshot().CursorIndex)
}

func TestPauseAndResume(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Start("abcd")
	s.HandleInput("a")
	s.Pause()
	assert.Equal(t, PhasePaused, s.Phase())

	s.HandleInput("b")
	assert.Equal(t, "a", s.Snapshot().Typed)
	clock.Advance(5 * time.Second)
	assert.False(t, s.Tick(clock.Now()))

	s.Resume()
	s.HandleInput("b")
	assert.Equal(t, "ab", s.Snapshot().Typed)
}

func TestAbortResetsToIdle(t *testing.T) {
	s := New(WithClock(newFakeClock().Now))
	s.Start("abc")
	typeAll(s, "ax")
	s.Abort()

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Text)
	assert.Empty(t, snap.Typed)
	assert.Equal(t, 0, snap.Errors)
	assert.Equal(t, 100, snap.Accuracy)
	assert.Empty(t, s.Transcript())
	_, ok := s.Results(model.SessionCampaign, "c-1-1", model.LengthMedium, time.Now())
	assert.False(t, ok)
}

func TestEmptyTextIsFinished(t *testing.T) {
	s := New()
	s.Start("")
	assert.Equal(t, PhaseFinished, s.Phase())
	_, ok := s.Results(model.SessionTraining, "train-easy", model.LengthShort, time.Now())
	assert.False(t, ok, "no keystroke, no results")
}

func TestTickComputesGrossWPM(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Start(strings.Repeat("a", 20))
	assert.False(t, s.Tick(clock.Now()), "no tick before first keystroke")

	typeAll(s, strings.Repeat("a", 10))
	clock.Advance(30 * time.Second)
	require.True(t, s.Tick(clock.Now()))

	snap := s.Snapshot()
	assert.Equal(t, 30, snap.ElapsedSeconds)
	assert.Equal(t, 4, snap.WPM)
}

func TestTickSkipsZeroElapsed(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Start("abc")
	s.HandleInput("a")
	assert.False(t, s.Tick(clock.Now()))
	assert.Equal(t, 0, s.Snapshot().WPM)
}

func TestResultsFromFinishedSession(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.Start("ab cd")
	start := clock.Now()
	for _, r := range "abxcd" {
		s.HandleInput(string(r))
		clock.Advance(200 * time.Millisecond)
	}
	require.True(t, s.Snapshot().Finished())

	res, ok := s.Results(model.SessionCampaign, "c-1-1", model.LengthMedium, clock.Now())
	require.True(t, ok)
	assert.Equal(t, model.SessionCampaign, res.Mode)
	assert.Equal(t, 5, res.TotalChars)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, map[string]int{" ": 1}, res.ErrorMap)
	assert.InDelta(t, 1.0, res.DurationSeconds, 1e-9)
	require.Len(t, res.Replay, 5)
	assert.Equal(t, int64(0), res.Replay[0].TimeMs)
	assert.Equal(t, int64(800), res.Replay[4].TimeMs)
	assert.Equal(t, time.Second, clock.Now().Sub(start))

	// 5 chars over 0.8s at the last keystroke.
	assert.Equal(t, 75, res.WPM)
	assert.Equal(t, 80, res.Accuracy)
	assert.Equal(t, 123, res.XPEarned)
}

func TestTranscriptAmendOnlyOnce(t *testing.T) {
	var tr Transcript
	assert.False(t, tr.AmendLast(model.KeystrokeLogEntry{Input: "a"}))

	tr.Append(model.KeystrokeLogEntry{Input: "a"})
	tr.Append(model.KeystrokeLogEntry{Input: "b"})
	assert.True(t, tr.AmendLast(model.KeystrokeLogEntry{Input: "c"}))
	assert.False(t, tr.AmendLast(model.KeystrokeLogEntry{Input: "d"}))

	entries := tr.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Input)
	assert.Equal(t, "c", entries[1].Input)
}
