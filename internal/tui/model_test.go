package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/fingertypos/internal/engine"
	"github.com/verte-zerg/fingertypos/internal/generator"
	"github.com/verte-zerg/fingertypos/internal/model"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeRecorder struct {
	calls   int
	results model.SessionResults
	err     error
}

func (r *fakeRecorder) CompleteSession(_ context.Context, id string, results model.SessionResults) (model.Profile, error) {
	r.calls++
	r.results = results
	if r.err != nil {
		return model.Profile{}, r.err
	}
	return model.Profile{ID: id, XP: float64(results.XPEarned)}, nil
}

func newTestModel(t *testing.T, rec SessionRecorder) (*Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	level := model.LevelConfig{
		ID:               "c-1-1",
		Name:             "Index Fingers",
		AllowedChars:     []rune("f"),
		MinWordLength:    2,
		MaxWordLength:    2,
		TargetTextLength: 5,
		Mode:             model.ModeChars,
	}
	m := NewModel(context.Background(), Options{
		Level:     level,
		Mode:      model.SessionCampaign,
		Profile:   model.Profile{ID: "p1", Stats: &model.UserStats{}},
		Recorder:  rec,
		Generator: generator.NewWithSeed(1),
		Clock:     clock.Now,
	})
	return m, clock
}

func typeText(m *Model, clock *fakeClock, text string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range text {
		clock.advance(200 * time.Millisecond)
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestKeysFromMsg(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want []engine.Key
	}{
		{tea.KeyMsg{Type: tea.KeyBackspace}, []engine.Key{{Value: engine.KeyBackspace}}},
		{tea.KeyMsg{Type: tea.KeyEnter}, []engine.Key{{Value: engine.KeyEnter}}},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []engine.Key{{Value: " "}}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []engine.Key{{Value: "a"}, {Value: "b"}}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, []engine.Key{{Value: "x", Alt: true}}},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, []engine.Key{{Value: "ctrl+a", Ctrl: true}}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted"), Paste: true}, nil},
	}
	for _, tt := range tests {
		got := keysFromMsg(tt.msg)
		if len(got) != len(tt.want) {
			t.Fatalf("%v: expected %d keys, got %d", tt.msg, len(tt.want), len(got))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%v: key %d: expected %+v, got %+v", tt.msg, i, tt.want[i], got[i])
			}
		}
	}
}

func TestFinishPersistsResults(t *testing.T) {
	rec := &fakeRecorder{}
	m, clock := newTestModel(t, rec)
	text := m.session.Snapshot().Text
	if text == "" {
		t.Fatalf("expected generated text")
	}

	cmd := typeText(m, clock, text)
	if m.screen != screenResults {
		t.Fatalf("expected results screen after finishing")
	}
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	m.Update(cmd())
	if rec.calls != 1 {
		t.Fatalf("expected one save, got %d", rec.calls)
	}
	if rec.results.LevelID != "c-1-1" || rec.results.Accuracy != 100 {
		t.Fatalf("unexpected results: %+v", rec.results)
	}
	if !m.saved || m.saveErr != nil {
		t.Fatalf("expected saved state, got saved=%v err=%v", m.saved, m.saveErr)
	}
	if !strings.Contains(m.renderResults(), "Lesson complete") {
		t.Fatalf("unexpected results view: %s", m.renderResults())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenTyping || cmd == nil {
		t.Fatalf("expected a new lesson with ticks")
	}
	if m.session.Snapshot().Started() {
		t.Fatalf("new lesson must start untouched")
	}
}

func TestEscAbortsWithoutSaving(t *testing.T) {
	rec := &fakeRecorder{}
	m, clock := newTestModel(t, rec)
	text := []rune(m.session.Snapshot().Text)
	typeText(m, clock, string(text[:2]))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if rec.calls != 0 {
		t.Fatalf("aborted session must not be saved")
	}
	if m.session.Phase() != engine.PhaseIdle {
		t.Fatalf("expected idle engine, got %s", m.session.Phase())
	}
}

func TestSaveErrorIsReported(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m, clock := newTestModel(t, rec)
	cmd := typeText(m, clock, m.session.Snapshot().Text)
	m.Update(cmd())
	if m.saveErr == nil {
		t.Fatalf("expected save error")
	}
	if !strings.Contains(m.renderResults(), "Progress not saved.") {
		t.Fatalf("expected error notice in results view")
	}
}

func TestTabAndBlurPause(t *testing.T) {
	m, clock := newTestModel(t, nil)
	text := []rune(m.session.Snapshot().Text)
	typeText(m, clock, string(text[:1]))

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.session.Phase() != engine.PhasePaused {
		t.Fatalf("expected paused after tab")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: text[1:2]})
	if m.session.Snapshot().CursorIndex != 1 {
		t.Fatalf("input must be ignored while paused")
	}
	m.Update(tea.FocusMsg{})
	if m.session.Phase() != engine.PhaseActive {
		t.Fatalf("expected active after focus")
	}
	m.Update(tea.BlurMsg{})
	if m.session.Phase() != engine.PhasePaused {
		t.Fatalf("expected paused after blur")
	}
}

func TestStaleTicksIgnored(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := m.Update(clockTickMsg{lesson: m.lesson - 1})
	if cmd != nil {
		t.Fatalf("stale tick must not reschedule")
	}
	_, cmd = m.Update(clockTickMsg{lesson: m.lesson})
	if cmd == nil {
		t.Fatalf("current tick must reschedule")
	}
}

func TestGhostFollowsStoredReplay(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	ghost := []model.ReplayEvent{{TimeMs: 100, Char: "f", Correct: true}, {TimeMs: 300, Char: "f", Correct: true}}
	m := NewModel(context.Background(), Options{
		Level: model.LevelConfig{ID: "c-1-1", AllowedChars: []rune("f"), MinWordLength: 2, MaxWordLength: 2, TargetTextLength: 5},
		Mode:  model.SessionCampaign,
		Profile: model.Profile{
			Settings:         model.Settings{ShowGhost: true},
			CampaignProgress: map[string]model.LevelResult{"c-1-1": {Replay: ghost}},
		},
		Generator: generator.NewWithSeed(1),
		Clock:     clock.Now,
	})
	if m.ghostTick() == nil {
		t.Fatalf("expected ghost ticks with a stored replay")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	clock.advance(150 * time.Millisecond)
	m.Update(ghostTickMsg{lesson: m.lesson})
	if m.ghostPos != 1 {
		t.Fatalf("expected ghost at 1, got %d", m.ghostPos)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(ghostTickMsg{lesson: m.lesson})
	if m.ghostPos != 0 {
		t.Fatalf("expected ghost reset while paused, got %d", m.ghostPos)
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{}
	out := m.renderFooter(engine.Snapshot{
		Text:           "abcd",
		CursorIndex:    2,
		WPM:            72,
		Accuracy:       97,
		Errors:         3,
		ElapsedSeconds: 75,
	})
	for _, want := range []string{"Progress 50%", "72 WPM", "Acc 97%", "Errors 3", "1:15"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "Ghost") {
		t.Fatalf("no ghost expected: %s", out)
	}
}
