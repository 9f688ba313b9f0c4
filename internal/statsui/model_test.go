package statsui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/stats"
)

func testProfile() model.Profile {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return model.Profile{
		Name:  "Ada",
		Rank:  "Novice 4",
		Level: 2,
		XP:    150,
		Stats: &model.UserStats{ErrorHeatmap: map[string]int{"f": 3, " ": 1}},
		// Newest first.
		History: []model.MatchHistory{
			{Timestamp: base.Add(time.Hour), LevelID: "train-easy", Mode: model.SessionTraining, WPM: 40, Accuracy: 95},
			{Timestamp: base, LevelID: "c-1-1", Mode: model.SessionCampaign, WPM: 30, Accuracy: 90},
		},
	}
}

func newTestModel(t *testing.T) (*Model, *[]model.StatsConfig) {
	t.Helper()
	var calls []model.StatsConfig
	p := testProfile()
	m := NewModel(func(cfg model.StatsConfig) (stats.Report, error) {
		calls = append(calls, cfg)
		return stats.BuildReport(p, cfg), nil
	}, model.StatsConfig{CurveWindow: 3})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, &calls
}

func TestOverviewShowsSummary(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"Overview", "Novice 4", "Best WPM", "40", "Trends", "mode=any"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestTabsRenderTables(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabHistory {
		t.Fatalf("expected history tab, got %d", m.activeTab)
	}
	view := m.View()
	if !strings.Contains(view, "train-easy") || !strings.Contains(view, "c-1-1") {
		t.Fatalf("expected history rows in view:\n%s", view)
	}
	if strings.Index(view, "train-easy") > strings.Index(view, "c-1-1") {
		t.Fatalf("expected newest session first")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	view = m.View()
	if !strings.Contains(view, "<space>") {
		t.Fatalf("expected space label in keys tab:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected tabs to wrap around, got %d", m.activeTab)
	}
}

func TestModeCycleReloads(t *testing.T) {
	m, calls := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if got := (*calls)[len(*calls)-1].Mode; got != model.SessionCampaign {
		t.Fatalf("expected campaign filter, got %q", got)
	}
	if len(m.report.Entries) != 1 || m.report.Entries[0].LevelID != "c-1-1" {
		t.Fatalf("unexpected entries: %+v", m.report.Entries)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if m.cfg.Mode != "" {
		t.Fatalf("expected mode filter to cycle back to any, got %q", m.cfg.Mode)
	}
}

func TestCurveWindowKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.CurveWindow != 4 {
		t.Fatalf("expected window 4, got %d", m.cfg.CurveWindow)
	}
	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	}
	if m.cfg.CurveWindow != 1 {
		t.Fatalf("expected window to stop at 1, got %d", m.cfg.CurveWindow)
	}
}

func TestLoadErrorShown(t *testing.T) {
	m := NewModel(func(model.StatsConfig) (stats.Report, error) {
		return stats.Report{}, errors.New("boom")
	}, model.StatsConfig{CurveWindow: 1})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	view := m.View()
	if !strings.Contains(view, "boom") || !strings.Contains(view, "No sessions found.") {
		t.Fatalf("expected error and empty state:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}
