// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/fingertypos/internal/engine"
	"github.com/verte-zerg/fingertypos/internal/generator"
	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/progression"
	"github.com/verte-zerg/fingertypos/internal/replay"
)

// DefaultGhostFPS is the ghost cursor refresh rate.
const DefaultGhostFPS = 30

type screen int

const (
	screenTyping screen = iota
	screenResults
)

type clockTickMsg struct{ lesson int }

type ghostTickMsg struct{ lesson int }

type savedMsg struct {
	profile model.Profile
	err     error
}

// SessionRecorder persists a finished session on a profile.
type SessionRecorder interface {
	CompleteSession(ctx context.Context, id string, results model.SessionResults) (model.Profile, error)
}

// Options configures a typing Model.
type Options struct {
	Level   model.LevelConfig
	Mode    model.SessionMode
	Length  model.LengthVariant
	Profile model.Profile
	// Recorder may be nil, in which case results are applied in memory only.
	Recorder  SessionRecorder
	Generator *generator.Generator
	GhostFPS  int
	Clock     func() time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctx  context.Context
	opts Options

	session  *engine.Session
	ghost    *replay.Player
	ghostPos int
	lesson   int
	screen   screen

	width  int
	height int

	profile model.Profile
	results model.SessionResults
	before  progression.Progress
	after   progression.Progress
	saved   bool
	saveErr error

	xpBar   progress.Model
	bossBar progress.Model
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	pausedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020")).Bold(true)
	ghostColor       = lipgloss.Color("#3A3F5C")
)

// NewModel constructs a typing TUI model and starts the first lesson.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.GhostFPS <= 0 {
		opts.GhostFPS = DefaultGhostFPS
	}
	if opts.Generator == nil {
		opts.Generator = generator.New()
	}
	m := &Model{
		ctx:     ctx,
		opts:    opts,
		session: engine.New(engine.WithClock(engine.Clock(opts.Clock))),
		profile: opts.Profile,
		xpBar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		bossBar: progress.New(progress.WithSolidFill("#FF4D4F"), progress.WithoutPercentage()),
	}
	m.startLesson()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tickCmds()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := min(max(msg.Width/2, 10), 60)
		m.xpBar.Width = barWidth
		m.bossBar.Width = barWidth
		return m, nil
	case tea.BlurMsg:
		m.session.Pause()
		return m, nil
	case tea.FocusMsg:
		m.session.Resume()
		return m, nil
	case clockTickMsg:
		if msg.lesson != m.lesson || m.screen != screenTyping {
			return m, nil
		}
		m.session.Tick(m.opts.Clock())
		return m, clockTick(m.lesson)
	case ghostTickMsg:
		if msg.lesson != m.lesson || m.screen != screenTyping {
			return m, nil
		}
		m.refreshGhost()
		return m, m.ghostTick()
	case savedMsg:
		m.saved = true
		m.saveErr = msg.err
		if msg.err != nil {
			logErrf("failed to save session: %v\n", msg.err)
			return m, nil
		}
		m.profile = msg.profile
		m.after = progression.LevelProgress(m.profile.XP)
		return m, nil
	case tea.KeyMsg:
		if m.screen == screenResults {
			return m.updateResults(msg)
		}
		return m.updateTyping(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		// Aborted sessions are never persisted.
		m.session.Abort()
		return m, tea.Quit
	case tea.KeyTab:
		if m.session.Phase() == engine.PhasePaused {
			m.session.Resume()
		} else {
			m.session.Pause()
		}
		return m, nil
	}
	for _, key := range keysFromMsg(msg) {
		m.session.HandleKey(key)
	}
	if m.session.Phase() == engine.PhaseFinished {
		return m, m.finish()
	}
	return m, nil
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "enter", "r":
		if !m.saved {
			return m, nil
		}
		m.startLesson()
		return m, m.tickCmds()
	}
	return m, nil
}

// keysFromMsg normalizes a Bubble Tea key message into engine keys. Pasted
// text produces no keys.
func keysFromMsg(msg tea.KeyMsg) []engine.Key {
	if msg.Paste {
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace:
		return []engine.Key{{Value: engine.KeyBackspace, Alt: msg.Alt}}
	case tea.KeyEnter:
		return []engine.Key{{Value: engine.KeyEnter, Alt: msg.Alt}}
	case tea.KeySpace:
		return []engine.Key{{Value: " ", Alt: msg.Alt}}
	case tea.KeyRunes:
		keys := make([]engine.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, engine.Key{Value: string(r), Alt: msg.Alt})
		}
		return keys
	default:
		name := msg.String()
		return []engine.Key{{Value: name, Ctrl: strings.HasPrefix(name, "ctrl+"), Alt: msg.Alt}}
	}
}

func (m *Model) startLesson() {
	stats := model.UserStats{}
	if m.profile.Stats != nil {
		stats = *m.profile.Stats
	}
	text := m.opts.Generator.Generate(m.opts.Level, stats, m.opts.Length)
	m.session.Start(text)
	m.lesson++
	m.screen = screenTyping
	m.ghostPos = 0
	m.results = model.SessionResults{}
	m.saved = false
	m.saveErr = nil
	m.ghost = nil
	if m.profile.Settings.ShowGhost {
		m.ghost = replay.NewPlayer(progression.GhostFor(m.profile, m.opts.Mode, m.opts.Level.ID, m.opts.Length))
	}
}

func (m *Model) tickCmds() tea.Cmd {
	return tea.Batch(clockTick(m.lesson), m.ghostTick())
}

func clockTick(lesson int) tea.Cmd {
	return tea.Tick(engine.TickInterval, func(time.Time) tea.Msg {
		return clockTickMsg{lesson: lesson}
	})
}

func (m *Model) ghostTick() tea.Cmd {
	if !m.ghost.HasGhost() {
		return nil
	}
	lesson := m.lesson
	return tea.Tick(time.Second/time.Duration(m.opts.GhostFPS), func(time.Time) tea.Msg {
		return ghostTickMsg{lesson: lesson}
	})
}

func (m *Model) refreshGhost() {
	snap := m.session.Snapshot()
	m.ghostPos = m.ghost.Position(replay.Input{
		StartedAt: snap.StartedAt,
		Active:    snap.Phase == engine.PhaseActive || snap.Phase == engine.PhasePaused,
		Paused:    snap.Phase == engine.PhasePaused,
		Now:       m.opts.Clock(),
	})
}

// finish builds the results and persists them in the background.
func (m *Model) finish() tea.Cmd {
	m.screen = screenResults
	results, ok := m.session.Results(m.opts.Mode, m.opts.Level.ID, m.opts.Length, m.opts.Clock())
	if !ok {
		m.saved = true
		return nil
	}
	m.results = results
	m.before = progression.LevelProgress(m.profile.XP)
	m.after = progression.LevelProgress(m.profile.XP + float64(max(0, results.XPEarned)))

	recorder := m.opts.Recorder
	if recorder == nil {
		next := progression.CompleteSession(m.profile, results, m.opts.Clock())
		return func() tea.Msg { return savedMsg{profile: next} }
	}
	ctx, id := m.ctx, m.profile.ID
	return func() tea.Msg {
		p, err := recorder.CompleteSession(ctx, id, results)
		return savedMsg{profile: p, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content, footer string
	if m.screen == screenResults {
		content = m.renderResults()
		footer = footerStyle.Render("enter next lesson  esc quit")
	} else {
		content = m.renderTyping()
		footer = m.renderFooter(m.session.Snapshot())
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderTyping() string {
	snap := m.session.Snapshot()
	target := []rune(snap.Text)
	typed := []rune(snap.Typed)
	cursorIndex := -1
	if snap.CursorIndex < len(target) {
		cursorIndex = snap.CursorIndex
	}
	ghostIndex := -1
	if m.ghost.HasGhost() && snap.Started() {
		ghostIndex = min(m.ghostPos, len(target)-1)
	}

	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(int(float64(m.width)*0.70), 1)
	}
	text := wrapStyledRunes(buildStyledRunes(target, typed, cursorIndex, ghostIndex), contentWidth)

	parts := []string{m.renderHeader(), ""}
	if m.opts.Level.IsBoss {
		parts = append(parts, m.renderBoss(snap), "")
	}
	parts = append(parts, text)
	if snap.Phase == engine.PhasePaused {
		parts = append(parts, "", pausedStyle.Render("Paused. Press tab to resume."))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderHeader() string {
	lvl := m.opts.Level
	title := lvl.Name
	if lvl.TierName != "" {
		title = fmt.Sprintf("%s · %s", lvl.TierName, lvl.Name)
	}
	if m.opts.Mode == model.SessionTraining {
		title = fmt.Sprintf("%s · %s", title, m.opts.Length)
	}
	return headerStyle.Render(title)
}

func (m *Model) renderBoss(snap engine.Snapshot) string {
	total := len([]rune(snap.Text))
	health := 1.0
	if total > 0 {
		health = 1 - float64(snap.CursorIndex)/float64(total)
	}
	return "Glitch Monster " + m.bossBar.ViewAs(health)
}

func (m *Model) renderFooter(snap engine.Snapshot) string {
	total := len([]rune(snap.Text))
	if total == 0 {
		return ""
	}
	segments := []string{
		fmt.Sprintf("Progress %d%%", snap.CursorIndex*100/total),
		fmt.Sprintf("%d WPM", snap.WPM),
		fmt.Sprintf("Acc %d%%", snap.Accuracy),
		fmt.Sprintf("Errors %d", snap.Errors),
		formatElapsed(snap.ElapsedSeconds),
	}
	if m.ghost.HasGhost() {
		segments = append(segments, "Ghost on")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	r := m.results
	if r.LevelID == "" {
		return headerStyle.Render("Nothing typed.")
	}
	lines := []string{
		headerStyle.Render("Lesson complete: " + m.opts.Level.Name),
		"",
		fmt.Sprintf("WPM       %d", r.WPM),
		fmt.Sprintf("Accuracy  %d%%", r.Accuracy),
		fmt.Sprintf("Errors    %d", r.Errors),
		fmt.Sprintf("Time      %s", formatElapsed(int(r.DurationSeconds))),
		fmt.Sprintf("XP        +%d", r.XPEarned),
	}
	if r.Mode == model.SessionCampaign {
		stars := progression.CalculateStars(r.WPM, r.Accuracy)
		lines = append(lines, "Stars     "+starString(stars))
	}
	if weak := weakestKey(r.ErrorMap); weak != "" {
		lines = append(lines, "Weakest   "+weak)
	}
	lines = append(lines, "",
		fmt.Sprintf("Level %d  %s", m.after.CurrentLevel, m.xpBar.ViewAs(m.after.ProgressPercent/100)),
	)
	if m.after.CurrentLevel > m.before.CurrentLevel {
		lines = append(lines, headerStyle.Render(fmt.Sprintf("Level up! %s", progression.RankForLevel(m.after.CurrentLevel))))
	}
	switch {
	case !m.saved:
		lines = append(lines, footerStyle.Render("Saving..."))
	case m.saveErr != nil:
		lines = append(lines, incorrectStyle.Render("Progress not saved."))
	}
	return strings.Join(lines, "\n")
}

func starString(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

func weakestKey(errs map[string]int) string {
	best, count := "", 0
	for ch, n := range errs {
		if n > count || (n == count && ch < best) {
			best, count = ch, n
		}
	}
	if best == " " {
		return "space"
	}
	return best
}

func formatElapsed(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
