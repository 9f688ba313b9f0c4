// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/stats"
)

const (
	tabOverview = iota
	tabHistory
	tabKeys
)

const defaultWidth = 80

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle      = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// ReportFunc builds a report for the given filters.
type ReportFunc func(cfg model.StatsConfig) (stats.Report, error)

// Model implements the Bubble Tea stats UI.
type Model struct {
	load ReportFunc
	cfg  model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	history   table.Model
	keys      table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model and loads the first report.
func NewModel(load ReportFunc, cfg model.StatsConfig) *Model {
	m := &Model{
		load:     load,
		cfg:      cfg,
		tabs:     []string{"Overview", "History", "Keys"},
		overview: viewport.New(0, 0),
		history:  newTable(historyColumns()),
		keys:     newTable(keyColumns()),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "tab":
			m.moveTab(1)
			return m, nil
		case "m":
			m.cfg.Mode = nextMode(m.cfg.Mode)
			m.refreshReport()
			return m, nil
		case "=", "+":
			m.cfg.CurveWindow++
			m.renderOverview()
			return m, nil
		case "-":
			if m.cfg.CurveWindow > 1 {
				m.cfg.CurveWindow--
				m.renderOverview()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case tabHistory:
		m.history, cmd = m.history.Update(msg)
	case tabKeys:
		m.keys, cmd = m.keys.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	return strings.Join([]string{header, body, m.renderFooter()}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X")) + 1
	footerHeight := 1
	if m.errMsg != "" {
		footerHeight++
	}
	return headerHeight, max(m.height-headerHeight-footerHeight, 1)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range []*table.Model{&m.history, &m.keys} {
		t.SetWidth(m.width)
		// One line for the header and one for its border.
		t.SetHeight(max(bodyHeight-2, 1))
	}
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	m.history.Blur()
	m.keys.Blur()
	switch m.activeTab {
	case tabHistory:
		m.history.Focus()
	case tabKeys:
		m.keys.Focus()
	}
}

func (m *Model) refreshReport() {
	report, err := m.load(m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{}
	} else {
		m.errMsg = ""
		m.report = report
	}
	m.history.SetRows(historyRows(m.report.Entries))
	m.keys.SetRows(keyRows(m.report.Heatmap))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return tabs + "\n" + headerStyle.Render(truncateLine(m.filterSummary(), m.width))
}

func (m *Model) filterSummary() string {
	mode := string(m.cfg.Mode)
	if mode == "" {
		mode = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = fmt.Sprintf("%d", m.cfg.Last)
	}
	return fmt.Sprintf("%s  mode=%s  since=%s  last=%s  window=%d",
		m.report.ProfileName, mode, since, last, m.cfg.CurveWindow)
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabHistory:
		if len(m.report.Entries) == 0 {
			return "No sessions found."
		}
		return m.history.View()
	case tabKeys:
		if len(m.report.Heatmap) == 0 {
			return "No errors recorded."
		}
		return m.keys.View()
	default:
		return m.overview.View()
	}
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Mode: m  Window: -/=  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func renderOverview(r stats.Report, window, width int) string {
	title := fmt.Sprintf("%s  level %d  %.0f XP", r.Rank, r.Level, r.XP)
	if r.Summary.Sessions == 0 {
		return title + "\n\nNo sessions found."
	}
	s := r.Summary
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Sessions", fmt.Sprintf("%d", s.Sessions)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%d", s.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AvgAccuracy)),
		metricCard("XP", fmt.Sprintf("%d", s.TotalXP)),
	)
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, r, window, stats.CurveWidth(width)); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return title + "\n" + cards + "\n\n" + strings.TrimRight(buf.String(), "\n")
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func newTable(columns []table.Column) table.Model {
	t := table.New(table.WithColumns(columns), table.WithHeight(1))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Level", Width: 14},
		{Title: "Mode", Width: 9},
		{Title: "WPM", Width: 5},
		{Title: "Acc", Width: 5},
		{Title: "Errors", Width: 6},
		{Title: "XP", Width: 5},
	}
}

// historyRows lists the newest session first.
func historyRows(entries []model.MatchHistory) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		h := entries[i]
		rows = append(rows, table.Row{
			h.Timestamp.Local().Format("2006-01-02 15:04"),
			h.LevelID,
			string(h.Mode),
			fmt.Sprintf("%d", h.WPM),
			fmt.Sprintf("%d%%", h.Accuracy),
			fmt.Sprintf("%d", h.Errors),
			fmt.Sprintf("%d", h.XPEarned),
		})
	}
	return rows
}

func keyColumns() []table.Column {
	return []table.Column{
		{Title: "Char", Width: 8},
		{Title: "Errors", Width: 7},
		{Title: "Share", Width: 7},
		{Title: "", Width: 20},
	}
}

func keyRows(keys []stats.KeyErrors) []table.Row {
	rows := make([]table.Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, table.Row{
			stats.CharLabel(k.Char),
			fmt.Sprintf("%d", k.Errors),
			fmt.Sprintf("%.1f%%", k.Share*100),
			stats.Sparkbar(k.Share, keys[0].Share, 20),
		})
	}
	return rows
}

func nextMode(mode model.SessionMode) model.SessionMode {
	switch mode {
	case "":
		return model.SessionCampaign
	case model.SessionCampaign:
		return model.SessionTraining
	default:
		return ""
	}
}

func fitLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
