package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/fingertypos/internal/levels"
	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/profile"
	"github.com/verte-zerg/fingertypos/internal/progression"
	"github.com/verte-zerg/fingertypos/internal/stats"
	"github.com/verte-zerg/fingertypos/internal/statsui"
)

const heatmapTop = 10

var (
	statsProfile     string
	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	levelsProfile string
	levelsLength  string
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsProfile, "profile", "", "profile id (default: active profile)")
	cmd.Flags().StringVar(&statsMode, "mode", "", "session mode filter: campaign or training")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func statsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	mode := model.SessionMode(strings.TrimSpace(statsMode))
	switch mode {
	case "", model.SessionCampaign, model.SessionTraining:
	default:
		return model.StatsConfig{}, fmt.Errorf("--mode must be campaign or training")
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	return model.StatsConfig{
		ProfileID:   strings.TrimSpace(statsProfile),
		Mode:        mode,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	return withProfiles(func(svc *profile.Service) error {
		load := func(cfg model.StatsConfig) (stats.Report, error) {
			p, err := svc.Resolve(ctx, cfg.ProfileID)
			if err != nil {
				return stats.Report{}, err
			}
			return stats.BuildReport(p, cfg), nil
		}
		if statsPlain {
			report, err := load(cfg)
			if err != nil {
				return profileError(err)
			}
			return writePlainReport(cmd.OutOrStdout(), report, cfg.CurveWindow, stats.TerminalWidth())
		}

		program := tea.NewProgram(statsui.NewModel(load, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	})
}

func writePlainReport(w io.Writer, report stats.Report, window, width int) error {
	if err := stats.RenderSummary(w, report); err != nil {
		return err
	}
	if err := stats.RenderCurves(w, report, window, stats.CurveWidth(width)); err != nil {
		return err
	}
	return stats.RenderHeatmap(w, report.Heatmap, heatmapTop)
}

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List campaign and training levels",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
	cmd.Flags().StringVar(&levelsProfile, "profile", "", "profile id (default: active profile)")
	cmd.Flags().StringVar(&levelsLength, "length", defaultLength, "length variant for training bests")
	return cmd
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	length, ok := model.ParseLengthVariant(strings.TrimSpace(levelsLength))
	if !ok {
		return fmt.Errorf("--length must be short, medium or long")
	}
	return withProfiles(func(svc *profile.Service) error {
		p, err := svc.Resolve(context.Background(), strings.TrimSpace(levelsProfile))
		if err != nil {
			return profileError(err)
		}
		return stats.WriteTable(cmd.OutOrStdout(),
			[]string{"ID", "Tier", "Name", "Stars", "Best WPM", "Status"},
			levelRows(p, length),
			map[int]bool{4: true})
	})
}

// levelRows renders the campaign followed by the training levels for the
// profile's keyboard layout.
func levelRows(p model.Profile, length model.LengthVariant) [][]string {
	layout := p.Settings.KeyboardLayout
	var rows [][]string
	for _, level := range levels.Campaign(layout) {
		result, played := p.CampaignProgress[level.ID]
		status := "open"
		switch {
		case !progression.Unlocked(level, p.Level):
			status = fmt.Sprintf("locked (level %d)", level.RequiredLevel)
		case played:
			status = "done"
		}
		rows = append(rows, []string{
			level.ID,
			level.TierName,
			levelName(level),
			starString(result.Stars),
			bestWPM(result.BestWPM),
			status,
		})
	}
	for _, level := range levels.Training(layout) {
		result, played := p.TrainingStats[progression.TrainingKey(level.ID, length)]
		status := "open"
		if played {
			status = "done"
		}
		rows = append(rows, []string{
			level.ID,
			"Training",
			levelName(level),
			"",
			bestWPM(result.BestWPM),
			status,
		})
	}
	return rows
}

func levelName(level model.LevelConfig) string {
	if level.IsBoss {
		return level.Name + " (boss)"
	}
	return level.Name
}

func starString(stars int) string {
	if stars <= 0 {
		return "-"
	}
	return strings.Repeat("*", stars) + strings.Repeat(".", max(3-stars, 0))
}

func bestWPM(wpm int) string {
	if wpm <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", wpm)
}
