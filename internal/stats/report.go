package stats

import (
	"slices"

	"github.com/samber/lo"

	"github.com/verte-zerg/fingertypos/internal/model"
)

// Summary aggregates the sessions of a report.
type Summary struct {
	Sessions     int
	AvgWPM       float64
	BestWPM      int
	AvgAccuracy  float64
	TotalErrors  int
	TotalXP      int
	TotalSeconds float64
}

// Report contains precomputed data for stats rendering.
type Report struct {
	ProfileName string
	Rank        string
	Level       int
	XP          float64
	// Entries are ordered oldest first.
	Entries []model.MatchHistory
	Summary Summary
	Heatmap []KeyErrors
}

// BuildReport selects the history entries matching cfg and aggregates them.
// The error heatmap always covers the whole profile lifetime.
func BuildReport(p model.Profile, cfg model.StatsConfig) Report {
	entries := lo.Filter(p.History, func(h model.MatchHistory, _ int) bool {
		if cfg.Mode != "" && h.Mode != cfg.Mode {
			return false
		}
		if cfg.Since != nil && h.Timestamp.Before(*cfg.Since) {
			return false
		}
		return true
	})
	// History is stored newest first.
	slices.Reverse(entries)
	if cfg.Last > 0 && len(entries) > cfg.Last {
		entries = entries[len(entries)-cfg.Last:]
	}

	report := Report{
		ProfileName: p.Name,
		Rank:        p.Rank,
		Level:       p.Level,
		XP:          p.XP,
		Entries:     entries,
		Summary:     summarize(entries),
	}
	if p.Stats != nil {
		report.Heatmap = WeakestKeys(p.Stats.ErrorHeatmap, 0)
	}
	return report
}

func summarize(entries []model.MatchHistory) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	s := Summary{Sessions: len(entries)}
	var wpm, acc float64
	for _, h := range entries {
		wpm += float64(h.WPM)
		acc += float64(h.Accuracy)
		s.BestWPM = max(s.BestWPM, h.WPM)
		s.TotalErrors += h.Errors
		s.TotalXP += h.XPEarned
		s.TotalSeconds += h.DurationSeconds
	}
	s.AvgWPM = wpm / float64(len(entries))
	s.AvgAccuracy = acc / float64(len(entries))
	return s
}

// Series extracts the WPM and accuracy series of entries.
func Series(entries []model.MatchHistory) (wpm, accuracy []float64) {
	wpm = lo.Map(entries, func(h model.MatchHistory, _ int) float64 { return float64(h.WPM) })
	accuracy = lo.Map(entries, func(h model.MatchHistory, _ int) float64 { return float64(h.Accuracy) })
	return wpm, accuracy
}
