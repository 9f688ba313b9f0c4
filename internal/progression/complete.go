package progression

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/verte-zerg/fingertypos/internal/model"
)

var newHistoryID = uuid.NewString

// TrainingKey identifies a training best result by level and length variant.
func TrainingKey(levelID string, length model.LengthVariant) string {
	if length == "" {
		length = model.LengthMedium
	}
	return levelID + "_" + string(length)
}

// GhostFor returns the stored replay a new session on the level races against.
func GhostFor(p model.Profile, mode model.SessionMode, levelID string, length model.LengthVariant) []model.ReplayEvent {
	switch mode {
	case model.SessionCampaign:
		return p.CampaignProgress[levelID].Replay
	case model.SessionTraining:
		return p.TrainingStats[TrainingKey(levelID, length)].Replay
	default:
		return nil
	}
}

// CompleteSession returns the profile that results from applying a finished
// session. The input profile is not modified, so callers can persist the
// returned value as a single state transition.
func CompleteSession(p model.Profile, r model.SessionResults, now time.Time) model.Profile {
	next := p

	next.XP = p.XP + math.Max(0, float64(r.XPEarned))
	next.Level = LevelForXP(next.XP)
	next.Rank = RankForLevel(next.Level).String()
	next.LastActiveAt = now

	var prevStats model.UserStats
	if p.Stats != nil {
		prevStats = *p.Stats
	}
	stats := prevStats
	stats.ErrorHeatmap = lo.Assign(prevStats.ErrorHeatmap)
	for ch, count := range r.ErrorMap {
		stats.ErrorHeatmap[ch] += count
	}
	if prevStats.LessonsCompleted == 0 {
		stats.AverageWPM = r.WPM
	} else {
		total := float64(prevStats.AverageWPM*prevStats.LessonsCompleted + r.WPM)
		stats.AverageWPM = int(math.Round(total / float64(prevStats.LessonsCompleted+1)))
	}
	stats.CharsTyped += r.TotalChars
	stats.LessonsCompleted++
	stats.TimePlayedSeconds += r.DurationSeconds
	next.Stats = &stats

	switch r.Mode {
	case model.SessionCampaign:
		next.CampaignProgress = lo.Assign(p.CampaignProgress)
		next.CampaignProgress[r.LevelID] = mergeCampaign(p.CampaignProgress, r, now)
	case model.SessionTraining:
		next.TrainingStats = lo.Assign(p.TrainingStats)
		key := TrainingKey(r.LevelID, r.Length)
		if prev, ok := p.TrainingStats[key]; !ok || r.WPM > prev.BestWPM {
			next.TrainingStats[key] = model.TrainingResult{BestWPM: r.WPM, Replay: r.Replay}
		}
	}

	entry := model.MatchHistory{
		ID:              newHistoryID(),
		Timestamp:       now,
		LevelID:         r.LevelID,
		Mode:            r.Mode,
		Length:          r.Length,
		WPM:             r.WPM,
		Accuracy:        r.Accuracy,
		Errors:          r.Errors,
		DurationSeconds: r.DurationSeconds,
		XPEarned:        r.XPEarned,
	}
	next.History = append([]model.MatchHistory{entry}, p.History...)
	return next
}

// mergeCampaign replaces the record on more stars, or equal stars and a
// higher WPM. Best WPM and accuracy always track the maximum seen.
func mergeCampaign(progress map[string]model.LevelResult, r model.SessionResults, now time.Time) model.LevelResult {
	stars := CalculateStars(r.WPM, r.Accuracy)
	prev, ok := progress[r.LevelID]
	if !ok {
		return model.LevelResult{
			Stars:        stars,
			BestWPM:      r.WPM,
			BestAccuracy: r.Accuracy,
			CompletedAt:  now,
			Replay:       r.Replay,
		}
	}
	bestWPM := max(prev.BestWPM, r.WPM)
	bestAcc := max(prev.BestAccuracy, r.Accuracy)
	if stars > prev.Stars || (stars == prev.Stars && r.WPM > prev.BestWPM) {
		return model.LevelResult{
			Stars:        stars,
			BestWPM:      bestWPM,
			BestAccuracy: bestAcc,
			CompletedAt:  now,
			Replay:       r.Replay,
		}
	}
	prev.BestWPM = bestWPM
	prev.BestAccuracy = bestAcc
	return prev
}
