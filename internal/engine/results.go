package engine

import (
	"time"

	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/replay"
	"github.com/verte-zerg/fingertypos/internal/stats"
)

// Results builds the record handed to progression. It reports false unless
// the session finished after at least one keystroke.
func (s *Session) Results(mode model.SessionMode, levelID string, length model.LengthVariant, now time.Time) (model.SessionResults, bool) {
	if s.phase != PhaseFinished || s.startedAt.IsZero() {
		return model.SessionResults{}, false
	}
	entries := s.transcript.Entries()
	return model.SessionResults{
		Mode:            mode,
		LevelID:         levelID,
		Length:          length,
		WPM:             s.wpm,
		Accuracy:        s.accuracy,
		Errors:          s.errors,
		TotalChars:      len(s.text),
		DurationSeconds: now.Sub(s.startedAt).Seconds(),
		ErrorMap:        ErrorMap(entries),
		XPEarned:        stats.SessionXP(s.wpm, s.accuracy, len(s.text)),
		Replay:          replay.Record(entries, s.startedAt),
	}, true
}

// ErrorMap counts incorrect entries by the character that was expected.
func ErrorMap(entries []model.KeystrokeLogEntry) map[string]int {
	out := map[string]int{}
	for _, e := range entries {
		if e.Correct || e.Expected == "" {
			continue
		}
		out[e.Expected]++
	}
	return out
}
