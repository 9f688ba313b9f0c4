package engine

import (
	"time"

	"github.com/verte-zerg/fingertypos/internal/stats"
)

// TickInterval is how often callers should invoke Tick.
const TickInterval = time.Second

// Tick refreshes elapsed time and WPM. It does nothing before the first
// keystroke, while paused, or once finished, and reports whether values changed.
func (s *Session) Tick(now time.Time) bool {
	if s.phase != PhaseActive || s.startedAt.IsZero() {
		return false
	}
	return s.refreshSpeed(now)
}

func (s *Session) refreshSpeed(now time.Time) bool {
	if s.startedAt.IsZero() {
		return false
	}
	elapsed := now.Sub(s.startedAt)
	wpm, ok := stats.GrossWPM(len(s.typed), elapsed)
	if !ok {
		return false
	}
	s.elapsedSeconds = int(elapsed / time.Second)
	s.wpm = wpm
	return true
}
