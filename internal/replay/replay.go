// Package replay records finished transcripts as ghosts and replays them
// against a live session clock.
package replay

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/fingertypos/internal/model"
)

// Record converts a transcript into events relative to start.
func Record(entries []model.KeystrokeLogEntry, start time.Time) []model.ReplayEvent {
	return lo.Map(entries, func(e model.KeystrokeLogEntry, _ int) model.ReplayEvent {
		return model.ReplayEvent{
			TimeMs:  e.At.Sub(start).Milliseconds(),
			Char:    e.Input,
			Correct: e.Correct,
		}
	})
}

// Player computes a ghost cursor from a stored replay.
type Player struct {
	events []model.ReplayEvent
}

// NewPlayer wraps events. A nil or empty slice yields a player without a ghost.
func NewPlayer(events []model.ReplayEvent) *Player {
	return &Player{events: events}
}

// HasGhost reports whether there is anything to replay.
func (p *Player) HasGhost() bool {
	return p != nil && len(p.events) > 0
}

// Len returns the number of events.
func (p *Player) Len() int {
	if p == nil {
		return 0
	}
	return len(p.events)
}

// Cursor returns how many events happened within elapsed time.
func (p *Player) Cursor(elapsed time.Duration) int {
	if !p.HasGhost() {
		return 0
	}
	ms := elapsed.Milliseconds()
	return sort.Search(len(p.events), func(i int) bool {
		return p.events[i].TimeMs > ms
	})
}

// Input describes the live session the ghost races against.
type Input struct {
	StartedAt time.Time
	Active    bool
	Paused    bool
	Now       time.Time
}

// Position returns the ghost cursor for the live session, or 0 when there is
// no ghost, typing has not started, or the session is inactive or paused.
func (p *Player) Position(in Input) int {
	if !p.HasGhost() || in.StartedAt.IsZero() || !in.Active || in.Paused {
		return 0
	}
	return p.Cursor(in.Now.Sub(in.StartedAt))
}
