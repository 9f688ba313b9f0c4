package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/fingertypos/internal/model"
)

func TestRecordIsRelativeToStart(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.KeystrokeLogEntry{
		{Input: "a", Expected: "a", At: start, Correct: true},
		{Input: model.MissingSpaceInput, Expected: " ", At: start.Add(250 * time.Millisecond)},
		{Input: "b", Expected: "b", At: start.Add(250 * time.Millisecond), Correct: true},
	}
	events := Record(entries, start)
	require.Len(t, events, 3)
	assert.Equal(t, model.ReplayEvent{TimeMs: 0, Char: "a", Correct: true}, events[0])
	assert.Equal(t, model.ReplayEvent{TimeMs: 250, Char: model.MissingSpaceInput}, events[1])
	assert.Equal(t, int64(250), events[2].TimeMs)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].TimeMs, events[i].TimeMs)
	}
}

func TestCursorCountsPastEvents(t *testing.T) {
	p := NewPlayer([]model.ReplayEvent{
		{TimeMs: 0}, {TimeMs: 100}, {TimeMs: 100}, {TimeMs: 400},
	})
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{-time.Millisecond, 0},
		{0, 1},
		{99 * time.Millisecond, 1},
		{100 * time.Millisecond, 3},
		{399 * time.Millisecond, 3},
		{400 * time.Millisecond, 4},
		{time.Hour, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Cursor(tt.elapsed), "elapsed=%s", tt.elapsed)
	}
}

func TestPositionResetsWithoutInputs(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(time.Second)
	events := []model.ReplayEvent{{TimeMs: 10}, {TimeMs: 20}}

	live := Input{StartedAt: start, Active: true, Now: now}
	assert.Equal(t, 2, NewPlayer(events).Position(live))

	assert.Equal(t, 0, NewPlayer(nil).Position(live))
	var nilPlayer *Player
	assert.Equal(t, 0, nilPlayer.Position(live))
	assert.Equal(t, 0, NewPlayer(events).Position(Input{Active: true, Now: now}))
	assert.Equal(t, 0, NewPlayer(events).Position(Input{StartedAt: start, Now: now}))
	assert.Equal(t, 0, NewPlayer(events).Position(Input{StartedAt: start, Active: true, Paused: true, Now: now}))
}
