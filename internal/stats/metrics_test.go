package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrossAccuracy(t *testing.T) {
	tests := []struct {
		attempts int
		errors   int
		want     int
	}{
		{0, 0, 100},
		{10, 2, 80},
		{3, 1, 67},
		{4, 4, 0},
		{2, 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GrossAccuracy(tt.attempts, tt.errors), "attempts=%d errors=%d", tt.attempts, tt.errors)
	}
}

func TestGrossWPM(t *testing.T) {
	wpm, ok := GrossWPM(50, time.Minute)
	assert.True(t, ok)
	assert.Equal(t, 10, wpm)

	_, ok = GrossWPM(50, 0)
	assert.False(t, ok)
	_, ok = GrossWPM(50, -time.Second)
	assert.False(t, ok)
}

func TestSessionXP(t *testing.T) {
	assert.InDelta(t, 45.0, EffectiveWPM(50, 90), 1e-9)
	// round(45*2 + 120/2)
	assert.Equal(t, 150, SessionXP(50, 90, 120))
	assert.Equal(t, 3, SessionXP(0, 100, 5))
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)
}
