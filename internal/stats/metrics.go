// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"time"
)

// charsPerWord is the conventional word size for gross WPM.
const charsPerWord = 5.0

// GrossWPM computes words per minute from typed characters and elapsed time.
// The second result is false when elapsed time is not positive.
func GrossWPM(typedChars int, elapsed time.Duration) (int, bool) {
	if elapsed <= 0 {
		return 0, false
	}
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0, false
	}
	return int(math.Round((float64(typedChars) / charsPerWord) / minutes)), true
}

// GrossAccuracy returns a 0-100 accuracy where corrected mistakes still count.
func GrossAccuracy(attempts, errors int) int {
	if attempts == 0 {
		return 100
	}
	ratio := float64(attempts-errors) / float64(attempts)
	return int(math.Round(math.Max(0, ratio) * 100))
}

// EffectiveWPM scales gross WPM by the accuracy fraction.
func EffectiveWPM(wpm, accuracy int) float64 {
	return float64(wpm) * float64(accuracy) / 100
}

// SessionXP computes the experience awarded for a finished session.
func SessionXP(wpm, accuracy, textLength int) int {
	return int(math.Round(EffectiveWPM(wpm, accuracy)*2 + float64(textLength)/2))
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}
