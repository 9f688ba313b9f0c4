// Package stats contains metric formulas and history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	curveLabelWidth     = 10
	minCurveWidth       = 10
)

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	out := make([]byte, len(values))
	for i, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		out[i] = sparkChars[min(max(idx, 0), len(sparkChars)-1)]
	}
	return string(out)
}

// Resample stretches or averages values to exactly width points.
func Resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	if len(values) >= width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

// CurveWidth is the sparkline width that fits a terminal of totalWidth
// columns next to the labels.
func CurveWidth(totalWidth int) int {
	return max(totalWidth-2*curveLabelWidth, minCurveWidth)
}

// RenderSummary prints the profile header and session summary.
func RenderSummary(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "%s  %s  (level %d, %.0f XP)\n\n", r.ProfileName, r.Rank, r.Level, r.XP); err != nil {
		return err
	}
	if r.Summary.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := r.Summary
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", s.Sessions),
		fmt.Sprintf("Avg WPM: %.1f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %d", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.1f%%", s.AvgAccuracy),
		fmt.Sprintf("Errors: %d", s.TotalErrors),
		fmt.Sprintf("XP earned: %d", s.TotalXP),
		fmt.Sprintf("Time played: %s", (time.Duration(s.TotalSeconds) * time.Second).String()),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints WPM and accuracy trends as sparklines smoothed with a
// moving average of window sessions.
func RenderCurves(w io.Writer, r Report, window, width int) error {
	if len(r.Entries) == 0 {
		return nil
	}
	wpm, acc := Series(r.Entries)
	if _, err := fmt.Fprintln(w, "Trends"); err != nil {
		return err
	}
	for _, series := range []struct {
		name   string
		values []float64
	}{
		{"WPM", wpm},
		{"Accuracy", acc},
	} {
		smoothed := MovingAverage(series.values, window)
		low, high := minMax(smoothed)
		line := fmt.Sprintf("%-*s%s %.0f..%.0f", curveLabelWidth, series.name, Sparkline(Resample(smoothed, width)), low, high)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHeatmap prints the keys with the most lifetime errors.
func RenderHeatmap(w io.Writer, keys []KeyErrors, top int) error {
	if len(keys) == 0 {
		_, err := fmt.Fprintln(w, "No errors recorded.")
		return err
	}
	if top > 0 && top < len(keys) {
		keys = keys[:top]
	}
	if _, err := fmt.Fprintln(w, "Error Heatmap"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{
			CharLabel(k.Char),
			fmt.Sprintf("%d", k.Errors),
			fmt.Sprintf("%.1f%%", k.Share*100),
			Sparkbar(k.Share, keys[0].Share, 20),
		})
	}
	return WriteTable(w, []string{"Char", "Errors", "Share", ""}, rows, map[int]bool{1: true, 2: true})
}

// Sparkbar renders value as a horizontal bar relative to maxVal.
func Sparkbar(value, maxVal float64, width int) string {
	if maxVal <= 0 || width <= 0 {
		return ""
	}
	n := int(math.Round(value / maxVal * float64(width)))
	return strings.Repeat("#", min(max(n, 0), width))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	low, high := values[0], values[0]
	for _, v := range values[1:] {
		low = math.Min(low, v)
		high = math.Max(high, v)
	}
	return low, high
}
