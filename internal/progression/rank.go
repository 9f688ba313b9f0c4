// Package progression converts finished sessions into XP, levels, ranks and best results.
package progression

import (
	"fmt"
	"math"

	"github.com/verte-zerg/fingertypos/internal/model"
)

// xpPerLevelUnit scales the quadratic level curve: level L starts at 100*(L-1)^2 XP.
const xpPerLevelUnit = 100

const divisionsPerRank = 5

var rankTitles = []string{
	"Novice",
	"Apprentice",
	"Keyboard Warrior",
	"Speed Demon",
	"Cyber Scribe",
	"FingerTypos",
}

// Rank is a title with a division from 5 (lowest) to 1.
type Rank struct {
	Title    string
	Division int
}

func (r Rank) String() string {
	return fmt.Sprintf("%s %d", r.Title, r.Division)
}

// RankForLevel maps a level to its rank. Levels beyond the last title stay at
// the last title, division 1.
func RankForLevel(level int) Rank {
	if level < 1 {
		level = 1
	}
	idx := (level - 1) / divisionsPerRank
	if idx >= len(rankTitles) {
		return Rank{Title: rankTitles[len(rankTitles)-1], Division: 1}
	}
	return Rank{
		Title:    rankTitles[idx],
		Division: divisionsPerRank - (level-1)%divisionsPerRank,
	}
}

// Progress describes where an XP total sits on the level curve.
type Progress struct {
	CurrentLevel      int
	NextLevel         int
	CurrentLevelBase  float64
	NextLevelXP       float64
	XPInLevel         float64
	XPRequiredForNext float64
	ProgressPercent   float64
}

// LevelThreshold returns the XP at which level starts.
func LevelThreshold(level int) float64 {
	n := float64(level - 1)
	return xpPerLevelUnit * n * n
}

// LevelForXP returns the level reached with xp.
func LevelForXP(xp float64) int {
	if xp <= 0 {
		return 1
	}
	level := int(math.Floor(math.Sqrt(xp/xpPerLevelUnit))) + 1
	// Guard against floating point drift at exact thresholds.
	for level > 1 && xp < LevelThreshold(level) {
		level--
	}
	for xp >= LevelThreshold(level+1) {
		level++
	}
	return level
}

// LevelProgress computes level and in-level progress for an XP total.
func LevelProgress(xp float64) Progress {
	level := LevelForXP(xp)
	base := LevelThreshold(level)
	next := LevelThreshold(level + 1)
	inLevel := xp - base
	required := next - base
	pct := math.Min(100, math.Max(0, inLevel/required*100))
	return Progress{
		CurrentLevel:      level,
		NextLevel:         level + 1,
		CurrentLevelBase:  base,
		NextLevelXP:       next,
		XPInLevel:         inLevel,
		XPRequiredForNext: required,
		ProgressPercent:   pct,
	}
}

// CalculateStars grades a campaign result from 0 (failed) to 3.
func CalculateStars(wpm, accuracy int) int {
	switch {
	case accuracy < 80:
		return 0
	case wpm >= 40 && accuracy >= 95:
		return 3
	case wpm >= 25 && accuracy >= 90:
		return 2
	default:
		return 1
	}
}

// Unlocked reports whether a profile level meets a level's requirement.
func Unlocked(level model.LevelConfig, profileLevel int) bool {
	return profileLevel >= level.RequiredLevel
}
