// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings resolved from flags and the config file.
type Config struct {
	LevelID   string
	Length    LengthVariant
	ProfileID string
	GhostFPS  int
	WordsFile string
	Seed      int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	ProfileID   string
	Mode        SessionMode
	Since       *time.Time
	Last        int
	CurveWindow int
}

// GenerationMode selects how lesson text is produced.
type GenerationMode string

const (
	ModeChars    GenerationMode = "chars"
	ModeWords    GenerationMode = "words"
	ModeMixed    GenerationMode = "mixed"
	ModeSentence GenerationMode = "sentence"
	ModeCode     GenerationMode = "code"
	ModeNumbers  GenerationMode = "numbers"
)

// LengthVariant scales a lesson's target length.
type LengthVariant string

const (
	LengthShort  LengthVariant = "short"
	LengthMedium LengthVariant = "medium"
	LengthLong   LengthVariant = "long"
)

// ParseLengthVariant maps a user-supplied value to a LengthVariant.
func ParseLengthVariant(s string) (LengthVariant, bool) {
	switch LengthVariant(s) {
	case LengthShort, LengthMedium, LengthLong:
		return LengthVariant(s), true
	case "":
		return LengthMedium, true
	default:
		return "", false
	}
}

// SessionMode distinguishes campaign levels from training drills.
type SessionMode string

const (
	SessionCampaign SessionMode = "campaign"
	SessionTraining SessionMode = "training"
)

// DefaultTargetTextLength is used when a level does not set one.
const DefaultTargetTextLength = 100

// LevelConfig describes a lesson. Values are built by catalog factories and never mutated.
type LevelConfig struct {
	ID                 string
	Tier               int
	TierName           string
	Name               string
	Description        string
	AllowedChars       []rune
	MinWordLength      int
	MaxWordLength      int
	TargetTextLength   int
	IncludePunctuation bool
	IncludeNumbers     bool
	AdaptiveWeight     float64
	RequiredLevel      int
	Mode               GenerationMode
	IsBoss             bool
}

// MissingSpaceInput marks a transcript entry inferred for a skipped space.
const MissingSpaceInput = "MISSING_SPACE"

// KeystrokeLogEntry is one transcript record.
type KeystrokeLogEntry struct {
	Input    string
	Expected string
	At       time.Time
	Correct  bool
}

// ReplayEvent is a transcript entry relative to the first keystroke.
type ReplayEvent struct {
	TimeMs  int64  `json:"time"`
	Char    string `json:"char"`
	Correct bool   `json:"isCorrect"`
}

// SessionResults is handed to the progression model when a session completes.
type SessionResults struct {
	Mode            SessionMode
	LevelID         string
	Length          LengthVariant
	WPM             int
	Accuracy        int
	Errors          int
	TotalChars      int
	DurationSeconds float64
	ErrorMap        map[string]int
	XPEarned        int
	Replay          []ReplayEvent
}
