package model

import "time"

// Settings holds per-profile preferences.
type Settings struct {
	KeyboardLayout string `json:"keyboardLayout"`
	ShowGhost      bool   `json:"showGhost"`
	SoundEnabled   bool   `json:"soundEnabled"`
}

// UserStats holds cumulative per-profile counters.
type UserStats struct {
	CharsTyped        int            `json:"charsTyped"`
	TimePlayedSeconds float64        `json:"timePlayedSeconds"`
	ErrorHeatmap      map[string]int `json:"errorHeatmap"`
	LessonsCompleted  int            `json:"lessonsCompleted"`
	AverageWPM        int            `json:"averageWpm"`
}

// LevelResult is the best campaign result for one level.
type LevelResult struct {
	Stars        int           `json:"stars"`
	BestWPM      int           `json:"bestWpm"`
	BestAccuracy int           `json:"bestAccuracy"`
	CompletedAt  time.Time     `json:"completedAt"`
	Replay       []ReplayEvent `json:"replayData,omitempty"`
}

// TrainingResult is the best training result for one level and length variant.
type TrainingResult struct {
	BestWPM int           `json:"bestWpm"`
	Replay  []ReplayEvent `json:"replayData,omitempty"`
}

// MatchHistory records a completed session.
type MatchHistory struct {
	ID              string        `json:"id"`
	Timestamp       time.Time     `json:"timestamp"`
	LevelID         string        `json:"levelId"`
	Mode            SessionMode   `json:"mode"`
	Length          LengthVariant `json:"lengthMode,omitempty"`
	WPM             int           `json:"wpm"`
	Accuracy        int           `json:"accuracy"`
	Errors          int           `json:"errors"`
	DurationSeconds float64       `json:"durationSeconds"`
	XPEarned        int           `json:"xpEarned"`
}

// Profile is the persisted progression aggregate for one user.
type Profile struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	XP               float64                   `json:"xp"`
	Rank             string                    `json:"rank"`
	Level            int                       `json:"level"`
	Settings         Settings                  `json:"settings"`
	Stats            *UserStats                `json:"stats"`
	History          []MatchHistory            `json:"history"`
	CampaignProgress map[string]LevelResult    `json:"campaignProgress"`
	TrainingStats    map[string]TrainingResult `json:"trainingStats"`
	CreatedAt        time.Time                 `json:"createdAt"`
	LastActiveAt     time.Time                 `json:"lastActiveAt"`
}
