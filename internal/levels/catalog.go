package levels

import (
	"github.com/samber/lo"

	"github.com/verte-zerg/fingertypos/internal/model"
)

// Campaign returns the tiered campaign levels for a layout.
func Campaign(layoutID string) []model.LevelConfig {
	keys := Layout(layoutID)
	letters := chars(keys, onRow(RowTop, RowHome, RowBottom))
	printable := chars(keys, onRow(RowNumber, RowTop, RowHome, RowBottom))

	foundation := func(lvl model.LevelConfig) model.LevelConfig {
		lvl.Tier, lvl.TierName, lvl.RequiredLevel = 1, "Foundation", 1
		return lvl
	}
	reachingUp := func(lvl model.LevelConfig) model.LevelConfig {
		lvl.Tier, lvl.TierName, lvl.RequiredLevel = 2, "Reaching Up", 3
		return lvl
	}
	basement := func(lvl model.LevelConfig) model.LevelConfig {
		lvl.Tier, lvl.TierName, lvl.RequiredLevel = 3, "The Basement", 5
		return lvl
	}
	realWorld := func(lvl model.LevelConfig) model.LevelConfig {
		lvl.Tier, lvl.TierName, lvl.RequiredLevel = 4, "Real World", 8
		return lvl
	}

	return []model.LevelConfig{
		foundation(model.LevelConfig{
			ID:               "c-1-1",
			Name:             "Index Fingers",
			Description:      "Start with the anchors: F and J.",
			AllowedChars:     chars(keys, withFingers(onRow(RowHome), IndexLeft, IndexRight)),
			MinWordLength:    2,
			MaxWordLength:    4,
			TargetTextLength: 60,
			AdaptiveWeight:   0.5,
			Mode:             model.ModeChars,
		}),
		foundation(model.LevelConfig{
			ID:               "c-1-2",
			Name:             "Middle Fingers",
			Description:      "Adding D and K to the mix.",
			AllowedChars:     chars(keys, withFingers(onRow(RowHome), IndexLeft, IndexRight, MiddleLeft, MiddleRight)),
			MinWordLength:    3,
			MaxWordLength:    5,
			TargetTextLength: 80,
			AdaptiveWeight:   0.6,
			Mode:             model.ModeChars,
		}),
		foundation(model.LevelConfig{
			ID:               "c-1-3",
			Name:             "Ring & Pinky",
			Description:      "Complete the home row.",
			AllowedChars:     chars(keys, onRow(RowHome)),
			MinWordLength:    3,
			MaxWordLength:    6,
			TargetTextLength: 100,
			AdaptiveWeight:   0.7,
			Mode:             model.ModeChars,
		}),
		reachingUp(model.LevelConfig{
			ID:               "c-2-1",
			Name:             "Top Row Index",
			Description:      "Stretching up to the top row with the index fingers.",
			AllowedChars:     chars(keys, withFingers(onRow(RowHome, RowTop), IndexLeft, IndexRight)),
			MinWordLength:    3,
			MaxWordLength:    5,
			TargetTextLength: 100,
			AdaptiveWeight:   0.7,
			Mode:             model.ModeChars,
		}),
		reachingUp(model.LevelConfig{
			ID:               "c-2-2",
			Name:             "Full Top Row",
			Description:      "Mastering the upper deck.",
			AllowedChars:     chars(keys, onRow(RowHome, RowTop)),
			MinWordLength:    3,
			MaxWordLength:    7,
			TargetTextLength: 120,
			AdaptiveWeight:   0.8,
			Mode:             model.ModeChars,
		}),
		basement(model.LevelConfig{
			ID:               "c-3-1",
			Name:             "Bottom Row Index",
			Description:      "Folding down to V, B, N and M.",
			AllowedChars:     chars(keys, withFingers(onRow(RowHome, RowBottom), IndexLeft, IndexRight)),
			MinWordLength:    3,
			MaxWordLength:    5,
			TargetTextLength: 100,
			AdaptiveWeight:   0.7,
			Mode:             model.ModeChars,
		}),
		basement(model.LevelConfig{
			ID:               "c-3-2",
			Name:             "Full Alphabet",
			Description:      "All letters combined.",
			AllowedChars:     letters,
			MinWordLength:    4,
			MaxWordLength:    8,
			TargetTextLength: 150,
			AdaptiveWeight:   0.8,
			Mode:             model.ModeWords,
		}),
		realWorld(model.LevelConfig{
			ID:               "c-4-1",
			Name:             "Capitalization",
			Description:      "Shift for names and sentence starts.",
			AllowedChars:     letters,
			MinWordLength:    4,
			MaxWordLength:    8,
			TargetTextLength: 150,
			AdaptiveWeight:   0.5,
			Mode:             model.ModeMixed,
		}),
		realWorld(model.LevelConfig{
			ID:                 "c-4-2",
			Name:               "Punctuation Basics",
			Description:        "Periods, commas and questions.",
			AllowedChars:       letters,
			MinWordLength:      5,
			MaxWordLength:      10,
			TargetTextLength:   180,
			IncludePunctuation: true,
			AdaptiveWeight:     0.6,
			Mode:               model.ModeMixed,
		}),
		{
			ID:                 "c-5-1",
			Tier:               5,
			TierName:           "Mastery",
			RequiredLevel:      12,
			Name:               "Full Sentences",
			Description:        "Meaningful, complex sentences.",
			AllowedChars:       printable,
			MinWordLength:      2,
			MaxWordLength:      15,
			TargetTextLength:   250,
			IncludePunctuation: true,
			Mode:               model.ModeSentence,
		},
	}
}

// Training returns the free-practice levels for a layout. Training levels
// are always unlocked.
func Training(layoutID string) []model.LevelConfig {
	keys := Layout(layoutID)
	letters := chars(keys, onRow(RowTop, RowHome, RowBottom))
	printable := chars(keys, onRow(RowNumber, RowTop, RowHome, RowBottom))

	return []model.LevelConfig{
		{
			ID:               "train-easy",
			Name:             "Easy",
			Description:      "Common words. Lowercase only, no punctuation.",
			AllowedChars:     letters,
			MinWordLength:    3,
			MaxWordLength:    6,
			TargetTextLength: 120,
			AdaptiveWeight:   0.2,
			Mode:             model.ModeWords,
		},
		{
			ID:               "train-medium",
			Name:             "Medium",
			Description:      "Complex words with mixed capitalization.",
			AllowedChars:     letters,
			MinWordLength:    5,
			MaxWordLength:    10,
			TargetTextLength: 200,
			AdaptiveWeight:   0.5,
			Mode:             model.ModeMixed,
		},
		{
			ID:                 "train-hard",
			Name:               "Hard",
			Description:        "Full sentences with punctuation.",
			AllowedChars:       letters,
			MinWordLength:      6,
			MaxWordLength:      12,
			TargetTextLength:   250,
			IncludePunctuation: true,
			AdaptiveWeight:     0.8,
			Mode:               model.ModeSentence,
		},
		{
			ID:                 "train-elite",
			Name:               "Elite",
			Description:        "Numbers, symbols and leet speak.",
			AllowedChars:       printable,
			MinWordLength:      8,
			MaxWordLength:      15,
			TargetTextLength:   300,
			IncludePunctuation: true,
			IncludeNumbers:     true,
			AdaptiveWeight:     1.0,
			Mode:               model.ModeMixed,
		},
		{
			ID:               "train-numbers",
			Name:             "Numbers",
			Description:      "Random groups of digits.",
			AllowedChars:     chars(keys, onRow(RowNumber)),
			MinWordLength:    2,
			MaxWordLength:    6,
			TargetTextLength: 100,
			IncludeNumbers:   true,
			Mode:             model.ModeNumbers,
		},
		{
			ID:                 "train-code",
			Name:               "Code Syntax",
			Description:        "Go snippets with brackets, indentation and keywords.",
			AllowedChars:       printable,
			MinWordLength:      2,
			MaxWordLength:      10,
			TargetTextLength:   250,
			IncludePunctuation: true,
			IncludeNumbers:     true,
			Mode:               model.ModeCode,
		},
		{
			ID:                 "train-boss",
			Name:               "Boss Rush",
			Description:        "Type fast to deal damage.",
			AllowedChars:       letters,
			MinWordLength:      5,
			MaxWordLength:      10,
			TargetTextLength:   200,
			IncludePunctuation: true,
			Mode:               model.ModeWords,
			IsBoss:             true,
		},
	}
}

// Find looks a level up by id in both catalogs.
func Find(layoutID, id string) (model.LevelConfig, model.SessionMode, bool) {
	if lvl, ok := lo.Find(Campaign(layoutID), func(l model.LevelConfig) bool { return l.ID == id }); ok {
		return lvl, model.SessionCampaign, true
	}
	if lvl, ok := lo.Find(Training(layoutID), func(l model.LevelConfig) bool { return l.ID == id }); ok {
		return lvl, model.SessionTraining, true
	}
	return model.LevelConfig{}, "", false
}
