// Package scoringdomain holds the pure prediction scoring rules: tier
// classification and point evaluation. It has no storage or transport
// dependencies so the rules can be tested exhaustively.
package scoringdomain

import (
	"math"

	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

// Tier classifies how close a prediction came to the actual result.
type Tier string

const (
	// TierExact means both predicted scores match the result.
	TierExact Tier = "EXACT"
	// TierWinnerPlusScore means the outcome matches and one score matches.
	TierWinnerPlusScore Tier = "WINNER_PLUS_SCORE"
	// TierWinnerOnly means only the outcome matches.
	TierWinnerOnly Tier = "WINNER_ONLY"
	// TierOneScoreOnly means one score matches but the outcome does not.
	TierOneScoreOnly Tier = "ONE_SCORE_ONLY"
	// TierNone means nothing matches.
	TierNone Tier = "NONE"
)

// PointsConfig holds the base points awarded per tier. Values must be
// strictly decreasing from Exact down to OneScoreOnly; NONE is always zero.
type PointsConfig struct {
	Exact           int `yaml:"exact"`
	WinnerPlusScore int `yaml:"winner_plus_score"`
	WinnerOnly      int `yaml:"winner_only"`
	OneScoreOnly    int `yaml:"one_score_only"`
}

// DefaultPointsConfig returns the standard point table.
func DefaultPointsConfig() PointsConfig {
	return PointsConfig{
		Exact:           10,
		WinnerPlusScore: 7,
		WinnerOnly:      5,
		OneScoreOnly:    2,
	}
}

func (c PointsConfig) base(tier Tier) int {
	switch tier {
	case TierExact:
		return c.Exact
	case TierWinnerPlusScore:
		return c.WinnerPlusScore
	case TierWinnerOnly:
		return c.WinnerOnly
	case TierOneScoreOnly:
		return c.OneScoreOnly
	default:
		return 0
	}
}

// PointsBreakdown records how a prediction's points were computed. It is
// persisted alongside the total so the award can be explained later.
type PointsBreakdown struct {
	Tier       Tier    `json:"tier"`
	BasePoints int     `json:"base_points"`
	Multiplier float64 `json:"multiplier"`
	Total      int     `json:"total"`
}

// IsExact reports whether the prediction hit the exact score.
func (b PointsBreakdown) IsExact() bool {
	return b.Tier == TierExact
}

type outcome int

const (
	homeWin outcome = iota
	awayWin
	draw
)

func outcomeOf(home, away sharedtypes.Score) outcome {
	switch {
	case home > away:
		return homeWin
	case home < away:
		return awayWin
	default:
		return draw
	}
}

// Classify returns the tier for a prediction against the actual result.
// Exactly one tier applies to any pair of scorelines.
func Classify(predHome, predAway, actualHome, actualAway sharedtypes.Score) Tier {
	if predHome == actualHome && predAway == actualAway {
		return TierExact
	}

	oneHit := predHome == actualHome || predAway == actualAway

	if outcomeOf(predHome, predAway) == outcomeOf(actualHome, actualAway) {
		if oneHit {
			return TierWinnerPlusScore
		}
		return TierWinnerOnly
	}

	if oneHit {
		return TierOneScoreOnly
	}
	return TierNone
}

// Evaluate classifies the prediction and computes its points. A multiplier
// of zero or below is treated as 1. The total is rounded half away from zero.
func Evaluate(cfg PointsConfig, predHome, predAway, actualHome, actualAway sharedtypes.Score, multiplier float64) PointsBreakdown {
	if multiplier <= 0 {
		multiplier = 1
	}

	tier := Classify(predHome, predAway, actualHome, actualAway)
	base := cfg.base(tier)

	return PointsBreakdown{
		Tier:       tier,
		BasePoints: base,
		Multiplier: multiplier,
		Total:      int(math.Round(float64(base) * multiplier)),
	}
}
