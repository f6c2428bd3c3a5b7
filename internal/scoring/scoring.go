// Package scoring maps elapsed answer time and correctness to point deltas.
package scoring

import "time"

// Tier is one time-bounded scoring bracket.
type Tier struct {
	Within time.Duration
	Points int
}

// Tiers is the ordered scoring table: first tier whose bound is >= the
// elapsed time wins. Shared between final scoring and the live preview so
// the two can never disagree.
var Tiers = []Tier{
	{Within: 5 * time.Second, Points: 100},
	{Within: 10 * time.Second, Points: 75},
	{Within: 20 * time.Second, Points: 50},
	{Within: 30 * time.Second, Points: 25},
}

const (
	// FallbackPoints is awarded for correct answers past the last tier.
	FallbackPoints = 5
	// IncorrectPenalty applies to any wrong answer regardless of time.
	IncorrectPenalty = -10
	// Countdown is the span the quiz points bar counts down over.
	Countdown = 30 * time.Second
)

// Points returns the score delta for an answer. Wrong answers take the flat
// penalty; correct answers earn by tier.
func Points(elapsed time.Duration, correct bool) int {
	if !correct {
		return IncorrectPenalty
	}
	return Preview(elapsed)
}

// Preview returns the points a correct answer would earn right now. Driven
// on a short tick purely for UI feedback; uses the identical tier table as
// Points.
func Preview(elapsed time.Duration) int {
	for _, t := range Tiers {
		if elapsed <= t.Within {
			return t.Points
		}
	}
	return FallbackPoints
}

// TimeLeft clamps the countdown remainder for display, never below zero.
func TimeLeft(elapsed time.Duration) time.Duration {
	if elapsed >= Countdown {
		return 0
	}
	return Countdown - elapsed
}
