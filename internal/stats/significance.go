package stats

import (
	"fmt"
	"math"

	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// Verdict classifies a player's win count against a baseline.
type Verdict string

const (
	SignificantAbove Verdict = "significant_above"
	SignificantBelow Verdict = "significant_below"
	Inconclusive     Verdict = "inconclusive"
)

// Thresholds control when a significance test is attempted.
type Thresholds struct {
	// MinGames below which the verdict is always inconclusive.
	MinGames int
	// MinVariance is the smallest Σp(1-p) for which the normal
	// approximation is used.
	MinVariance float64
	// Confidence is the two-sided confidence level, e.g. 0.95.
	Confidence float64
}

// DefaultThresholds returns 5 games, variance 5 and 95% confidence.
func DefaultThresholds() Thresholds {
	return Thresholds{MinGames: 5, MinVariance: 5, Confidence: 0.95}
}

// Validate checks that the thresholds are usable.
func (t Thresholds) Validate() error {
	if t.MinGames < 1 {
		return fmt.Errorf("minimum games %d: %w", t.MinGames, errors.ErrInvalidConfig)
	}
	if t.MinVariance < 0 || math.IsNaN(t.MinVariance) {
		return fmt.Errorf("minimum variance %v: %w", t.MinVariance, errors.ErrInvalidConfig)
	}
	if !(t.Confidence > 0 && t.Confidence < 1) {
		return fmt.Errorf("confidence %v not in (0,1): %w", t.Confidence, errors.ErrInvalidConfig)
	}
	return nil
}

// CriticalValue returns the two-sided standard normal quantile for a
// confidence level: 1.96 for 0.95.
func CriticalValue(confidence float64) float64 {
	return math.Sqrt2 * math.Erfinv(confidence)
}

// Sample is the evidence for one significance test. ExpectedWins and Variance
// are Σp and Σp(1-p) over the games, p being the baseline win fraction for
// the player's colour in each game.
type Sample struct {
	Games        int
	Wins         int
	ExpectedWins float64
	Variance     float64
	HasBaseline  bool
}

// Result of a significance test. Z is nil when no test was possible.
type Result struct {
	Z       *float64 `json:"z,omitempty"`
	Verdict Verdict  `json:"verdict"`
}

// Test compares observed wins with the baseline using the normal
// approximation z = (W - Σp) / sqrt(Σp(1-p)). With a single baseline p this
// is the binomial z-score (W - np) / sqrt(np(1-p)).
func Test(s Sample, th Thresholds) Result {
	if !s.HasBaseline || s.Games < th.MinGames || s.Games == 0 {
		return Result{Verdict: Inconclusive}
	}
	if s.Variance <= 0 || s.Variance < th.MinVariance {
		return Result{Verdict: Inconclusive}
	}

	z := (float64(s.Wins) - s.ExpectedWins) / math.Sqrt(s.Variance)
	crit := CriticalValue(th.Confidence)
	verdict := Inconclusive
	switch {
	case z > crit:
		verdict = SignificantAbove
	case z < -crit:
		verdict = SignificantBelow
	}
	return Result{Z: &z, Verdict: verdict}
}

// BinomialSample builds a Sample for n games against one baseline win
// fraction p.
func BinomialSample(wins, games int, p float64) Sample {
	n := float64(games)
	return Sample{
		Games:        games,
		Wins:         wins,
		ExpectedWins: n * p,
		Variance:     n * p * (1 - p),
		HasBaseline:  p > 0 && p < 1,
	}
}
