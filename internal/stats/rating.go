// Package stats computes Elo expected scores, performance ratings and
// significance verdicts for game results.
package stats

import (
	"fmt"
	"math"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// Outcome is a game result from the analysed player's point of view.
type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

// Score returns 1, 0.5 or 0.
func (o Outcome) Score() float64 {
	switch o {
	case Win:
		return 1
	case Draw:
		return 0.5
	default:
		return 0
	}
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}

// MarshalText encodes the outcome as "win", "draw" or "loss".
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText accepts "win", "draw" or "loss".
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "win":
		*o = Win
	case "draw":
		*o = Draw
	case "loss":
		*o = Loss
	default:
		return fmt.Errorf("unknown outcome %q: %w", text, errors.ErrParseFailure)
	}
	return nil
}

// OutcomeFor converts a PGN result tag into the outcome for the player of the
// given colour. Unfinished games ("*") and unknown values report false.
func OutcomeFor(result string, colour chess.Colour) (Outcome, bool) {
	var white Outcome
	switch result {
	case "1-0":
		white = Win
	case "0-1":
		white = Loss
	case "1/2-1/2", "½-½":
		white = Draw
	default:
		return Loss, false
	}
	if colour == chess.White || white == Draw {
		return white, true
	}
	return Win - white, true
}

// ValidateRating rejects NaN, infinite and negative ratings.
func ValidateRating(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("rating %v: %w", r, errors.ErrInvalidRating)
	}
	return nil
}

// ExpectedScore is the Elo expected score of a player against an opponent:
// 1 / (1 + 10^((opponent - player) / 400)).
func ExpectedScore(playerRating, opponentRating float64) (float64, error) {
	if err := ValidateRating(playerRating); err != nil {
		return 0, err
	}
	if err := ValidateRating(opponentRating); err != nil {
		return 0, err
	}
	return 1 / (1 + math.Pow(10, (opponentRating-playerRating)/400)), nil
}

// PerformanceRating is the single-game performance
// opponent + 400*log10((S + 0.01) / (1.01 - S)). The offsets keep the result
// finite for S = 0 and S = 1.
func PerformanceRating(opponentRating, score float64) (float64, error) {
	if err := ValidateRating(opponentRating); err != nil {
		return 0, err
	}
	if math.IsNaN(score) || score < 0 || score > 1 {
		return 0, fmt.Errorf("score %v out of range [0,1]: %w", score, errors.ErrInvalidRating)
	}
	return opponentRating + 400*math.Log10((score+0.01)/(1.01-score)), nil
}
