// Package processing turns one game into a position sequence, an opening match
// and a performance record.
package processing

import (
	"fmt"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/eco"
	"github.com/lgbarn/opening-insight-go/internal/engine"
	"github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/parser"
	"github.com/lgbarn/opening-insight-go/internal/stats"
)

// GameInput is one game as handed to the analyser.
type GameInput struct {
	ID string `json:"id" validate:"required"`
	// MoveText is raw SAN movetext; Moves, when set, takes precedence.
	MoveText string   `json:"move_text,omitempty"`
	Moves    []string `json:"moves,omitempty"`
	// StartFEN is the set-up position, empty for the standard start.
	StartFEN       string        `json:"start_fen,omitempty"`
	Colour         chess.Colour  `json:"colour"`
	Outcome        stats.Outcome `json:"outcome"`
	PlayerRating   float64       `json:"player_rating"`
	OpponentRating float64       `json:"opponent_rating"`
}

// PerformanceRecord is the per-game result joined with its opening. Metrics
// that could not be computed are nil.
type PerformanceRecord struct {
	GameID            string        `json:"game_id"`
	Colour            chess.Colour  `json:"colour"`
	Outcome           stats.Outcome `json:"outcome"`
	PlayerRating      *float64      `json:"player_rating"`
	OpponentRating    *float64      `json:"opponent_rating"`
	OpeningID         string        `json:"opening_id,omitempty"`
	OpeningName       string        `json:"opening_name,omitempty"`
	TheoryDepth       int           `json:"theory_depth"`
	Transposition     bool          `json:"transposition"`
	Plies             int           `json:"plies"`
	ExpectedScore     *float64      `json:"expected_score"`
	PerformanceRating *float64      `json:"performance_rating"`
	// BaselineWin is the catalog win fraction for the player's colour at the
	// matched position, nil when unmatched or the entry has no statistics.
	BaselineWin *float64 `json:"baseline_win,omitempty"`
	RatingError string   `json:"rating_error,omitempty"`
}

// Matched reports whether the game reached a catalog position.
func (r *PerformanceRecord) Matched() bool {
	return r.OpeningID != ""
}

// GameAnalysis holds everything derived from one game.
type GameAnalysis struct {
	Sequence *chess.PositionSequence
	Match    eco.MatchResult
	Record   PerformanceRecord
}

// AnalyzeGame replays the game, matches it against db and scores it. A
// malformed or illegal move fails the whole game with an *errors.GameError.
// Bad ratings do not: the record keeps its outcome and has nil metrics.
func AnalyzeGame(in GameInput, db *eco.Database) (*GameAnalysis, error) {
	if in.ID == "" {
		return nil, errors.NewGameError("", fmt.Errorf("game id: %w", errors.ErrMissingTag))
	}

	seq, err := Replay(in)
	if err != nil {
		return nil, errors.NewGameError(in.ID, err)
	}

	match := eco.Match(seq, db)
	colour := in.Colour
	record := PerformanceRecord{
		GameID:        in.ID,
		Colour:        colour,
		Outcome:       in.Outcome,
		TheoryDepth:   match.Depth,
		Transposition: match.Transposition,
		Plies:         seq.Plies(),
	}
	if match.Entry != nil {
		record.OpeningID = match.Entry.ID
		record.OpeningName = match.Entry.Name
		if match.Entry.Stats.HasBaseline() {
			p := match.Entry.Stats.WinFraction(colour)
			record.BaselineWin = &p
		}
	}
	score(&record, in)

	return &GameAnalysis{Sequence: seq, Match: match, Record: record}, nil
}

// Replay builds the position sequence of a game from its moves (or move
// text) and optional start position.
func Replay(in GameInput) (*chess.PositionSequence, error) {
	tokens := in.Moves
	if tokens == nil {
		tokens = parser.Tokenize(in.MoveText)
	}
	if in.StartFEN == "" {
		return engine.BuildSequence(tokens)
	}
	board, err := engine.NewBoardFromFEN(in.StartFEN)
	if err != nil {
		return nil, err
	}
	return engine.BuildSequenceFrom(board, tokens)
}

// score fills the rating fields of r.
func score(r *PerformanceRecord, in GameInput) {
	if err := stats.ValidateRating(in.PlayerRating); err == nil {
		v := in.PlayerRating
		r.PlayerRating = &v
	}
	if err := stats.ValidateRating(in.OpponentRating); err == nil {
		v := in.OpponentRating
		r.OpponentRating = &v
	}

	// Performance depends only on the opponent, so a bad player rating
	// drops the expected score alone.
	if expected, err := stats.ExpectedScore(in.PlayerRating, in.OpponentRating); err == nil {
		r.ExpectedScore = &expected
	} else {
		r.RatingError = err.Error()
	}
	if perf, err := stats.PerformanceRating(in.OpponentRating, in.Outcome.Score()); err == nil {
		r.PerformanceRating = &perf
	} else if r.RatingError == "" {
		r.RatingError = err.Error()
	}
}
