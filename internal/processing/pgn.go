package processing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/hashing"
	"github.com/lgbarn/opening-insight-go/internal/stats"
)

// FromPGN derives a GameInput for player from a PGN game. The player is found
// by name in the White and Black tags, case-insensitively. A missing player
// Elo falls back to defaultRating; a missing opponent Elo leaves the
// opponent rating NaN so that no rating metrics are produced.
func FromPGN(game *chess.Game, player string, defaultRating float64) (GameInput, error) {
	id := game.ID()
	if id == "" {
		id = hashing.ContentID(game)
	}

	in := GameInput{
		ID:       id,
		MoveText: game.MoveText,
		StartFEN: game.FEN(),
	}

	switch {
	case strings.EqualFold(strings.TrimSpace(game.White()), player):
		in.Colour = chess.White
	case strings.EqualFold(strings.TrimSpace(game.Black()), player):
		in.Colour = chess.Black
	default:
		return in, errors.NewGameError(id, fmt.Errorf("player %q is neither White nor Black: %w", player, errors.ErrMissingTag))
	}

	outcome, ok := stats.OutcomeFor(game.Result(), in.Colour)
	if !ok {
		return in, errors.NewGameError(id, fmt.Errorf("result %q: %w", game.Result(), errors.ErrMissingTag))
	}
	in.Outcome = outcome

	own, opp := chess.EloTags(in.Colour)
	in.PlayerRating = eloTag(game, own, defaultRating)
	in.OpponentRating = eloTag(game, opp, math.NaN())
	return in, nil
}

func eloTag(game *chess.Game, name string, fallback float64) float64 {
	v := strings.TrimSpace(game.GetTag(name))
	if v == "" || v == "?" || v == "-" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
