// Package gametest provides PGN and move-sequence fixtures for tests of the
// packages above the engine. It lives apart from testutil so that the parser
// and engine tests can use the assertions without an import cycle.
package gametest

import (
	"strings"
	"testing"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/engine"
	"github.com/lgbarn/opening-insight-go/internal/parser"
)

// ParseTestGame parses a PGN string and returns the first game, or nil if
// parsing fails or no games are found. Use this for tests where parse failure
// is an acceptable outcome.
func ParseTestGame(pgn string) *chess.Game {
	if games := ParseTestGames(pgn); len(games) > 0 {
		return games[0]
	}
	return nil
}

// ParseTestGames parses a PGN string and returns all games found.
// Returns nil if parsing fails or no games are found.
func ParseTestGames(pgn string) []*chess.Game {
	games, err := parser.ReadAllGames(strings.NewReader(pgn))
	if err != nil || len(games) == 0 {
		return nil
	}
	return games
}

// MustParseGame parses a PGN string and returns the first game.
// It calls t.Fatal if parsing fails or no games are found.
func MustParseGame(t *testing.T, pgn string) *chess.Game {
	t.Helper()
	game := ParseTestGame(pgn)
	if game == nil {
		t.Fatalf("failed to parse test game:\n%s", pgn)
	}
	return game
}

// MustParseGames parses a PGN string and returns all games found.
// It calls t.Fatal if parsing fails or no games are found.
func MustParseGames(t *testing.T, pgn string) []*chess.Game {
	t.Helper()
	games := ParseTestGames(pgn)
	if len(games) == 0 {
		t.Fatalf("failed to parse any games from PGN:\n%s", pgn)
	}
	return games
}

// MustSequence replays SAN moves from the initial position and fails the
// test on any error.
func MustSequence(t *testing.T, moves ...string) *chess.PositionSequence {
	t.Helper()
	seq, err := engine.BuildSequence(moves)
	if err != nil {
		t.Fatalf("BuildSequence(%v) error = %v", moves, err)
	}
	return seq
}

// KeyAfter returns the canonical key of the position reached by moves.
func KeyAfter(t *testing.T, moves ...string) string {
	t.Helper()
	return MustSequence(t, moves...).Final().Key()
}
