package engine

import (
	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/parser"
)

// BuildSequence replays SAN tokens from the standard initial position.
// The result holds len(tokens)+1 positions; an empty list yields the initial
// position only.
func BuildSequence(tokens []string) (*chess.PositionSequence, error) {
	return BuildSequenceFrom(NewInitialBoard(), tokens)
}

// BuildSequenceFromText tokenizes raw movetext and replays it.
func BuildSequenceFromText(text string) (*chess.PositionSequence, error) {
	return BuildSequence(parser.Tokenize(text))
}

// ReplayGame replays a PGN game's mainline, starting from its FEN tag if set.
func ReplayGame(game *chess.Game) (*chess.PositionSequence, error) {
	board, err := NewBoardForGame(game)
	if err != nil {
		return nil, err
	}
	return BuildSequenceFrom(board, parser.Tokenize(game.MoveText))
}

// BuildSequenceFrom replays tokens on a copy of start. Trailing result markers
// are dropped. Errors are *errors.ParseError or *errors.IllegalMoveError with
// the 1-based ply of the failing token.
func BuildSequenceFrom(start *chess.Board, tokens []string) (*chess.PositionSequence, error) {
	for len(tokens) > 0 && parser.IsResultMarker(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}

	board := start.Copy()
	seq := chess.NewPositionSequence(PositionOf(board))

	for i, token := range tokens {
		ply := i + 1

		decoded, err := parser.DecodeMove(token)
		if err != nil {
			if pe, ok := err.(*errors.ParseError); ok {
				pe.Ply = ply
			}
			return nil, err
		}

		move, err := ResolveMove(board, decoded)
		if err != nil {
			if ie, ok := err.(*errors.IllegalMoveError); ok {
				ie.Ply = ply
			}
			return nil, err
		}

		ApplyMove(board, move)
		seq.Append(move, PositionOf(board))
	}

	return seq, nil
}
