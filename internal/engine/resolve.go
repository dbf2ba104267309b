package engine

import (
	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// ResolveMove finds the single legal move on the board described by a decoded
// SAN move and returns it with its source square and class filled in. Zero or
// several matching legal moves give an *errors.IllegalMoveError; check
// legality is the only tie-break between otherwise equal candidates.
func ResolveMove(board *chess.Board, decoded *chess.Move) (*chess.Move, error) {
	if decoded.IsCastle() {
		kingside := decoded.Class == chess.KingsideCastle
		if reason := castlingBlocked(board, kingside); reason != "" {
			return nil, &errors.IllegalMoveError{Token: decoded.Text, Reason: reason}
		}
		mv := castleMove(board, kingside)
		mv.Text = decoded.Text
		return mv, nil
	}

	if decoded.PieceToMove == chess.Pawn {
		onLastRank := decoded.ToRank == chess.PromotionRank(board.ToMove)
		switch {
		case onLastRank && decoded.PromotedPiece == chess.Empty:
			return nil, &errors.IllegalMoveError{Token: decoded.Text, Reason: "pawn reaching the last rank must promote"}
		case !onLastRank && decoded.PromotedPiece != chess.Empty:
			return nil, &errors.IllegalMoveError{Token: decoded.Text, Reason: "promotion is only possible on the last rank"}
		}
	}

	var matches []*chess.Move
	generateMoves(board, decoded.PieceToMove, func(mv *chess.Move) bool {
		if matchesDecoded(decoded, mv) {
			matches = append(matches, mv)
		}
		return true
	})
	if len(matches) != 1 {
		return nil, &errors.IllegalMoveError{Token: decoded.Text, Candidates: len(matches)}
	}

	mv := matches[0]
	// A missing "x" is tolerated; one with nothing to take is not.
	if decoded.CaptureMarked && mv.Class != chess.EnPassantPawnMove && !chess.IsOccupied(board.Get(mv.ToCol, mv.ToRank)) {
		return nil, &errors.IllegalMoveError{Token: decoded.Text, Reason: "capture marked but the target square is empty"}
	}
	mv.Text = decoded.Text
	mv.CaptureMarked = decoded.CaptureMarked
	return mv, nil
}

// matchesDecoded reports whether a generated legal move fits the destination,
// disambiguators and promotion piece of the decoded move.
func matchesDecoded(decoded, mv *chess.Move) bool {
	if mv.IsCastle() || mv.ToCol != decoded.ToCol || mv.ToRank != decoded.ToRank {
		return false
	}
	if decoded.FromRank != 0 && mv.FromRank != decoded.FromRank {
		return false
	}
	if decoded.PieceToMove == chess.Pawn {
		// A pawn move without a from-file is a push along the destination file.
		fromCol := decoded.FromCol
		if fromCol == 0 {
			fromCol = decoded.ToCol
		}
		return mv.FromCol == fromCol && mv.PromotedPiece == decoded.PromotedPiece
	}
	return decoded.FromCol == 0 || mv.FromCol == decoded.FromCol
}
