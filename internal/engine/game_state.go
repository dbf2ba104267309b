package engine

import "github.com/lgbarn/opening-insight-go/internal/chess"

// Status reports whether the side to move is in check or checkmated.
func Status(board *chess.Board) chess.CheckStatus {
	switch {
	case !IsInCheck(board, board.ToMove):
		return chess.NoCheck
	case HasLegalMoves(board):
		return chess.Check
	default:
		return chess.Checkmate
	}
}

// IsCheckmate returns true if the side to move is checkmated.
func IsCheckmate(board *chess.Board) bool {
	return Status(board) == chess.Checkmate
}

// IsStalemate returns true if the side to move has no legal move and is not
// in check.
func IsStalemate(board *chess.Board) bool {
	return Status(board) == chess.NoCheck && !HasLegalMoves(board)
}
