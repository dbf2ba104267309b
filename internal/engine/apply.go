package engine

import (
	"github.com/lgbarn/opening-insight-go/internal/chess"
)

// ApplyMove plays a resolved move on the board and updates castling rights,
// the en passant target, the clocks and the side to move. The captured piece
// and the check status of the resulting position are recorded on the move.
func ApplyMove(board *chess.Board, move *chess.Move) {
	play(board, move)

	move.CheckStatus = Status(board)
}

// play performs the board mutation for a move without computing check status.
func play(board *chess.Board, move *chess.Move) {
	colour := board.ToMove

	switch move.Class {
	case chess.KingsideCastle, chess.QueensideCastle:
		applyCastle(board, move)
		board.HalfmoveClock++
	default:
		applyOrdinaryMove(board, move)
	}

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}

// applyOrdinaryMove applies a pawn or piece move with a known source square.
func applyOrdinaryMove(board *chess.Board, move *chess.Move) {
	colour := board.ToMove
	piece := board.Get(move.FromCol, move.FromRank)

	capturedCol, capturedRank := move.ToCol, move.ToRank
	if move.Class == chess.EnPassantPawnMove {
		// The captured pawn sits beside the moving pawn, not on the target.
		capturedRank = move.FromRank
	}
	captured := board.Get(capturedCol, capturedRank)
	move.CapturedPiece = chess.Empty
	if chess.IsOccupied(captured) {
		move.CapturedPiece = chess.ExtractPiece(captured)
		board.Set(capturedCol, capturedRank, chess.Empty)
	}

	board.Set(move.FromCol, move.FromRank, chess.Empty)
	if move.Class == chess.PawnMoveWithPromotion {
		board.Set(move.ToCol, move.ToRank, chess.MakeColouredPiece(colour, move.PromotedPiece))
	} else {
		board.Set(move.ToCol, move.ToRank, piece)
	}

	switch move.PieceToMove {
	case chess.King:
		board.SetKingSquare(colour, move.ToCol, move.ToRank)
		board.ClearCastling(colour)
	case chess.Rook:
		updateCastlingRightsForRook(board, colour, move.FromCol, move.FromRank)
	}
	if move.CapturedPiece == chess.Rook {
		updateCastlingRightsForRook(board, colour.Opposite(), move.ToCol, move.ToRank)
	}

	board.EnPassant = false
	if dist, _ := offset(move.FromRank, move.ToRank); move.PieceToMove == chess.Pawn && dist == 2 {
		board.EnPassant = true
		board.EPCol = move.ToCol
		board.EPRank = chess.Rank((int(move.FromRank) + int(move.ToRank)) / 2)
	}

	if move.PieceToMove == chess.Pawn || move.CapturedPiece != chess.Empty {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}
}

// leavesKingSafe reports whether playing move keeps the mover's king out of check.
// The board and the move are left untouched.
func leavesKingSafe(board *chess.Board, move *chess.Move) bool {
	colour := board.ToMove
	testBoard := board.Copy()
	testMove := *move
	play(testBoard, &testMove)
	return !IsInCheck(testBoard, colour)
}
