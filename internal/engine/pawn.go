package engine

import "github.com/lgbarn/opening-insight-go/internal/chess"

// promotionPieces are the pieces a pawn may promote to, strongest first.
var promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// pawnStartRank returns the rank from which pawns of the colour may double step.
func pawnStartRank(colour chess.Colour) chess.Rank {
	return chess.Rank(int(chess.HomeRank(colour)) + chess.ColourOffset(colour))
}

// pawnMoves emits the legal moves of the pawn on the given square: pushes
// onto empty squares, captures of enemy pieces, en passant and promotions.
func pawnMoves(board *chess.Board, col chess.Col, rank chess.Rank, visit moveVisitor) bool {
	colour := board.ToMove
	dir := chess.ColourOffset(colour)
	toRank := chess.Rank(int(rank) + dir)

	if board.Get(col, toRank) == chess.Empty {
		if !emitPawnMove(board, col, rank, col, toRank, chess.PawnMove, visit) {
			return false
		}
		if rank == pawnStartRank(colour) {
			twoRank := chess.Rank(int(rank) + 2*dir)
			if board.Get(col, twoRank) == chess.Empty {
				if !emitPawnMove(board, col, rank, col, twoRank, chess.PawnMove, visit) {
					return false
				}
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		toCol := chess.Col(int(col) + dc)
		target := board.Get(toCol, toRank)
		switch {
		case chess.IsOccupied(target) && chess.ExtractColour(target) != colour:
			if !emitPawnMove(board, col, rank, toCol, toRank, chess.PawnMove, visit) {
				return false
			}
		case target == chess.Empty && board.EnPassant && toCol == board.EPCol && toRank == board.EPRank:
			if !emitPawnMove(board, col, rank, toCol, toRank, chess.EnPassantPawnMove, visit) {
				return false
			}
		}
	}
	return true
}

// emitPawnMove emits one pawn move, expanded into the four promotions when
// it reaches the last rank.
func emitPawnMove(board *chess.Board, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank, class chess.MoveClass, visit moveVisitor) bool {
	if toRank != chess.PromotionRank(board.ToMove) {
		return emit(board, newBoardMove(class, chess.Pawn, fromCol, fromRank, toCol, toRank), visit)
	}
	for _, promo := range promotionPieces {
		mv := newBoardMove(chess.PawnMoveWithPromotion, chess.Pawn, fromCol, fromRank, toCol, toRank)
		mv.PromotedPiece = promo
		if !emit(board, mv, visit) {
			return false
		}
	}
	return true
}
