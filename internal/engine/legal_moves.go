package engine

import "github.com/lgbarn/opening-insight-go/internal/chess"

// moveVisitor receives generated moves; returning false stops generation.
type moveVisitor func(*chess.Move) bool

// emit passes mv to visit if it does not leave the mover's king in check.
func emit(board *chess.Board, mv *chess.Move, visit moveVisitor) bool {
	if !leavesKingSafe(board, mv) {
		return true
	}
	return visit(mv)
}

// generateMoves calls visit for every legal move of the side to move made by
// a piece of type want, or by any piece when want is chess.Empty.
func generateMoves(board *chess.Board, want chess.Piece, visit moveVisitor) {
	colour := board.ToMove
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			piece := board.Get(col, rank)
			if !chess.IsOccupied(piece) || chess.ExtractColour(piece) != colour {
				continue
			}
			pieceType := chess.ExtractPiece(piece)
			if want != chess.Empty && pieceType != want {
				continue
			}
			if !movesForPiece(board, pieceType, col, rank, visit) {
				return
			}
		}
	}
	if want == chess.Empty || want == chess.King {
		castleMoves(board, visit)
	}
}

// movesForPiece dispatches to the generator for one piece type.
func movesForPiece(board *chess.Board, pieceType chess.Piece, col chess.Col, rank chess.Rank, visit moveVisitor) bool {
	switch pieceType {
	case chess.Pawn:
		return pawnMoves(board, col, rank, visit)
	case chess.Knight:
		return stepMoves(board, pieceType, col, rank, knightOffsets, visit)
	case chess.King:
		return stepMoves(board, pieceType, col, rank, kingOffsets, visit)
	case chess.Bishop:
		return slideMoves(board, pieceType, col, rank, diagonalDirs, visit)
	case chess.Rook:
		return slideMoves(board, pieceType, col, rank, straightDirs, visit)
	case chess.Queen:
		return slideMoves(board, pieceType, col, rank, allSlidingDirs, visit)
	}
	return true
}

// LegalMoves returns every legal move of the side to move, with source squares
// resolved. Text is left empty.
func LegalMoves(board *chess.Board) []*chess.Move {
	var moves []*chess.Move
	generateMoves(board, chess.Empty, func(mv *chess.Move) bool {
		moves = append(moves, mv)
		return true
	})
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	found := false
	generateMoves(board, chess.Empty, func(*chess.Move) bool {
		found = true
		return false
	})
	return found
}
