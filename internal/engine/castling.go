package engine

import "github.com/lgbarn/opening-insight-go/internal/chess"

// castleTargets returns the destination columns of king and rook.
func castleTargets(kingside bool) (kingTo, rookTo chess.Col) {
	if kingside {
		return 'g', 'f'
	}
	return 'c', 'd'
}

// castlingBlocked returns why the side to move cannot castle on the given
// side, or "" when castling is legal.
func castlingBlocked(board *chess.Board, kingside bool) string {
	colour := board.ToMove
	rank := chess.HomeRank(colour)

	rookCol := board.CastleRook(colour, kingside)
	if rookCol == 0 {
		return "no castling right"
	}
	kingCol, kingRank := board.KingSquare(colour)
	if kingCol != 'e' || kingRank != rank {
		return "king is not on its home square"
	}
	if board.Get(rookCol, rank) != chess.MakeColouredPiece(colour, chess.Rook) {
		return "rook is not on its home square"
	}
	if !isPathClear(board, kingCol, rank, rookCol, rank) {
		return "squares between king and rook are occupied"
	}
	if IsInCheck(board, colour) {
		return "cannot castle out of check"
	}

	kingTo, _ := castleTargets(kingside)
	_, step := offset(kingCol, kingTo)
	for col := chess.Col(int(kingCol) + step); ; col = chess.Col(int(col) + step) {
		if isSquareAttacked(board, col, rank, colour.Opposite()) {
			return "king would cross or land on an attacked square"
		}
		if col == kingTo {
			break
		}
	}
	return ""
}

// castleMove builds the resolved castling move for the side to move.
func castleMove(board *chess.Board, kingside bool) *chess.Move {
	colour := board.ToMove
	rank := chess.HomeRank(colour)
	kingTo, _ := castleTargets(kingside)

	mv := chess.NewMove()
	mv.Class = chess.QueensideCastle
	mv.Text = "O-O-O"
	if kingside {
		mv.Class = chess.KingsideCastle
		mv.Text = "O-O"
	}
	mv.PieceToMove = chess.King
	mv.FromCol, mv.FromRank = 'e', rank
	mv.ToCol, mv.ToRank = kingTo, rank
	return mv
}

// castleMoves emits the legal castling moves of the side to move.
func castleMoves(board *chess.Board, visit moveVisitor) bool {
	for _, kingside := range []bool{true, false} {
		if castlingBlocked(board, kingside) != "" {
			continue
		}
		if !visit(castleMove(board, kingside)) {
			return false
		}
	}
	return true
}

// applyCastle moves king and rook for a castling move.
func applyCastle(board *chess.Board, move *chess.Move) {
	colour := board.ToMove
	rank := chess.HomeRank(colour)
	kingside := move.Class == chess.KingsideCastle
	kingFrom, _ := board.KingSquare(colour)
	rookFrom := board.CastleRook(colour, kingside)
	kingTo, rookTo := castleTargets(kingside)

	king := board.Get(kingFrom, rank)
	rook := board.Get(rookFrom, rank)
	board.Set(kingFrom, rank, chess.Empty)
	board.Set(rookFrom, rank, chess.Empty)
	board.Set(kingTo, rank, king)
	board.Set(rookTo, rank, rook)

	board.SetKingSquare(colour, kingTo, rank)
	board.ClearCastling(colour)
	board.EnPassant = false
	move.CapturedPiece = chess.Empty
}

// removeCastleRight drops a single castling right.
func removeCastleRight(board *chess.Board, colour chess.Colour, kingside bool) {
	switch {
	case colour == chess.White && kingside:
		board.WKingCastle = 0
	case colour == chess.White:
		board.WQueenCastle = 0
	case kingside:
		board.BKingCastle = 0
	default:
		board.BQueenCastle = 0
	}
}

// updateCastlingRightsForRook removes castling rights when a rook moves or is captured.
func updateCastlingRightsForRook(board *chess.Board, colour chess.Colour, col chess.Col, rank chess.Rank) {
	if rank != chess.HomeRank(colour) {
		return
	}
	if col == board.CastleRook(colour, true) {
		removeCastleRight(board, colour, true)
	}
	if col == board.CastleRook(colour, false) {
		removeCastleRight(board, colour, false)
	}
}
