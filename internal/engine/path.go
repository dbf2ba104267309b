package engine

import "github.com/lgbarn/opening-insight-go/internal/chess"

// canPieceMove checks if a non-pawn piece can move from one square to another
// by its movement pattern, with a clear path for sliding pieces.
func canPieceMove(board *chess.Board, pieceType chess.Piece, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) bool {
	colDiff, _ := offset(fromCol, toCol)
	rankDiff, _ := offset(fromRank, toRank)
	if colDiff == 0 && rankDiff == 0 {
		return false
	}

	switch pieceType {
	case chess.Knight:
		return (colDiff == 1 && rankDiff == 2) || (colDiff == 2 && rankDiff == 1)

	case chess.Bishop:
		return colDiff == rankDiff && isPathClear(board, fromCol, fromRank, toCol, toRank)

	case chess.Rook:
		return (colDiff == 0 || rankDiff == 0) && isPathClear(board, fromCol, fromRank, toCol, toRank)

	case chess.Queen:
		if colDiff == rankDiff || colDiff == 0 || rankDiff == 0 {
			return isPathClear(board, fromCol, fromRank, toCol, toRank)
		}
		return false

	case chess.King:
		return colDiff <= 1 && rankDiff <= 1
	}

	return false
}

// isPathClear checks that every square strictly between the two squares is
// empty. The squares must share a rank, file or diagonal.
func isPathClear(board *chess.Board, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) bool {
	_, colDir := offset(fromCol, toCol)
	_, rankDir := offset(fromRank, toRank)

	col := chess.Col(int(fromCol) + colDir)
	rank := chess.Rank(int(fromRank) + rankDir)

	for col != toCol || rank != toRank {
		if board.Get(col, rank) != chess.Empty {
			return false
		}
		col = chess.Col(int(col) + colDir)
		rank = chess.Rank(int(rank) + rankDir)
	}

	return true
}
