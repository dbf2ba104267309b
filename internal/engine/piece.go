package engine

import "github.com/lgbarn/opening-insight-go/internal/chess"

// stepMoves emits the legal single-step moves (knight or king) from a square.
func stepMoves(board *chess.Board, piece chess.Piece, col chess.Col, rank chess.Rank, offsets [][2]int, visit moveVisitor) bool {
	for _, off := range offsets {
		toCol := chess.Col(int(col) + off[0])
		toRank := chess.Rank(int(rank) + off[1])
		if !canLandOn(board, toCol, toRank) {
			continue
		}
		if !emit(board, newBoardMove(chess.PieceMove, piece, col, rank, toCol, toRank), visit) {
			return false
		}
	}
	return true
}

// slideMoves emits the legal moves of a bishop, rook or queen along dirs,
// stopping each ray at the first occupied square.
func slideMoves(board *chess.Board, piece chess.Piece, col chess.Col, rank chess.Rank, dirs [][2]int, visit moveVisitor) bool {
	for _, dir := range dirs {
		toCol := chess.Col(int(col) + dir[0])
		toRank := chess.Rank(int(rank) + dir[1])
		for canLandOn(board, toCol, toRank) {
			if !emit(board, newBoardMove(chess.PieceMove, piece, col, rank, toCol, toRank), visit) {
				return false
			}
			if board.Get(toCol, toRank) != chess.Empty {
				break // Capture ends the ray
			}
			toCol = chess.Col(int(toCol) + dir[0])
			toRank = chess.Rank(int(toRank) + dir[1])
		}
	}
	return true
}

// canLandOn reports whether the side to move may move a piece onto the square:
// on the board and not occupied by one of its own pieces.
func canLandOn(board *chess.Board, col chess.Col, rank chess.Rank) bool {
	target := board.Get(col, rank)
	if target == chess.Off {
		return false
	}
	return target == chess.Empty || chess.ExtractColour(target) != board.ToMove
}

// newBoardMove builds a move with a known source square.
func newBoardMove(class chess.MoveClass, piece chess.Piece, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) *chess.Move {
	mv := chess.NewMove()
	mv.Class = class
	mv.PieceToMove = piece
	mv.FromCol, mv.FromRank = fromCol, fromRank
	mv.ToCol, mv.ToRank = toCol, toRank
	return mv
}
