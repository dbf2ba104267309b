package engine

import "github.com/lgbarn/opening-insight-go/internal/chess"

var (
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlidingDirs = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingCol, kingRank := board.KingSquare(colour)

	// If king position not tracked, search for it
	if kingCol == 0 || kingRank == 0 {
		kingCol, kingRank = findKing(board, colour)
		if kingCol == 0 {
			return false
		}
	}

	return isSquareAttacked(board, kingCol, kingRank, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) (chess.Col, chess.Rank) {
	king := chess.MakeColouredPiece(colour, chess.King)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) == king {
				return col, rank
			}
		}
	}
	return 0, 0
}

// isSquareAttacked returns true if the square is attacked by the given colour.
func isSquareAttacked(board *chess.Board, col chess.Col, rank chess.Rank, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, seen from their own side.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnRank := chess.Rank(int(rank) - chess.ColourOffset(byColour))
	if board.Get(col-1, pawnRank) == pawn || board.Get(col+1, pawnRank) == pawn {
		return true
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, off := range knightOffsets {
		if board.Get(chess.Col(int(col)+off[0]), chess.Rank(int(rank)+off[1])) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, off := range kingOffsets {
		if board.Get(chess.Col(int(col)+off[0]), chess.Rank(int(rank)+off[1])) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	bishop := chess.MakeColouredPiece(byColour, chess.Bishop)
	rook := chess.MakeColouredPiece(byColour, chess.Rook)
	if slidingAttack(board, col, rank, diagonalDirs, bishop, queen) {
		return true
	}
	return slidingAttack(board, col, rank, straightDirs, rook, queen)
}

// slidingAttack walks each direction until the first occupied square and
// reports whether it holds one of the given attackers.
func slidingAttack(board *chess.Board, col chess.Col, rank chess.Rank, dirs [][2]int, attackers ...chess.Piece) bool {
	for _, dir := range dirs {
		c := chess.Col(int(col) + dir[0])
		r := chess.Rank(int(rank) + dir[1])
		for chess.OnBoard(c, r) {
			piece := board.Get(c, r)
			if piece != chess.Empty {
				for _, a := range attackers {
					if piece == a {
						return true
					}
				}
				break // Blocked
			}
			c = chess.Col(int(c) + dir[0])
			r = chess.Rank(int(r) + dir[1])
		}
	}
	return false
}
