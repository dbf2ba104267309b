package chess

// Board is the single mutable board state the engine replays moves on.
type Board struct {
	// The board squares with a hedge of 2 around for knight move calculation.
	// board[col][rank] where col and rank are 0-11 (with hedge).
	Squares [Hedge + BoardSize + Hedge][Hedge + BoardSize + Hedge]Piece

	// Who has the next move.
	ToMove Colour

	// The current move number.
	MoveNumber uint

	// Rook starting columns for the 4 castling options, 0 when the right is lost.
	WKingCastle  Col
	WQueenCastle Col
	BKingCastle  Col
	BQueenCastle Col

	// Keep track of where the two kings are for check detection.
	WKingCol  Col
	WKingRank Rank
	BKingCol  Col
	BKingRank Rank

	// Set after a double pawn push; EPCol/EPRank hold the skipped square.
	EnPassant bool
	EPRank    Rank
	EPCol     Col

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	b := &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
	for col := 0; col < Hedge+BoardSize+Hedge; col++ {
		for rank := 0; rank < Hedge+BoardSize+Hedge; rank++ {
			if col >= Hedge && col < Hedge+BoardSize &&
				rank >= Hedge && rank < Hedge+BoardSize {
				b.Squares[col][rank] = Empty
			} else {
				b.Squares[col][rank] = Off
			}
		}
	}
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	for col := Hedge; col < Hedge+BoardSize; col++ {
		for rank := Hedge; rank < Hedge+BoardSize; rank++ {
			b.Squares[col][rank] = Empty
		}
	}

	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[col+Hedge][Hedge] = W(backRank[col])
		b.Squares[col+Hedge][Hedge+1] = W(Pawn)
		b.Squares[col+Hedge][Hedge+6] = B(Pawn)
		b.Squares[col+Hedge][Hedge+7] = B(backRank[col])
	}

	b.WKingCol, b.WKingRank = 'e', '1'
	b.BKingCol, b.BKingRank = 'e', '8'

	b.WKingCastle = 'h'
	b.WQueenCastle = 'a'
	b.BKingCastle = 'h'
	b.BQueenCastle = 'a'

	b.ToMove = White
	b.MoveNumber = 1
	b.EnPassant = false
	b.HalfmoveClock = 0
}

// Get returns the piece at the given coordinates (using char coords 'a'-'h', '1'-'8').
func (b *Board) Get(col Col, rank Rank) Piece {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c == 0 || r == 0 {
		return Off
	}
	return b.Squares[c][r]
}

// Set places a piece at the given coordinates.
func (b *Board) Set(col Col, rank Rank, piece Piece) {
	c := ColConvert(col)
	r := RankConvert(rank)
	if c != 0 && r != 0 {
		b.Squares[c][r] = piece
	}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// KingSquare returns the tracked king square of the given colour.
func (b *Board) KingSquare(colour Colour) (Col, Rank) {
	if colour == White {
		return b.WKingCol, b.WKingRank
	}
	return b.BKingCol, b.BKingRank
}

// SetKingSquare records where the king of the given colour stands.
func (b *Board) SetKingSquare(colour Colour, col Col, rank Rank) {
	if colour == White {
		b.WKingCol, b.WKingRank = col, rank
	} else {
		b.BKingCol, b.BKingRank = col, rank
	}
}

// CastleRook returns the rook column for a castling right, 0 if the right is gone.
func (b *Board) CastleRook(colour Colour, kingside bool) Col {
	switch {
	case colour == White && kingside:
		return b.WKingCastle
	case colour == White:
		return b.WQueenCastle
	case kingside:
		return b.BKingCastle
	default:
		return b.BQueenCastle
	}
}

// ClearCastling removes both castling rights of a colour.
func (b *Board) ClearCastling(colour Colour) {
	if colour == White {
		b.WKingCastle, b.WQueenCastle = 0, 0
	} else {
		b.BKingCastle, b.BQueenCastle = 0, 0
	}
}
