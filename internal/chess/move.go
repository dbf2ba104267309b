package chess

// Move represents a single decoded SAN move and, once applied, its side effects.
type Move struct {
	// The move text as recorded (e.g., "Nf3", "exd5+", "O-O").
	Text string

	// Class of move (pawn move, piece move, castle, etc.).
	Class MoveClass

	// Source square. Zero values mean "not given" until the move is resolved.
	FromCol  Col
	FromRank Rank

	// Destination square.
	ToCol  Col
	ToRank Rank

	// The piece being moved.
	PieceToMove Piece

	// Whether the text carried a capture marker.
	CaptureMarked bool

	// The piece captured (Empty if no capture).
	CapturedPiece Piece

	// The piece promoted to (Empty if not a promotion).
	PromotedPiece Piece

	// Whether this move gives check or checkmate, computed from the resulting position.
	CheckStatus CheckStatus
}

// NewMove creates a new empty move.
func NewMove() *Move {
	return &Move{
		CapturedPiece: Empty,
		PromotedPiece: Empty,
		CheckStatus:   NoCheck,
	}
}

// IsCapture returns true if this move captured a piece.
func (m *Move) IsCapture() bool {
	return m.CapturedPiece != Empty || m.Class == EnPassantPawnMove
}

// IsPromotion returns true if this move is a pawn promotion.
func (m *Move) IsPromotion() bool {
	return m.Class == PawnMoveWithPromotion
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// UCI returns the move in long algebraic form ("e2e4", "e7e8q").
// It is only meaningful once the source square is resolved.
func (m *Move) UCI() string {
	if m.FromCol == 0 || m.FromRank == 0 || m.ToCol == 0 || m.ToRank == 0 {
		return ""
	}
	buf := []byte{byte(m.FromCol), byte(m.FromRank), byte(m.ToCol), byte(m.ToRank)}
	if m.PromotedPiece != Empty {
		buf = append(buf, m.PromotedPiece.Letter()+('a'-'A'))
	}
	return string(buf)
}
