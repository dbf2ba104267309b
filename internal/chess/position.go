package chess

import (
	"fmt"
	"strings"
)

// Position is the identity of a board state: placement, side to move, castling
// rights and en-passant target. Move counters are deliberately not part of it,
// so two move orders reaching the same board compare equal.
//
// Position is a value type; == is position identity.
type Position struct {
	Placement string // FEN piece placement field
	ToMove    Colour
	Castling  string // "KQkq" subset in that order, or "-"
	EnPassant string // target square, or "-"
}

// Key returns the canonical position key: the four identity fields joined by
// single spaces, i.e. a FEN with the two counter fields removed.
func (p Position) Key() string {
	side := "b"
	if p.ToMove == White {
		side = "w"
	}
	return p.Placement + " " + side + " " + p.Castling + " " + p.EnPassant
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return p.Key()
}

// IsZero reports whether p is the zero Position.
func (p Position) IsZero() bool {
	return p.Placement == ""
}

// SplitKey splits a canonical key (or a full FEN) into its four identity fields.
// Counter fields, if present, are ignored. It does not validate the placement.
func SplitKey(key string) (Position, error) {
	fields := strings.Fields(key)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("position key %q: want 4 fields, got %d", key, len(fields))
	}
	var side Colour
	switch fields[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return Position{}, fmt.Errorf("position key %q: invalid side to move %q", key, fields[1])
	}
	return Position{
		Placement: fields[0],
		ToMove:    side,
		Castling:  fields[2],
		EnPassant: fields[3],
	}, nil
}

// PositionSequence is the ordered list of positions of a game, one per ply,
// starting with the initial position at index 0. It is never empty.
// Moves[i] is the move that produced Positions[i+1].
type PositionSequence struct {
	positions []Position
	moves     []*Move
}

// NewPositionSequence starts a sequence at the given initial position.
func NewPositionSequence(initial Position) *PositionSequence {
	return &PositionSequence{positions: []Position{initial}}
}

// Append records a move and the position it produced.
func (s *PositionSequence) Append(move *Move, pos Position) {
	s.moves = append(s.moves, move)
	s.positions = append(s.positions, pos)
}

// Len returns the number of positions (plies + 1).
func (s *PositionSequence) Len() int {
	return len(s.positions)
}

// Plies returns the number of applied moves.
func (s *PositionSequence) Plies() int {
	return len(s.moves)
}

// At returns the position after the given ply (0 is the initial position).
func (s *PositionSequence) At(ply int) Position {
	return s.positions[ply]
}

// MoveAt returns the move played at the given 1-based ply.
func (s *PositionSequence) MoveAt(ply int) *Move {
	return s.moves[ply-1]
}

// Initial returns the starting position.
func (s *PositionSequence) Initial() Position {
	return s.positions[0]
}

// Final returns the last position.
func (s *PositionSequence) Final() Position {
	return s.positions[len(s.positions)-1]
}

// Positions returns a copy of the positions.
func (s *PositionSequence) Positions() []Position {
	out := make([]Position, len(s.positions))
	copy(out, s.positions)
	return out
}

// Keys returns the canonical keys of all positions.
func (s *PositionSequence) Keys() []string {
	keys := make([]string, len(s.positions))
	for i, p := range s.positions {
		keys[i] = p.Key()
	}
	return keys
}

// SAN returns the recorded move texts in order.
func (s *PositionSequence) SAN() []string {
	out := make([]string, len(s.moves))
	for i, m := range s.moves {
		out[i] = m.Text
	}
	return out
}
