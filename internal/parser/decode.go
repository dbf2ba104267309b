package parser

import (
	"strings"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// isCol returns true if c is a valid column (file) character.
func isCol(c byte) bool {
	return c >= chess.FirstCol && c <= chess.LastCol
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= chess.FirstRank && c <= chess.LastRank
}

// pieceLetter returns the piece type for an uppercase SAN piece letter.
func pieceLetter(c byte) chess.Piece {
	switch c {
	case 'K':
		return chess.King
	case 'Q':
		return chess.Queen
	case 'R':
		return chess.Rook
	case 'B':
		return chess.Bishop
	case 'N':
		return chess.Knight
	}
	return chess.Empty
}

// isDecoration returns true for check, mate and annotation glyph characters.
func isDecoration(c byte) bool {
	return c == '+' || c == '#' || c == '!' || c == '?'
}

// StripDecorations removes trailing check/mate markers, annotation glyphs and
// an "e.p." suffix from a SAN token.
func StripDecorations(token string) string {
	s := token
	for {
		trimmed := strings.TrimSuffix(s, "e.p.")
		for len(trimmed) > 0 && isDecoration(trimmed[len(trimmed)-1]) {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// DecodeMove parses a single SAN token into a Move with the information the
// text carries: class, piece, destination, disambiguators, capture marker and
// promotion piece. The source square is resolved later against a board.
// Malformed tokens yield a *errors.ParseError.
func DecodeMove(token string) (*chess.Move, error) {
	if len(token) > chess.MaxMoveLen {
		return nil, &errors.ParseError{Token: token, Reason: "token too long"}
	}
	s := StripDecorations(token)
	if s == "" {
		return nil, &errors.ParseError{Token: token, Reason: "empty move"}
	}

	move := chess.NewMove()
	move.Text = token

	switch {
	case s[0] == 'O' || s[0] == '0':
		return decodeCastle(move, s)
	case pieceLetter(s[0]) != chess.Empty:
		return decodePieceMove(move, s)
	case isCol(s[0]):
		return decodePawnMove(move, s)
	}
	return nil, &errors.ParseError{Token: token, Reason: "unrecognised move"}
}

// decodeCastle handles O-O and O-O-O (zeros and missing dashes are accepted).
func decodeCastle(move *chess.Move, s string) (*chess.Move, error) {
	norm := strings.ReplaceAll(strings.ReplaceAll(s, "0", "O"), "-", "")
	switch norm {
	case "OO":
		move.Class = chess.KingsideCastle
	case "OOO":
		move.Class = chess.QueensideCastle
	default:
		return nil, &errors.ParseError{Token: move.Text, Reason: "malformed castling"}
	}
	move.PieceToMove = chess.King
	return move, nil
}

// decodePieceMove handles Nf3, Nbd7, R1e2, Qh4xe1, Bxc6 and so on.
// The token is read from the end: destination, capture marker, disambiguators.
func decodePieceMove(move *chess.Move, s string) (*chess.Move, error) {
	move.Class = chess.PieceMove
	move.PieceToMove = pieceLetter(s[0])
	rest := s[1:]

	if len(rest) < 2 {
		return nil, &errors.ParseError{Token: move.Text, Reason: "missing destination"}
	}

	dest := rest[len(rest)-2:]
	if !isCol(dest[0]) || !isRank(dest[1]) {
		return nil, &errors.ParseError{Token: move.Text, Reason: "invalid destination square"}
	}
	move.ToCol = chess.Col(dest[0])
	move.ToRank = chess.Rank(dest[1])
	rest = rest[:len(rest)-2]

	if strings.HasSuffix(rest, "x") || strings.HasSuffix(rest, ":") {
		move.CaptureMarked = true
		rest = rest[:len(rest)-1]
	}

	switch len(rest) {
	case 0:
	case 1:
		switch {
		case isCol(rest[0]):
			move.FromCol = chess.Col(rest[0])
		case isRank(rest[0]):
			move.FromRank = chess.Rank(rest[0])
		default:
			return nil, &errors.ParseError{Token: move.Text, Reason: "invalid disambiguator"}
		}
	case 2:
		if !isCol(rest[0]) || !isRank(rest[1]) {
			return nil, &errors.ParseError{Token: move.Text, Reason: "invalid disambiguator"}
		}
		move.FromCol = chess.Col(rest[0])
		move.FromRank = chess.Rank(rest[1])
	default:
		return nil, &errors.ParseError{Token: move.Text, Reason: "unexpected characters"}
	}
	return move, nil
}

// decodePawnMove handles e4, exd5, e8=Q, e8Q, exd8=N and the capture form
// without an explicit marker (ed5).
func decodePawnMove(move *chess.Move, s string) (*chess.Move, error) {
	move.Class = chess.PawnMove
	move.PieceToMove = chess.Pawn

	// Promotion suffix: =Q or Q.
	if p := pieceLetter(s[len(s)-1]); p != chess.Empty {
		if p == chess.King {
			return nil, &errors.ParseError{Token: move.Text, Reason: "cannot promote to king"}
		}
		move.Class = chess.PawnMoveWithPromotion
		move.PromotedPiece = p
		s = strings.TrimSuffix(s[:len(s)-1], "=")
	} else if strings.HasSuffix(s, "=") {
		return nil, &errors.ParseError{Token: move.Text, Reason: "missing promotion piece"}
	}

	if len(s) < 2 {
		return nil, &errors.ParseError{Token: move.Text, Reason: "missing destination"}
	}
	dest := s[len(s)-2:]
	if !isCol(dest[0]) || !isRank(dest[1]) {
		return nil, &errors.ParseError{Token: move.Text, Reason: "invalid destination square"}
	}
	move.ToCol = chess.Col(dest[0])
	move.ToRank = chess.Rank(dest[1])
	rest := s[:len(s)-2]

	switch {
	case rest == "":
	case len(rest) == 2 && isCol(rest[0]) && (rest[1] == 'x' || rest[1] == ':'):
		move.FromCol = chess.Col(rest[0])
		move.CaptureMarked = true
	case len(rest) == 1 && isCol(rest[0]):
		move.FromCol = chess.Col(rest[0])
		move.CaptureMarked = true
	default:
		return nil, &errors.ParseError{Token: move.Text, Reason: "unexpected characters"}
	}

	if move.CaptureMarked && move.FromCol == move.ToCol {
		return nil, &errors.ParseError{Token: move.Text, Reason: "pawn capture on its own file"}
	}
	return move, nil
}
