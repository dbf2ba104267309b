package parser

import (
	"errors"
	"testing"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	pgnerrors "github.com/lgbarn/opening-insight-go/internal/errors"
)

func TestDecodeMove(t *testing.T) {
	tests := []struct {
		token     string
		class     chess.MoveClass
		piece     chess.Piece
		fromCol   chess.Col
		fromRank  chess.Rank
		toCol     chess.Col
		toRank    chess.Rank
		capture   bool
		promotion chess.Piece
	}{
		{"e4", chess.PawnMove, chess.Pawn, 0, 0, 'e', '4', false, chess.Empty},
		{"exd5", chess.PawnMove, chess.Pawn, 'e', 0, 'd', '5', true, chess.Empty},
		{"ed5", chess.PawnMove, chess.Pawn, 'e', 0, 'd', '5', true, chess.Empty},
		{"e8=Q", chess.PawnMoveWithPromotion, chess.Pawn, 0, 0, 'e', '8', false, chess.Queen},
		{"e8N", chess.PawnMoveWithPromotion, chess.Pawn, 0, 0, 'e', '8', false, chess.Knight},
		{"bxa1=R+", chess.PawnMoveWithPromotion, chess.Pawn, 'b', 0, 'a', '1', true, chess.Rook},
		{"b8=B", chess.PawnMoveWithPromotion, chess.Pawn, 0, 0, 'b', '8', false, chess.Bishop},
		{"Nf3", chess.PieceMove, chess.Knight, 0, 0, 'f', '3', false, chess.Empty},
		{"Nbd7", chess.PieceMove, chess.Knight, 'b', 0, 'd', '7', false, chess.Empty},
		{"R1e2", chess.PieceMove, chess.Rook, 0, '1', 'e', '2', false, chess.Empty},
		{"Qh4xe1", chess.PieceMove, chess.Queen, 'h', '4', 'e', '1', true, chess.Empty},
		{"Bxc6+", chess.PieceMove, chess.Bishop, 0, 0, 'c', '6', true, chess.Empty},
		{"Kxf7#", chess.PieceMove, chess.King, 0, 0, 'f', '7', true, chess.Empty},
		{"Nf3!?", chess.PieceMove, chess.Knight, 0, 0, 'f', '3', false, chess.Empty},
		{"exd6e.p.", chess.PawnMove, chess.Pawn, 'e', 0, 'd', '6', true, chess.Empty},
		{"O-O", chess.KingsideCastle, chess.King, 0, 0, 0, 0, false, chess.Empty},
		{"O-O-O+", chess.QueensideCastle, chess.King, 0, 0, 0, 0, false, chess.Empty},
		{"0-0", chess.KingsideCastle, chess.King, 0, 0, 0, 0, false, chess.Empty},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			m, err := DecodeMove(tt.token)
			if err != nil {
				t.Fatalf("DecodeMove(%q) error = %v", tt.token, err)
			}
			if m.Class != tt.class {
				t.Errorf("Class = %v; want %v", m.Class, tt.class)
			}
			if m.PieceToMove != tt.piece {
				t.Errorf("PieceToMove = %v; want %v", m.PieceToMove, tt.piece)
			}
			if m.FromCol != tt.fromCol || m.FromRank != tt.fromRank {
				t.Errorf("from = %q%q; want %q%q", m.FromCol, m.FromRank, tt.fromCol, tt.fromRank)
			}
			if m.ToCol != tt.toCol || m.ToRank != tt.toRank {
				t.Errorf("to = %q%q; want %q%q", m.ToCol, m.ToRank, tt.toCol, tt.toRank)
			}
			if m.CaptureMarked != tt.capture {
				t.Errorf("CaptureMarked = %v; want %v", m.CaptureMarked, tt.capture)
			}
			if m.PromotedPiece != tt.promotion {
				t.Errorf("PromotedPiece = %v; want %v", m.PromotedPiece, tt.promotion)
			}
			if m.Text != tt.token {
				t.Errorf("Text = %q; want %q", m.Text, tt.token)
			}
		})
	}
}

func TestDecodeMove_Malformed(t *testing.T) {
	tokens := []string{
		"", "+", "Zf3", "Nf9", "Ni3", "e9", "e8=", "e8=K", "Nf3=Q", "O-O-O-O",
		"e2e4", "exe5", "Nabc3", "xe4", "nf3", "Ng1-f3", "1-0extra-long-token",
	}

	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			_, err := DecodeMove(tok)
			if err == nil {
				t.Fatalf("DecodeMove(%q) expected error", tok)
			}
			if !errors.Is(err, pgnerrors.ErrParseFailure) {
				t.Errorf("DecodeMove(%q) error = %v; want ErrParseFailure", tok, err)
			}
			var pe *pgnerrors.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("DecodeMove(%q) error is not a *ParseError", tok)
			}
		})
	}
}

func TestStripDecorations(t *testing.T) {
	tests := map[string]string{
		"e4":       "e4",
		"Nf3+":     "Nf3",
		"Qxf7#":    "Qxf7",
		"e4!!":     "e4",
		"Bb5?!":    "Bb5",
		"exd6e.p.": "exd6",
		"O-O+!":    "O-O",
	}
	for in, want := range tests {
		if got := StripDecorations(in); got != want {
			t.Errorf("StripDecorations(%q) = %q; want %q", in, got, want)
		}
	}
}
