package engine

import (
	"errors"
	"testing"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	pgnerrors "github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/testutil"
)

const initialKey = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

func TestNewBoardFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*chess.Board) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(b *chess.Board) bool {
				return b.Get('e', '1') == chess.W(chess.King) &&
					b.Get('e', '8') == chess.B(chess.King) &&
					b.Get('e', '2') == chess.W(chess.Pawn) &&
					b.Get('e', '7') == chess.B(chess.Pawn) &&
					b.ToMove == chess.White &&
					b.WKingCastle == 'h' &&
					b.WQueenCastle == 'a'
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.Get('e', '4') == chess.W(chess.Pawn) &&
					b.Get('e', '2') == chess.Empty &&
					b.ToMove == chess.Black &&
					b.EnPassant &&
					b.EPCol == 'e' &&
					b.EPRank == '3'
			},
		},
		{
			name: "counters optional",
			fen:  "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6",
			checkFn: func(b *chess.Board) bool {
				return b.Get('c', '5') == chess.B(chess.Pawn) &&
					b.MoveNumber == 1 &&
					b.HalfmoveClock == 0
			},
		},
		{
			name: "king squares tracked",
			fen:  "8/8/3k4/8/8/5K2/8/8 w - - 12 40",
			checkFn: func(b *chess.Board) bool {
				return b.WKingCol == 'f' && b.WKingRank == '3' &&
					b.BKingCol == 'd' && b.BKingRank == '6' &&
					b.HalfmoveClock == 12 && b.MoveNumber == 40
			},
		},
		{
			name: "unsupported castling rights dropped",
			fen:  "r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.WKingCastle == 0 && b.WQueenCastle == 'a' &&
					b.BKingCastle == 'h' && b.BQueenCastle == 'a'
			},
		},
		{
			name: "target without a pushed pawn ignored",
			fen:  "4k3/8/8/8/8/8/8/4K3 b - e3 0 1",
			checkFn: func(b *chess.Board) bool {
				return !b.EnPassant
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN(%q) error = %v", tt.fen, err)
			}
			if !tt.checkFn(board) {
				t.Errorf("board state check failed for %q", tt.fen)
			}
		})
	}
}

func TestNewBoardFromFEN_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":              "",
		"placement only":     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"seven ranks":        "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"short rank":         "rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"long rank":          "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"bad piece":          "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"no kings":           "8/8/8/8/8/8/8/8 w - - 0 1",
		"two white kings":    "4k3/8/8/8/8/8/8/3KK3 w - - 0 1",
		"pawn on back rank":  "P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"bad side":           "4k3/8/8/8/8/8/8/4K3 x - - 0 1",
		"bad castling":       "4k3/8/8/8/8/8/8/4K3 w KX - 0 1",
		"bad ep square":      "4k3/8/8/8/8/8/8/4K3 w - z9 0 1",
		"ep on wrong rank":   "4k3/8/8/8/4P3/8/8/4K3 w - e3 0 1",
		"bad clock":          "4k3/8/8/8/8/8/8/4K3 w - - x 1",
		"zero move number":   "4k3/8/8/8/8/8/8/4K3 w - - 0 0",
		"opponent in check":  "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1",
		"opponent in check2": "4k2R/8/8/8/8/8/8/4K3 w - - 0 1",
	}

	for name, fen := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewBoardFromFEN(fen)
			if !errors.Is(err, pgnerrors.ErrInvalidFEN) {
				t.Errorf("NewBoardFromFEN(%q) error = %v; want ErrInvalidFEN", fen, err)
			}
		})
	}
}

func TestBoardToFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}
	for _, fen := range fens {
		board, err := NewBoardFromFEN(fen)
		if err != nil {
			t.Fatalf("NewBoardFromFEN(%q) error = %v", fen, err)
		}
		testutil.AssertEqual(t, BoardToFEN(board), fen)
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"initial", InitialFEN, initialKey},
		{"counters stripped", "8/5k2/8/8/8/8/5K2/4R3 w - - 17 52", "8/5k2/8/8/8/8/5K2/4R3 w - -"},
		{
			"uncapturable ep target dropped",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq -",
		},
		{
			"capturable ep target kept",
			"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
			"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6",
		},
		{
			// The e5 pawn is pinned against the king on the fifth rank.
			"pinned capturer drops ep target",
			"8/8/8/K2pP2r/8/8/8/7k w - d6 0 1",
			"8/8/8/K2pP2r/8/8/8/7k w - -",
		},
		{"rights reordered", "r3k2r/8/8/8/8/8/8/R3K2R w qkQK - 0 1", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalKey(tt.fen)
			if err != nil {
				t.Fatalf("CanonicalKey(%q) error = %v", tt.fen, err)
			}
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestInitialPosition(t *testing.T) {
	testutil.AssertEqual(t, InitialPosition().Key(), initialKey)
	testutil.AssertEqual(t, BoardToFEN(NewInitialBoard()), InitialFEN)
}

func TestNewBoardForGame(t *testing.T) {
	game := chess.NewGame()
	board, err := NewBoardForGame(game)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, PositionOf(board).Key(), initialKey)

	game.SetTag("FEN", "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1")
	board, err = NewBoardForGame(game)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, board.Get('e', '1'), chess.W(chess.Rook))

	game.SetTag("FEN", "garbage")
	_, err = NewBoardForGame(game)
	testutil.AssertError(t, err)
}
