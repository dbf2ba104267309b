// Package engine replays SAN move lists on a board and produces canonical positions.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.Empty
	}
}

// ColouredPieceToFENLetter returns the FEN letter for a coloured piece.
func ColouredPieceToFENLetter(colouredPiece chess.Piece) byte {
	letter := chess.ExtractPiece(colouredPiece).Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewBoardFromFEN creates a board from a FEN string. The placement and side to
// move are required; castling, en passant and the clocks default when absent.
// Castling rights not backed by a king and rook on their home squares are dropped.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%q: need at least placement and side to move: %w", fen, errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(board, parts); err != nil {
		return nil, err
	}
	if IsInCheck(board, board.ToMove.Opposite()) {
		return nil, fmt.Errorf("%q: side not to move is in check: %w", fen, errors.ErrInvalidFEN)
	}

	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("placement %q: want 8 ranks, got %d: %w", positions, len(ranks), errors.ErrInvalidFEN)
	}

	kings := map[chess.Colour]int{}
	for i, row := range ranks {
		rank := chess.Rank(chess.LastRank - i)
		col := chess.Col(chess.FirstCol)
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				col += chess.Col(c - '0')
			default:
				piece := ConvertFENCharToPiece(byte(c))
				if piece == chess.Empty {
					return fmt.Errorf("invalid piece character %q: %w", c, errors.ErrInvalidFEN)
				}
				if col > chess.LastCol {
					return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				if piece == chess.Pawn && (rank == chess.FirstRank || rank == chess.LastRank) {
					return fmt.Errorf("pawn on back rank %c%c: %w", col, rank, errors.ErrInvalidFEN)
				}
				board.Set(col, rank, chess.MakeColouredPiece(colour, piece))
				if piece == chess.King {
					kings[colour]++
					board.SetKingSquare(colour, col, rank)
				}
				col++
			}
		}
		if col != chess.LastCol+1 {
			return fmt.Errorf("rank %c has %d squares: %w", rank, col-chess.FirstCol, errors.ErrInvalidFEN)
		}
	}

	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("want one king per side, got %d white and %d black: %w",
			kings[chess.White], kings[chess.Black], errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, side string) error {
	switch side {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move %q: %w", side, errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, parts []string) error {
	board.ClearCastling(chess.White)
	board.ClearCastling(chess.Black)

	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			board.WKingCastle = 'h'
		case 'Q':
			board.WQueenCastle = 'a'
		case 'k':
			board.BKingCastle = 'h'
		case 'q':
			board.BQueenCastle = 'a'
		default:
			return fmt.Errorf("invalid castling field %q: %w", parts[2], errors.ErrInvalidFEN)
		}
	}

	cleanCastlingRights(board)
	return nil
}

// cleanCastlingRights drops rights whose king or rook is not on its home square.
func cleanCastlingRights(board *chess.Board) {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		home := chess.HomeRank(colour)
		if board.Get('e', home) != chess.MakeColouredPiece(colour, chess.King) {
			board.ClearCastling(colour)
			continue
		}
		rook := chess.MakeColouredPiece(colour, chess.Rook)
		if board.Get('h', home) != rook {
			removeCastleRight(board, colour, true)
		}
		if board.Get('a', home) != rook {
			removeCastleRight(board, colour, false)
		}
	}
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, parts []string) error {
	board.EnPassant = false
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq := parts[3]
	if len(sq) != 2 || !chess.OnBoard(chess.Col(sq[0]), chess.Rank(sq[1])) {
		return fmt.Errorf("invalid en passant square %q: %w", sq, errors.ErrInvalidFEN)
	}
	want := chess.Rank('6')
	if board.ToMove == chess.Black {
		want = '3'
	}
	if chess.Rank(sq[1]) != want {
		return fmt.Errorf("en passant square %s impossible with %s to move: %w", sq, board.ToMove, errors.ErrInvalidFEN)
	}
	// A target without the double-stepped pawn in front of it is ignored.
	pushed := chess.MakeColouredPiece(board.ToMove.Opposite(), chess.Pawn)
	if board.Get(chess.Col(sq[0]), chess.Rank(int(sq[1])-chess.ColourOffset(board.ToMove))) != pushed {
		return nil
	}
	board.EnPassant = true
	board.EPCol = chess.Col(sq[0])
	board.EPRank = chess.Rank(sq[1])
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.ParseUint(parts[4], 10, 32)
		if err != nil {
			return fmt.Errorf("halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
		board.HalfmoveClock = uint(n)
	}
	if len(parts) >= 6 {
		n, err := strconv.ParseUint(parts[5], 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("fullmove number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// BoardToFEN converts a board to a full FEN string. The en passant field is
// written only when the capture is actually available, as in PositionOf.
func BoardToFEN(board *chess.Board) string {
	return PositionOf(board).Key() + fmt.Sprintf(" %d %d", board.HalfmoveClock, board.MoveNumber)
}

// PositionOf returns the canonical identity of the board's current state.
func PositionOf(board *chess.Board) chess.Position {
	return chess.Position{
		Placement: placementField(board),
		ToMove:    board.ToMove,
		Castling:  castlingField(board),
		EnPassant: enPassantField(board),
	}
}

// placementField writes the piece placement in FEN order.
func placementField(board *chess.Board) string {
	var sb strings.Builder
	for rank := chess.Rank(chess.LastRank); rank >= chess.FirstRank; rank-- {
		emptyCount := 0
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			piece := board.Get(col, rank)
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ColouredPieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.FirstRank {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// castlingField returns the castling availability in KQkq order.
func castlingField(board *chess.Board) string {
	var sb strings.Builder
	if board.WKingCastle != 0 {
		sb.WriteByte('K')
	}
	if board.WQueenCastle != 0 {
		sb.WriteByte('Q')
	}
	if board.BKingCastle != 0 {
		sb.WriteByte('k')
	}
	if board.BQueenCastle != 0 {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// enPassantField returns the en passant target only when a pawn of the side to
// move can legally capture onto it.
func enPassantField(board *chess.Board) string {
	if !board.EnPassant {
		return "-"
	}
	colour := board.ToMove
	pawn := chess.MakeColouredPiece(colour, chess.Pawn)
	fromRank := chess.Rank(int(board.EPRank) - chess.ColourOffset(colour))
	for _, dc := range []int{-1, 1} {
		fromCol := chess.Col(int(board.EPCol) + dc)
		if board.Get(fromCol, fromRank) != pawn {
			continue
		}
		mv := &chess.Move{
			Class:       chess.EnPassantPawnMove,
			PieceToMove: chess.Pawn,
			FromCol:     fromCol,
			FromRank:    fromRank,
			ToCol:       board.EPCol,
			ToRank:      board.EPRank,
		}
		if leavesKingSafe(board, mv) {
			return chess.SquareName(board.EPCol, board.EPRank)
		}
	}
	return "-"
}

// CanonicalKey parses any FEN (with or without counters) and returns the
// canonical position key for it.
func CanonicalKey(fen string) (string, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return "", err
	}
	return PositionOf(board).Key(), nil
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}

// InitialPosition returns the canonical standard starting position.
func InitialPosition() chess.Position {
	return PositionOf(NewInitialBoard())
}

// NewBoardForGame creates a board for a game, using its FEN tag if present.
func NewBoardForGame(game *chess.Game) (*chess.Board, error) {
	if fen := game.FEN(); fen != "" {
		return NewBoardFromFEN(fen)
	}
	return NewInitialBoard(), nil
}
