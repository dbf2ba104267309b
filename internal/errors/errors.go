// Package errors provides sentinel errors and error types for opening analysis.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string or position key.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that cannot be resolved to exactly one legal move.
	ErrIllegalMove = errors.New("illegal move")

	// ErrParseFailure indicates a move token or input record that cannot be tokenized.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRating indicates a non-finite or negative rating.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrDuplicateOpening indicates two catalog entries share an identifier.
	ErrDuplicateOpening = errors.New("duplicate opening identifier")

	// ErrMissingTag indicates a required PGN tag is missing.
	ErrMissingTag = errors.New("missing required tag")
)

// ParseError reports a move token that cannot be tokenized as SAN.
type ParseError struct {
	Token  string // The offending token
	Ply    int    // 1-based ply of the token (0 if not known)
	Reason string // Short description of what is wrong
}

// Error returns a formatted error message with the token and ply.
func (e *ParseError) Error() string {
	var parts []string
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("token %q", e.Token))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if len(parts) == 0 {
		return ErrParseFailure.Error()
	}
	return fmt.Sprintf("%v: %s", ErrParseFailure, strings.Join(parts, ": "))
}

// Unwrap returns ErrParseFailure so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

// IllegalMoveError reports a well-formed move that does not resolve to exactly
// one legal origin square in the current position.
type IllegalMoveError struct {
	Token      string // The move as written
	Ply        int    // 1-based ply of the move
	Candidates int    // Number of legal candidates found (0 or more than 1)
	Reason     string // Optional detail (e.g. "castling through check")
}

// Error returns a formatted error message.
func (e *IllegalMoveError) Error() string {
	var detail string
	switch {
	case e.Reason != "":
		detail = e.Reason
	case e.Candidates == 0:
		detail = "no legal origin square"
	default:
		detail = fmt.Sprintf("ambiguous: %d legal origin squares", e.Candidates)
	}
	if e.Ply > 0 {
		return fmt.Sprintf("%v: ply %d: %q: %s", ErrIllegalMove, e.Ply, e.Token, detail)
	}
	return fmt.Sprintf("%v: %q: %s", ErrIllegalMove, e.Token, detail)
}

// Unwrap returns ErrIllegalMove so callers can use errors.Is.
func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// Ambiguous reports whether more than one candidate matched.
func (e *IllegalMoveError) Ambiguous() bool {
	return e.Candidates > 1
}

// GameError wraps errors with game context: the game identifier, ply position
// and move information. It supports unwrapping via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	GameID   string // Game identifier
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.GameID != "" {
		parts = append(parts, fmt.Sprintf("game %s", e.GameID))
	} else {
		parts = append(parts, "game")
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError wraps err with the game id, lifting ply and move text from a
// ParseError or IllegalMoveError when present.
func NewGameError(gameID string, err error) *GameError {
	ge := &GameError{Err: err, GameID: gameID}
	var pe *ParseError
	var ie *IllegalMoveError
	switch {
	case errors.As(err, &pe):
		ge.PlyNum, ge.MoveText = pe.Ply, pe.Token
	case errors.As(err, &ie):
		ge.PlyNum, ge.MoveText = ie.Ply, ie.Token
	}
	return ge
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
