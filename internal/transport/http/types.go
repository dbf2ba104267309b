package http

import (
	"math"

	"github.com/lgbarn/opening-insight-go/internal/chess"
	"github.com/lgbarn/opening-insight-go/internal/eco"
	"github.com/lgbarn/opening-insight-go/internal/processing"
	"github.com/lgbarn/opening-insight-go/internal/stats"
)

// Error codes returned in ErrorResponse.Code.
const (
	ErrInvalidRequest = "INVALID_REQUEST"
	ErrInvalidContent = "INVALID_CONTENT_TYPE"
	ErrParseFailure   = "PARSE_FAILURE"
	ErrIllegalMove    = "ILLEGAL_MOVE"
	ErrInvalidFEN     = "INVALID_FEN"
	ErrNotFound       = "NOT_FOUND"
	ErrInternalError  = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
	Ply     int    `json:"ply,omitempty"`
}

// MovesRequest carries a move list or raw movetext, optionally from a set-up
// position.
type MovesRequest struct {
	Moves    []string `json:"moves" validate:"required_without=MoveText"`
	MoveText string   `json:"move_text" validate:"required_without=Moves"`
	StartFEN string   `json:"start_fen"`
}

func (r *MovesRequest) input() processing.GameInput {
	return processing.GameInput{Moves: r.Moves, MoveText: r.MoveText, StartFEN: r.StartFEN}
}

// PositionsResponse lists the canonical key after every ply, initial
// position first.
type PositionsResponse struct {
	Positions []string `json:"positions"`
	Moves     []string `json:"moves"`
	Plies     int      `json:"plies"`
}

// MatchResponse is the deepest catalog position reached.
type MatchResponse struct {
	Matched       bool              `json:"matched"`
	Depth         int               `json:"depth"`
	Transposition bool              `json:"transposition"`
	Opening       *eco.OpeningEntry `json:"opening,omitempty"`
}

// AnalyzeRequest describes one game from the player's side. The player
// rating is mandatory; an absent opponent rating yields no rating metrics.
type AnalyzeRequest struct {
	ID             string   `json:"id" validate:"required,max=256"`
	Moves          []string `json:"moves" validate:"required_without=MoveText"`
	MoveText       string   `json:"move_text" validate:"required_without=Moves"`
	StartFEN       string   `json:"start_fen"`
	Colour         string   `json:"colour" validate:"required,oneof=white black w b"`
	Outcome        string   `json:"outcome" validate:"required,oneof=win draw loss"`
	PlayerRating   *float64 `json:"player_rating" validate:"required,gte=0"`
	OpponentRating *float64 `json:"opponent_rating" validate:"omitempty,gte=0"`
}

func (r *AnalyzeRequest) input() (processing.GameInput, error) {
	in := processing.GameInput{
		ID:             r.ID,
		Moves:          r.Moves,
		MoveText:       r.MoveText,
		StartFEN:       r.StartFEN,
		PlayerRating:   ratingOrNaN(r.PlayerRating),
		OpponentRating: ratingOrNaN(r.OpponentRating),
	}
	var c chess.Colour
	if err := c.UnmarshalText([]byte(r.Colour)); err != nil {
		return in, err
	}
	var o stats.Outcome
	if err := o.UnmarshalText([]byte(r.Outcome)); err != nil {
		return in, err
	}
	in.Colour, in.Outcome = c, o
	return in, nil
}

func ratingOrNaN(r *float64) float64 {
	if r == nil {
		return math.NaN()
	}
	return *r
}

// AnalyzeResponse is the performance record of one game plus the matched
// entry.
type AnalyzeResponse struct {
	Record  processing.PerformanceRecord `json:"record"`
	Opening *eco.OpeningEntry            `json:"opening,omitempty"`
}

// ReportRequest is a batch of games for a full run.
type ReportRequest struct {
	Games []AnalyzeRequest `json:"games" validate:"required,min=1,max=10000,dive"`
}
