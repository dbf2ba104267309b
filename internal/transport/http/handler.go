// Package http serves the position, match and analysis operations over a
// fiber HTTP API.
package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/lgbarn/opening-insight-go/internal/eco"
	pgnerrors "github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/pipeline"
	"github.com/lgbarn/opening-insight-go/internal/processing"
)

// HTTPHandler handles HTTP requests against one opening catalog.
type HTTPHandler struct {
	db     *eco.Database
	runner *pipeline.Runner
	log    zerolog.Logger
}

// NewHTTPHandler creates a handler. runner serves /report.
func NewHTTPHandler(db *eco.Database, runner *pipeline.Runner, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{db: db, runner: runner, log: log}
}

// NewFiberApp builds the application with all routes registered.
func NewFiberApp(db *eco.Database, runner *pipeline.Runner, log zerolog.Logger) *fiber.App {
	h := NewHTTPHandler(db, runner, log)

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          35 * time.Second,
		IdleTimeout:           60 * time.Second,
		BodyLimit:             8 << 20,
		DisableStartupMessage: true,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(h.requestLogger)

	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/positions", h.Positions)
	api.Post("/match", h.Match)
	api.Post("/analyze", h.Analyze)
	api.Post("/report", h.Report)
	api.Get("/openings", h.ListOpenings)
	api.Get("/openings/:id", h.GetOpening)

	return app
}

// requestLogger logs one line per request at debug level.
func (h *HTTPHandler) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("request")
	return err
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := ErrorResponse{
		Error: "internal server error",
		Code:  ErrInternalError,
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message
		switch code {
		case fiber.StatusNotFound:
			response.Code = ErrNotFound
		case fiber.StatusBadRequest:
			response.Code = ErrInvalidRequest
		}
	}

	return c.Status(code).JSON(response)
}

// moveError reports a failure to replay a move list.
func moveError(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{Error: err.Error()}
	switch {
	case errors.Is(err, pgnerrors.ErrInvalidFEN):
		resp.Code = ErrInvalidFEN
	case errors.Is(err, pgnerrors.ErrIllegalMove):
		resp.Code = ErrIllegalMove
	case errors.Is(err, pgnerrors.ErrParseFailure), errors.Is(err, pgnerrors.ErrMissingTag):
		resp.Code = ErrParseFailure
	default:
		return err
	}

	var pe *pgnerrors.ParseError
	var ie *pgnerrors.IllegalMoveError
	switch {
	case errors.As(err, &ie):
		resp.Ply = ie.Ply
	case errors.As(err, &pe):
		resp.Ply = pe.Ply
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
}

// Health reports liveness and the catalog size.
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Unix(),
		"openings": h.db.Len(),
	})
}

// Positions returns the canonical key after every ply.
func (h *HTTPHandler) Positions(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*MovesRequest)
	if !ok {
		return fiber.ErrInternalServerError
	}
	seq, err := processing.Replay(req.input())
	if err != nil {
		return moveError(c, err)
	}
	return c.JSON(PositionsResponse{
		Positions: seq.Keys(),
		Moves:     seq.SAN(),
		Plies:     seq.Plies(),
	})
}

// Match returns the deepest catalog position the moves reach.
func (h *HTTPHandler) Match(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*MovesRequest)
	if !ok {
		return fiber.ErrInternalServerError
	}
	seq, err := processing.Replay(req.input())
	if err != nil {
		return moveError(c, err)
	}
	m := eco.Match(seq, h.db)
	return c.JSON(MatchResponse{
		Matched:       m.Matched(),
		Depth:         m.Depth,
		Transposition: m.Transposition,
		Opening:       m.Entry,
	})
}

// Analyze returns the performance record of one game.
func (h *HTTPHandler) Analyze(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*AnalyzeRequest)
	if !ok {
		return fiber.ErrInternalServerError
	}
	in, err := req.input()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	analysis, err := processing.AnalyzeGame(in, h.db)
	if err != nil {
		return moveError(c, err)
	}
	return c.JSON(AnalyzeResponse{Record: analysis.Record, Opening: analysis.Match.Entry})
}

// Report runs a batch of games and returns the full report. Games that fail
// are listed as unprocessable rather than failing the request.
func (h *HTTPHandler) Report(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*ReportRequest)
	if !ok {
		return fiber.ErrInternalServerError
	}
	inputs := make([]processing.GameInput, 0, len(req.Games))
	for i := range req.Games {
		in, err := req.Games[i].input()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		inputs = append(inputs, in)
	}
	rep, err := h.runner.Run(c.UserContext(), inputs, nil)
	if err != nil {
		return err
	}
	return c.JSON(rep)
}

// ListOpenings lists catalog entries, optionally filtered by family and
// ECO prefix.
func (h *HTTPHandler) ListOpenings(c *fiber.Ctx) error {
	family := eco.FamilyKey(c.Query("family"))
	ecoPrefix := strings.ToUpper(c.Query("eco"))
	limit := c.QueryInt("limit", 100)
	if limit < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
	}

	out := []*eco.OpeningEntry{}
	for _, e := range h.db.Entries() {
		if family != "" && e.Family != family {
			continue
		}
		if ecoPrefix != "" && !strings.HasPrefix(e.ECO, ecoPrefix) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return c.JSON(out)
}

// GetOpening returns one catalog entry by id.
func (h *HTTPHandler) GetOpening(c *fiber.Ctx) error {
	e, ok := h.db.Entry(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "opening not found",
			Code:  ErrNotFound,
		})
	}
	return c.JSON(e)
}
