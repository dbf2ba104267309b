// Package pipeline runs a batch of games through analysis, aggregation and
// ranking.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/opening-insight-go/internal/aggregate"
	"github.com/lgbarn/opening-insight-go/internal/config"
	"github.com/lgbarn/opening-insight-go/internal/eco"
	pgnerrors "github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/processing"
	"github.com/lgbarn/opening-insight-go/internal/stats"
	"github.com/lgbarn/opening-insight-go/internal/worker"
)

// Options control a run.
type Options struct {
	Workers       int
	BufferSize    int
	Shards        int
	MinStudyGames int
	MinKeepGames  int
	Thresholds    stats.Thresholds
}

// OptionsFrom takes the run options from cfg.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Workers:       cfg.Worker.Workers,
		BufferSize:    cfg.Worker.BufferSize,
		Shards:        cfg.Worker.Shards,
		MinStudyGames: cfg.Analysis.MinStudyGames,
		MinKeepGames:  cfg.Analysis.MinKeepGames,
		Thresholds:    cfg.Thresholds(),
	}
}

// Unprocessable is a game that could not be analysed. Permanent marks
// failures in the game itself (unparseable or illegal moves, a bad start
// position) that no rerun can fix.
type Unprocessable struct {
	GameID    string `json:"game_id"`
	Error     string `json:"error"`
	Permanent bool   `json:"permanent"`
}

// NewUnprocessable records why the game id failed.
func NewUnprocessable(id string, err error) Unprocessable {
	permanent := errors.Is(err, pgnerrors.ErrIllegalMove) ||
		errors.Is(err, pgnerrors.ErrParseFailure) ||
		errors.Is(err, pgnerrors.ErrInvalidFEN)
	return Unprocessable{GameID: id, Error: err.Error(), Permanent: permanent}
}

// Report is the outcome of one run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Games counts every input, including skipped and duplicate ones.
	Games      int `json:"games"`
	Analyzed   int `json:"analyzed"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`

	Records       []processing.PerformanceRecord `json:"records,omitempty"`
	Unprocessable []Unprocessable                `json:"unprocessable"`
	Aggregates    []aggregate.OpeningAggregate   `json:"aggregates"`
	aggregate.Rankings
}

// Runner analyses batches against one catalog.
type Runner struct {
	db   *eco.Database
	opts Options
	log  zerolog.Logger
}

// New creates a Runner.
func New(db *eco.Database, opts Options, log zerolog.Logger) *Runner {
	return &Runner{db: db, opts: opts, log: log}
}

// Run analyses inputs. Games whose id is in processed are skipped, and a
// repeated id is analysed only once. A game that fails analysis is listed as
// unprocessable and does not stop the run; only cancellation of ctx does.
func (r *Runner) Run(ctx context.Context, inputs []processing.GameInput, processed map[string]struct{}) (*Report, error) {
	rep := &Report{
		RunID:         uuid.NewString(),
		StartedAt:     time.Now().UTC(),
		Games:         len(inputs),
		Unprocessable: []Unprocessable{},
	}
	log := r.log.With().Str("run_id", rep.RunID).Logger()
	log.Info().Int("games", len(inputs)).Int("catalog", r.db.Len()).Msg("batch started")

	queue := make([]processing.GameInput, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, ok := processed[in.ID]; ok && in.ID != "" {
			rep.Skipped++
			continue
		}
		if _, ok := seen[in.ID]; ok && in.ID != "" {
			rep.Duplicates++
			continue
		}
		seen[in.ID] = struct{}{}
		queue = append(queue, in)
	}

	results, err := r.analyze(ctx, queue)
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		if res.Error != nil {
			log.Warn().Str("game", res.GameID).Err(res.Error).Msg("unprocessable game")
			rep.Unprocessable = append(rep.Unprocessable, NewUnprocessable(res.GameID, res.Error))
			continue
		}
		rec := res.Analysis.Record
		log.Debug().
			Str("game", rec.GameID).
			Str("opening", rec.OpeningID).
			Int("depth", rec.TheoryDepth).
			Bool("transposition", rec.Transposition).
			Msg("game analysed")
		if rec.RatingError != "" {
			log.Debug().Str("game", rec.GameID).Str("reason", rec.RatingError).Msg("no rating metrics")
		}
		rep.Records = append(rep.Records, rec)
	}
	rep.Analyzed = len(rep.Records)

	rep.Aggregates, rep.Rankings, err = r.Summarize(ctx, rep.Records)
	if err != nil {
		return nil, err
	}
	rep.FinishedAt = time.Now().UTC()

	log.Info().
		Int("games", rep.Games).
		Int("analyzed", rep.Analyzed).
		Int("unprocessable", len(rep.Unprocessable)).
		Int("duplicates", rep.Duplicates).
		Int("skipped", rep.Skipped).
		Int("openings", len(rep.Aggregates)).
		Dur("elapsed", rep.FinishedAt.Sub(rep.StartedAt)).
		Msg("batch finished")
	return rep, nil
}

// Summarize aggregates records per opening and ranks the result.
func (r *Runner) Summarize(ctx context.Context, records []processing.PerformanceRecord) ([]aggregate.OpeningAggregate, aggregate.Rankings, error) {
	set, err := aggregate.BuildParallel(ctx, records, r.opts.Shards)
	if err != nil {
		return nil, aggregate.Rankings{}, err
	}
	aggs := set.Finalize(r.opts.Thresholds)
	return aggs, aggregate.Rank(aggs, r.opts.MinStudyGames, r.opts.MinKeepGames), nil
}

// Reject adds games that never reached analysis, such as PGN games the
// player is not part of.
func (rep *Report) Reject(games ...Unprocessable) {
	rep.Games += len(games)
	rep.Unprocessable = append(rep.Unprocessable, games...)
}

// analyze fans the queue out over the worker pool. Results come back in
// queue order.
func (r *Runner) analyze(ctx context.Context, queue []processing.GameInput) ([]worker.ProcessResult, error) {
	if len(queue) == 0 {
		return nil, ctx.Err()
	}

	pool := worker.NewPool(worker.Analyzer(r.db),
		worker.WithWorkers(r.opts.Workers),
		worker.WithBufferSize(min(r.opts.BufferSize, len(queue))))
	return pool.AnalyzeAll(ctx, queue)
}
