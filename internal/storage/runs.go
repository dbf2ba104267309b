package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lgbarn/opening-insight-go/internal/pipeline"
	"github.com/lgbarn/opening-insight-go/internal/processing"
)

// Processed game states.
const (
	StatusAnalyzed      = "analyzed"
	StatusUnprocessable = "unprocessable"
)

// ProcessedGames returns the ids of every game a previous run handled,
// analysed or not.
func (s *Store) ProcessedGames(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT game_id FROM processed_games`)
	if err != nil {
		return nil, fmt.Errorf("failed to query processed games: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan processed game: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// SaveRun stores a finished report: the run row, one row per record, and
// the processed-game watermark for every analysed game and every game whose
// moves or start position are broken. It is all or nothing.
func (s *Store) SaveRun(ctx context.Context, rep *pipeline.Report) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO runs (
			run_id, started_at, finished_at, games, analyzed, skipped, duplicates, unprocessable
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rep.RunID, rep.StartedAt, rep.FinishedAt,
			rep.Games, rep.Analyzed, rep.Skipped, rep.Duplicates, len(rep.Unprocessable),
		); err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		recStmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO game_records (
			game_id, run_id, colour, outcome, player_rating, opponent_rating,
			opening_id, opening_name, theory_depth, transposition, plies,
			expected_score, performance_rating, baseline_win, rating_error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer recStmt.Close()

		markStmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO processed_games (
			game_id, run_id, status, error
		) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer markStmt.Close()

		for _, r := range rep.Records {
			colour, _ := r.Colour.MarshalText()
			if _, err := recStmt.ExecContext(ctx,
				r.GameID, rep.RunID, string(colour), r.Outcome.String(), r.PlayerRating, r.OpponentRating,
				r.OpeningID, r.OpeningName, r.TheoryDepth, r.Transposition, r.Plies,
				r.ExpectedScore, r.PerformanceRating, r.BaselineWin, r.RatingError,
			); err != nil {
				return fmt.Errorf("game %s: %w", r.GameID, err)
			}
			if _, err := markStmt.ExecContext(ctx, r.GameID, rep.RunID, StatusAnalyzed, ""); err != nil {
				return fmt.Errorf("game %s: %w", r.GameID, err)
			}
		}
		for _, u := range rep.Unprocessable {
			// Games rejected for reasons a rerun may fix stay eligible.
			if u.GameID == "" || !u.Permanent {
				continue
			}
			if _, err := markStmt.ExecContext(ctx, u.GameID, rep.RunID, StatusUnprocessable, u.Error); err != nil {
				return fmt.Errorf("game %s: %w", u.GameID, err)
			}
		}
		return nil
	})
}

// Records returns every stored performance record, oldest run first, so
// rankings can be rebuilt over the whole history.
func (s *Store) Records(ctx context.Context) ([]processing.PerformanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		g.game_id, g.colour, g.outcome, g.player_rating, g.opponent_rating,
		g.opening_id, g.opening_name, g.theory_depth, g.transposition, g.plies,
		g.expected_score, g.performance_rating, g.baseline_win, g.rating_error
		FROM game_records g JOIN runs r ON r.run_id = g.run_id
		ORDER BY r.started_at, g.rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query game records: %w", err)
	}
	defer rows.Close()

	var records []processing.PerformanceRecord
	for rows.Next() {
		var (
			r                        processing.PerformanceRecord
			colour, outcome          string
			player, opponent         sql.NullFloat64
			expected, perf, baseline sql.NullFloat64
		)
		if err := rows.Scan(
			&r.GameID, &colour, &outcome, &player, &opponent,
			&r.OpeningID, &r.OpeningName, &r.TheoryDepth, &r.Transposition, &r.Plies,
			&expected, &perf, &baseline, &r.RatingError,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game record: %w", err)
		}
		if err := r.Colour.UnmarshalText([]byte(colour)); err != nil {
			return nil, fmt.Errorf("game %s: %w", r.GameID, err)
		}
		if err := r.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			return nil, fmt.Errorf("game %s: %w", r.GameID, err)
		}
		r.PlayerRating = nullable(player)
		r.OpponentRating = nullable(opponent)
		r.ExpectedScore = nullable(expected)
		r.PerformanceRating = nullable(perf)
		r.BaselineWin = nullable(baseline)
		records = append(records, r)
	}
	return records, rows.Err()
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
