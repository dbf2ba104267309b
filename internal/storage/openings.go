package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lgbarn/opening-insight-go/internal/eco"
)

// SaveOpenings inserts or replaces catalog entries.
func (s *Store) SaveOpenings(ctx context.Context, entries []eco.OpeningEntry) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO openings (
			opening_id, name, family, system, variation, eco, fen, mainline,
			white_win, draw, black_win, sample_size, tier, eval, acceptance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx,
				e.ID, e.Name, e.Family, e.System, e.Variation, e.ECO, e.FEN,
				strings.Join(e.Mainline, " "),
				e.Stats.WhiteWin, e.Stats.Draw, e.Stats.BlackWin, e.Stats.SampleSize,
				string(e.Stats.Tier), e.Eval, string(e.Acceptance),
			); err != nil {
				return fmt.Errorf("opening %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// LoadOpenings returns every stored entry, ordered by id. The entries are
// raw; eco.NewDatabase validates and indexes them.
func (s *Store) LoadOpenings(ctx context.Context) ([]eco.OpeningEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		opening_id, name, family, system, variation, eco, fen, mainline,
		white_win, draw, black_win, sample_size, tier, eval, acceptance
		FROM openings ORDER BY opening_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query openings: %w", err)
	}
	defer rows.Close()

	var entries []eco.OpeningEntry
	for rows.Next() {
		var (
			e                      eco.OpeningEntry
			mainline, tier, accept string
			eval                   sql.NullFloat64
		)
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Family, &e.System, &e.Variation, &e.ECO, &e.FEN, &mainline,
			&e.Stats.WhiteWin, &e.Stats.Draw, &e.Stats.BlackWin, &e.Stats.SampleSize,
			&tier, &eval, &accept,
		); err != nil {
			return nil, fmt.Errorf("failed to scan opening: %w", err)
		}
		e.Mainline = strings.Fields(mainline)
		e.Stats.Tier = eco.Tier(tier)
		e.Acceptance = eco.Acceptance(accept)
		if eval.Valid {
			v := eval.Float64
			e.Eval = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LoadDatabase builds a catalog from the stored openings.
func (s *Store) LoadDatabase(ctx context.Context) (*eco.Database, error) {
	entries, err := s.LoadOpenings(ctx)
	if err != nil {
		return nil, err
	}
	return eco.NewDatabase(entries)
}
