package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/opening-insight-go/internal/config"
	"github.com/lgbarn/opening-insight-go/internal/eco"
	"github.com/lgbarn/opening-insight-go/internal/output"
	"github.com/lgbarn/opening-insight-go/internal/pipeline"
	"github.com/lgbarn/opening-insight-go/internal/processing"
	"github.com/lgbarn/opening-insight-go/internal/storage"
	transporthttp "github.com/lgbarn/opening-insight-go/internal/transport/http"
)

// run executes one invocation: import the catalog, serve the API, or
// analyse a batch of games and write the report.
func run(ctx context.Context, cfg *config.Config, importOnly, useHistory bool, args []string, stdin io.Reader, log zerolog.Logger) error {
	var store *storage.Store
	if cfg.StorePath != "" {
		var err error
		if store, err = storage.Open(cfg.StorePath); err != nil {
			return err
		}
		defer store.Close()
	}

	if importOnly {
		return importCatalog(ctx, cfg, store, log)
	}

	db, err := loadCatalog(ctx, cfg, store, log)
	if err != nil {
		return err
	}

	if cfg.HTTPAddr != "" {
		return serve(ctx, cfg, db, log)
	}

	rep, err := runBatch(ctx, cfg, db, store, useHistory, args, stdin, log)
	if err != nil {
		return err
	}
	return output.NewWriter(cfg.OutputFile, &cfg.Output).WriteReport(rep)
}

func importCatalog(ctx context.Context, cfg *config.Config, store *storage.Store, log zerolog.Logger) error {
	if store == nil || cfg.OpeningsPath == "" {
		return errors.New("-import needs both a catalog (-e) and a store (-store)")
	}
	db, err := eco.LoadFile(cfg.OpeningsPath)
	if err != nil {
		return err
	}
	entries := make([]eco.OpeningEntry, 0, db.Len())
	for _, e := range db.Entries() {
		entries = append(entries, *e)
	}
	if err := store.SaveOpenings(ctx, entries); err != nil {
		return err
	}
	log.Info().Str("path", cfg.OpeningsPath).Str("store", store.Path()).Int("openings", len(entries)).Msg("catalog imported")
	return nil
}

// loadCatalog prefers the -e file and falls back to the store.
func loadCatalog(ctx context.Context, cfg *config.Config, store *storage.Store, log zerolog.Logger) (*eco.Database, error) {
	var (
		db     *eco.Database
		err    error
		source string
	)
	switch {
	case cfg.OpeningsPath != "":
		source = cfg.OpeningsPath
		db, err = eco.LoadFile(cfg.OpeningsPath)
	case store != nil:
		source = store.Path()
		db, err = store.LoadDatabase(ctx)
		if err == nil && db.Len() == 0 {
			err = fmt.Errorf("store %s has no openings; import a catalog with -e and -import", source)
		}
	default:
		err = errors.New("no opening catalog: use -e or -store")
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", source).Int("openings", db.Len()).Int("positions", db.Positions()).Msg("catalog loaded")
	return db, nil
}

func runBatch(ctx context.Context, cfg *config.Config, db *eco.Database, store *storage.Store,
	useHistory bool, args []string, stdin io.Reader, log zerolog.Logger) (*pipeline.Report, error) {
	if cfg.Player == "" {
		return nil, errors.New("a player name is required (-p)")
	}
	maxLine, err := cfg.MaxLineBytes()
	if err != nil {
		return nil, err
	}
	src := pipeline.GameSource{Player: cfg.Player, DefaultRating: cfg.Analysis.DefaultRating, MaxLine: maxLine}

	var (
		inputs   []processing.GameInput
		rejected []pipeline.Unprocessable
	)
	if len(args) == 0 {
		if inputs, rejected, err = src.Read(stdin); err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
	}
	for _, path := range args {
		in, rej, err := src.ReadFile(path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", path).Int("games", len(in)).Int("rejected", len(rej)).Msg("games read")
		inputs = append(inputs, in...)
		rejected = append(rejected, rej...)
	}

	var processed map[string]struct{}
	if store != nil {
		if processed, err = store.ProcessedGames(ctx); err != nil {
			return nil, err
		}
	}

	runner := pipeline.New(db, pipeline.OptionsFrom(cfg), log)
	rep, err := runner.Run(ctx, inputs, processed)
	if err != nil {
		return nil, err
	}
	rep.Reject(rejected...)

	if store == nil {
		return rep, nil
	}
	if err := store.SaveRun(ctx, rep); err != nil {
		return nil, err
	}
	if useHistory {
		all, err := store.Records(ctx)
		if err != nil {
			return nil, err
		}
		if rep.Aggregates, rep.Rankings, err = runner.Summarize(ctx, all); err != nil {
			return nil, err
		}
		log.Info().Int("records", len(all)).Msg("ranked over stored history")
	}
	return rep, nil
}

func serve(ctx context.Context, cfg *config.Config, db *eco.Database, log zerolog.Logger) error {
	runner := pipeline.New(db, pipeline.OptionsFrom(cfg), log)
	app := transporthttp.NewFiberApp(db, runner, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTPAddr)
	}()
	log.Info().Str("addr", cfg.HTTPAddr).Msg("serving HTTP API")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		return app.ShutdownWithTimeout(5 * time.Second)
	}
}
