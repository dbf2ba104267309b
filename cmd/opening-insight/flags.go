// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/opening-insight-go/internal/config"
)

var (
	configFile = flag.String("config", "", "YAML configuration file")

	// Inputs
	openingsFile = flag.String("e", "", "Opening catalog (CSV, TSV or PGN; .zst and .bz2 accepted)")
	storeFile    = flag.String("store", "", "SQLite store for the catalog, processed games and runs")
	importOnly   = flag.Bool("import", false, "Save the -e catalog into the store and exit")
	maxLine      = flag.String("maxline", "", "Longest PGN line accepted (e.g. 1MB)")

	// Analysis
	player        = flag.String("p", "", "Player name matched against the White and Black tags")
	defaultRating = flag.Float64("rating", 1500, "Player rating when the game has no Elo tag")
	workers       = flag.Int("workers", 0, "Number of analysis workers (default: NumCPU)")
	shards        = flag.Int("shards", 0, "Number of aggregation shards")
	minStudy      = flag.Int("minstudy", 5, "Minimum games for the study list")
	minKeep       = flag.Int("minkeep", 3, "Minimum games for the keep list")
	minSignif     = flag.Int("minsig", 5, "Minimum games for a significance verdict")
	confidence    = flag.Float64("confidence", 0.95, "Two-sided confidence level")
	history       = flag.Bool("history", false, "Rank over every stored run, not only this one")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output the report in JSON format")
	top        = flag.Int("top", 10, "Openings per ranked list in text output (0 = all)")
	records    = flag.Bool("records", false, "Include per-game records in the report")

	// Server
	serveAddr = flag.String("serve", "", "Serve the HTTP API on this address instead of running a batch")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	logJSON   = flag.Bool("logjson", false, "Write diagnostics as JSON lines")
	verbosity = flag.Int("v", 1, "Verbosity: 0 warnings, 1 batch summary, 2 per game")
	quiet     = flag.Bool("s", false, "Silent mode (warnings only)")
	help      = flag.Bool("h", false, "Show help")
	version   = flag.Bool("version", false, "Show version")
)

// applyFlags copies explicitly set flags over cfg, so a configuration file
// supplies the defaults and the command line wins.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e":
			cfg.OpeningsPath = *openingsFile
		case "store":
			cfg.StorePath = *storeFile
		case "maxline":
			cfg.Input.MaxLineSize = *maxLine
		case "p":
			cfg.Player = *player
		case "rating":
			cfg.Analysis.DefaultRating = *defaultRating
		case "workers":
			cfg.Worker.Workers = *workers
		case "shards":
			cfg.Worker.Shards = *shards
		case "minstudy":
			cfg.Analysis.MinStudyGames = *minStudy
		case "minkeep":
			cfg.Analysis.MinKeepGames = *minKeep
		case "minsig":
			cfg.Analysis.MinSignificanceGames = *minSignif
		case "confidence":
			cfg.Analysis.Confidence = *confidence
		case "J":
			if *jsonOutput {
				cfg.Output.Format = config.FormatJSON
			}
		case "top":
			cfg.Output.Top = *top
		case "records":
			cfg.Output.Records = *records
		case "serve":
			cfg.HTTPAddr = *serveAddr
		case "logjson":
			if *logJSON {
				cfg.LogFormat = "json"
			}
		case "v":
			cfg.Verbosity = *verbosity
		}
	})

	if *quiet {
		cfg.Verbosity = 0
	}
}
