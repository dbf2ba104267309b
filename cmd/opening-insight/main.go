// Command opening-insight matches a player's games against an opening
// catalog and reports which openings to study and which to keep.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/opening-insight-go/internal/config"
	"github.com/lgbarn/opening-insight-go/internal/logging"
)

const programVersion = "0.3.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("opening-insight version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)
	log := logging.New(cfg.LogFile, cfg.Verbosity, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *importOnly, *history, flag.Args(), os.Stdin, log)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("opening-insight failed")
		os.Exit(1)
	}
}

// loadConfig reads the -config file if given, applies the command-line
// flags on top and validates the result.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFile(*configFile); err != nil {
			return nil, err
		}
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: opening-insight [options] [game-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Matches a player's PGN games against an opening catalog and ranks the\n")
	fmt.Fprintf(os.Stderr, "openings by score. Games are read from stdin when no file is given.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  opening-insight -e openings.csv -p Hero games.pgn\n")
	fmt.Fprintf(os.Stderr, "  opening-insight -e openings.tsv.zst -store insight.db -import\n")
	fmt.Fprintf(os.Stderr, "  opening-insight -store insight.db -p Hero -history -J lichess.pgn.bz2\n")
	fmt.Fprintf(os.Stderr, "  opening-insight -store insight.db -serve :8080\n")
}
