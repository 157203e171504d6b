// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessai-go/internal/config"
)

var (
	// Mode
	mode = flag.String("mode", "best", "What to do: best, play, setup, elo, serve")

	// Start position
	fenFlag    = flag.String("fen", "", "Start position in FEN (default: standard board)")
	movesFlag  = flag.String("moves", "", "Moves to play from the start position, e.g. \"e2e4 e7e5\"")
	tutorFlag  = flag.Int("tutor", 0, "Start from tutor board N (1-4)")
	randomFlag = flag.Bool("random", false, "Start from a random board played out by the engine")

	// Search
	depth      = flag.Int("depth", 4, "Search depth in plies")
	quiescence = flag.Int("q", 2, "Capture-only plies searched below the nominal depth")
	noPruning  = flag.Bool("noprune", false, "Disable alpha-beta pruning")
	noOrdering = flag.Bool("noorder", false, "Disable capture-first move ordering")
	workers    = flag.Int("workers", 1, "Search root moves on N workers")
	timeBudget = flag.Duration("time", 0, "Deepen iteratively within this time budget (0 = fixed depth)")
	cacheSize  = flag.Int("cache", 1<<16, "Evaluation cache entries (0 = unlimited, -1 = off)")

	// Random boards
	seed       = flag.Int64("seed", 0, "Random seed (0 = time based)")
	maxRetries = flag.Int("retries", 50, "Random board rerolls before giving up")

	// Self-play
	numGames = flag.Int("games", 1, "Number of self-play games")
	maxPlies = flag.Int("maxply", 200, "Adjudicate a self-play game as drawn after N plies")
	parallel = flag.Int("parallel", 1, "Self-play games run at once")

	// Ratings
	eloFlag = flag.String("elo", "", "ratingA,ratingB,resultA,resultB for -mode elo")
	kFactor = flag.Float64("k", 32, "Elo K-factor")

	// Server
	addr     = flag.String("addr", ":8080", "Listen address for -mode serve")
	origins  = flag.String("origins", "*", "CORS allowed origins")
	maxGames = flag.Int("maxgames", 1000, "Maximum concurrent sessions (0 = unlimited)")

	// Output
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	logFile    = flag.String("l", "", "Log file (default: stderr)")
	appendLog  = flag.String("L", "", "Append log to this file")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	lineLength = flag.Int("w", 80, "Maximum line length of move text")
	noNumbers  = flag.Bool("nonumbers", false, "Don't output move numbers")
	noBoard    = flag.Bool("noboard", false, "Don't print board grids")
	verbosity  = flag.Int("v", 1, "Verbosity: 0 silent, 1 summary, 2 running commentary")
	quiet      = flag.Bool("s", false, "Silent mode (same as -v 0)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies every flag into cfg.
func applyFlags(cfg *config.Config) {
	applySearchFlags(cfg)
	applyRandomFlags(cfg)
	applyRatingFlags(cfg)
	applyServerFlags(cfg)
	applyOutputFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
}

// applySearchFlags configures the minimax search.
func applySearchFlags(cfg *config.Config) {
	cfg.Search.Depth = *depth
	cfg.Search.QuiescenceDepth = *quiescence
	cfg.Search.Pruning = !*noPruning
	cfg.Search.Ordering = !*noOrdering
	cfg.Search.Workers = *workers
	cfg.Search.TimeBudget = *timeBudget
	cfg.Search.EvalCacheSize = *cacheSize
}

// applyRandomFlags configures random board generation.
func applyRandomFlags(cfg *config.Config) {
	cfg.Random.Seed = *seed
	cfg.Random.MaxRetries = *maxRetries
}

// applyRatingFlags configures Elo settings.
func applyRatingFlags(cfg *config.Config) {
	cfg.Rating.KFactor = *kFactor
}

// applyServerFlags configures the HTTP server.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *addr
	cfg.Server.AllowOrigins = *origins
	cfg.Server.MaxGames = *maxGames
}

// applyOutputFlags configures game and board output.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.KeepMoveNumbers = !*noNumbers
	cfg.Output.ShowBoard = !*noBoard
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
}
