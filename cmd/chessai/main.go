// chessai is a chess engine front end: it finds best moves, plays the engine
// against itself, prints tutor and random boards, computes Elo updates and
// serves games over HTTP.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/output"
	"github.com/lgbarn/chessai-go/internal/processing"
	"github.com/lgbarn/chessai-go/internal/rating"
	"github.com/lgbarn/chessai-go/internal/search"
	"github.com/lgbarn/chessai-go/internal/setup"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessai-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *mode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches on the -mode flag.
func run(ctx context.Context, cfg *config.Config, mode string) error {
	switch mode {
	case "best":
		return runBestMove(ctx, cfg)
	case "play":
		return runSelfPlay(ctx, cfg)
	case "setup":
		return runSetup(ctx, cfg)
	case "elo":
		return runElo(cfg, *eloFlag)
	case "serve":
		return runServe(ctx, cfg)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
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

// startPosition builds the board selected by -tutor, -random or -fen (in
// that order of precedence, standard board otherwise) and plays -moves on
// it.
func startPosition(ctx context.Context, cfg *config.Config, gen *setup.Generator) (*engine.Board, error) {
	var (
		board *engine.Board
		err   error
	)
	switch {
	case *tutorFlag != 0:
		board, err = setup.TutorBoard(*tutorFlag)
	case *randomFlag:
		if gen == nil {
			if gen, err = setup.NewGenerator(*cfg.Random, cfg); err != nil {
				return nil, err
			}
		}
		var plies int
		board, plies, err = gen.RandomBoard(ctx)
		if err == nil {
			cfg.Logf(2, "random board after %d plies", plies)
		}
	case *fenFlag != "":
		board, err = engine.ParseFEN(*fenFlag)
	default:
		board = setup.StandardBoard()
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(*movesFlag) == "" {
		return board, nil
	}
	_, board, err = processing.Replay(board, *movesFlag)
	return board, err
}

// bestMoveReport is the JSON form of -mode best.
type bestMoveReport struct {
	FEN     string `json:"fen"`
	Move    string `json:"move"`
	Score   int    `json:"score"`
	Depth   int    `json:"depth"`
	Nodes   int64  `json:"nodes"`
	QNodes  int64  `json:"quiescenceNodes"`
	Cutoffs int64  `json:"cutoffs"`
}

// runBestMove searches the start position and prints the chosen move.
func runBestMove(ctx context.Context, cfg *config.Config) error {
	board, err := startPosition(ctx, cfg, nil)
	if err != nil {
		return err
	}
	mm, err := search.New(*cfg.Search, search.WithLogger(cfg))
	if err != nil {
		return err
	}
	res, err := mm.Search(ctx, board)
	if err != nil {
		return err
	}

	w := cfg.OutputFile
	if cfg.Output.JSONFormat {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bestMoveReport{
			FEN:     board.FEN(),
			Move:    res.Move.String(),
			Score:   res.Score,
			Depth:   res.Depth,
			Nodes:   res.Stats.Nodes,
			QNodes:  res.Stats.QuiescenceNodes,
			Cutoffs: res.Stats.Cutoffs,
		})
	}
	if cfg.Output.ShowBoard {
		output.OutputBoard(board, w)
	}
	fmt.Fprintf(w, "bestmove %s score %d depth %d\n", res.Move, res.Score, res.Depth)
	cfg.Logf(1, "%d nodes, %d quiescence nodes, %d cutoffs in %v",
		res.Stats.Nodes, res.Stats.QuiescenceNodes, res.Stats.Cutoffs, res.Stats.Elapsed)
	return nil
}

// runSetup prints the start position.
func runSetup(ctx context.Context, cfg *config.Config) error {
	board, err := startPosition(ctx, cfg, nil)
	if err != nil {
		return err
	}
	if cfg.Output.JSONFormat {
		return output.OutputBoardJSON(board, cfg.OutputFile)
	}
	output.OutputBoard(board, cfg.OutputFile)
	status := "active"
	p := board.CurrentPlayer()
	switch {
	case p.IsInCheckmate():
		status = "checkmate"
	case p.IsInStalemate():
		status = "stalemate"
	case p.IsInCheck():
		status = "check"
	}
	fmt.Fprintf(cfg.OutputFile, "%s to move (%s), %d legal moves\n", board.MoveMaker(), status, len(p.LegalMoves()))
	return nil
}

// parseElo reads "ratingA,ratingB,resultA,resultB".
func parseElo(s string) (ra, rb int, resA, resB float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("-elo %q: want ratingA,ratingB,resultA,resultB", s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if ra, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("-elo rating A: %w", err)
	}
	if rb, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("-elo rating B: %w", err)
	}
	if resA, err = strconv.ParseFloat(parts[2], 64); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("-elo result A: %w", err)
	}
	if resB, err = strconv.ParseFloat(parts[3], 64); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("-elo result B: %w", err)
	}
	return ra, rb, resA, resB, nil
}

// runElo prints the two updated ratings.
func runElo(cfg *config.Config, ratings string) error {
	ra, rb, resA, resB, err := parseElo(ratings)
	if err != nil {
		return err
	}
	a, b := rating.UpdateRatingsK(ra, rb, resA, resB, cfg.Rating.KFactor)
	if cfg.Output.JSONFormat {
		return json.NewEncoder(cfg.OutputFile).Encode(map[string]int{"ratingA": a, "ratingB": b})
	}
	fmt.Fprintf(cfg.OutputFile, "%d %d\n", a, b)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessai [options]\n\n")
	fmt.Fprintf(os.Stderr, "A chess engine with minimax search.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (-mode):\n")
	fmt.Fprintf(os.Stderr, "  best   Print the best move for the start position (default)\n")
	fmt.Fprintf(os.Stderr, "  play   Play the engine against itself and print the games\n")
	fmt.Fprintf(os.Stderr, "  setup  Print the start position\n")
	fmt.Fprintf(os.Stderr, "  elo    Print updated ratings for -elo\n")
	fmt.Fprintf(os.Stderr, "  serve  Serve games over HTTP and websockets\n")
}
