package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/output"
	"github.com/lgbarn/chessai-go/internal/processing"
	"github.com/lgbarn/chessai-go/internal/rating"
	"github.com/lgbarn/chessai-go/internal/search"
	"github.com/lgbarn/chessai-go/internal/setup"
)

// runSelfPlay plays -games engine-versus-engine games, -parallel at a time,
// and writes them in order. With -random each game gets its own start
// position; otherwise every game starts from the same board and, the
// search being deterministic, plays out identically.
func runSelfPlay(ctx context.Context, cfg *config.Config) error {
	if *numGames < 1 || *parallel < 1 || *maxPlies < 1 {
		return fmt.Errorf("-games, -parallel and -maxply must be positive")
	}
	mm, err := search.New(*cfg.Search, search.WithLogger(cfg))
	if err != nil {
		return err
	}
	var gen *setup.Generator
	if *randomFlag {
		if gen, err = setup.NewGenerator(*cfg.Random, cfg); err != nil {
			return err
		}
	}

	records := make([]*processing.Record, *numGames)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)
	for i := range records {
		i := i
		g.Go(func() error {
			start, err := startPosition(gctx, cfg, gen)
			if err != nil {
				return err
			}
			rec, err := playGame(gctx, mm, start, *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			rec.White = fmt.Sprintf("chessai-%d", cfg.Search.Depth)
			rec.Black = rec.White
			records[i] = rec
			cfg.Logf(2, "game %d finished after %d plies", i+1, len(rec.Moves))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	writer := output.NewGameWriter(cfg.OutputFile, cfg)
	var white rating.Stats
	for _, rec := range records {
		if err := writer.WriteGame(rec); err != nil {
			return err
		}
		tally(&white, processing.AnalyzeGame(rec).Result)
	}
	if err := writer.Close(); err != nil {
		return err
	}
	cfg.Logf(1, "%d game(s) played. White: %s", len(records), white.Verbose())
	return nil
}

// playGame lets mm play both sides from start until the game ends (mate,
// stalemate or insufficient material), a position repeats three times or
// maxPlies plies have been played.
func playGame(ctx context.Context, mm *search.MiniMax, start *engine.Board, maxPlies int) (*processing.Record, error) {
	rec := &processing.Record{Start: start}
	board := start
	seen := processing.NewPositionTracker(start)
	for {
		if processing.Finished(board) {
			return rec, nil
		}
		if len(rec.Moves) >= maxPlies {
			rec.Termination = processing.PlyLimit
			return rec, nil
		}
		mv, err := mm.BestMove(ctx, board)
		if err != nil {
			return nil, err
		}
		next, err := engine.MakeMove(board, board.MoveMaker(), mv)
		if err != nil {
			return nil, fmt.Errorf("ply %d: %w", len(rec.Moves)+1, err)
		}
		rec.Moves = append(rec.Moves, mv)
		board = next
		if seen.Add(board) >= 3 {
			return rec, nil
		}
	}
}

// tally adds a result to White's record.
func tally(s *rating.Stats, result string) {
	score, err := processing.ParseResult(result)
	if err != nil {
		return
	}
	switch score {
	case 1:
		s.Wins++
	case 0:
		s.Losses++
	default:
		s.Draws++
	}
}
