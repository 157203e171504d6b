package setup

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/search"
)

// Generator produces random playable positions by letting a shallow search
// play a random number of plies from the standard board. It is safe for
// concurrent use.
type Generator struct {
	cfg      config.RandomConfig
	player   *search.MiniMax
	verifier *search.MiniMax
	logger   search.Logger
	start    *engine.Board

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator validates cfg and prepares the two searchers. A zero
// cfg.Seed seeds the random source from the clock.
func NewGenerator(cfg config.RandomConfig, logger search.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	play := config.SearchConfig{Depth: cfg.PlayDepth, Pruning: true, Workers: 1, EvalCacheSize: 1 << 14}
	player, err := search.New(play, search.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	verify := config.SearchConfig{
		Depth:           cfg.VerifyDepth,
		QuiescenceDepth: cfg.VerifyQuiescence,
		Pruning:         true,
		Ordering:        true,
		Workers:         1,
		EvalCacheSize:   1 << 16,
	}
	verifier, err := search.New(verify, search.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg:      cfg,
		player:   player,
		verifier: verifier,
		logger:   logger,
		start:    StandardBoard(),
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

func (g *Generator) logf(level int, format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Logf(level, format, args...)
	}
}

func (g *Generator) plies() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.MinMoves + g.rng.Intn(g.cfg.MaxMoves-g.cfg.MinMoves)
}

// RandomBoard returns a position with White to move and the number of
// plies played to reach it. A candidate is rejected when either side is
// mated, stalemated or in check from the opponent, or when the verifying
// search's reply for White leaves Black in check. After MaxRetries
// rejected candidates it fails with errors.ErrRandomBoardExhausted.
func (g *Generator) RandomBoard(ctx context.Context) (*engine.Board, int, error) {
	for attempt := 1; attempt <= g.cfg.MaxRetries; attempt++ {
		board, played, err := g.playOut(ctx, g.plies())
		if err != nil {
			return nil, 0, err
		}
		ok, err := g.acceptable(ctx, board)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			g.logf(1, "board shuffled with %d AI moves", played)
			return board, played, nil
		}
		g.logf(2, "random board attempt %d (%d plies) rejected: reshuffling", attempt, played)
	}
	return nil, 0, fmt.Errorf("%d attempts: %w", g.cfg.MaxRetries, errors.ErrRandomBoardExhausted)
}

// playOut plays n plies from the start position and steps back one ply if Black would be to move.
func (g *Generator) playOut(ctx context.Context, n int) (*engine.Board, int, error) {
	board := g.start
	prev := board
	played := 0
	for i := 0; i < n; i++ {
		mv, err := g.player.BestMove(ctx, board)
		if errors.Is(err, errors.ErrNoLegalMoves) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		next, err := engine.MakeMove(board, board.MoveMaker(), mv)
		if err != nil {
			return nil, 0, err
		}
		prev, board = board, next
		played++
	}
	if board.MoveMaker() != chess.White {
		board = prev
		played--
	}
	return board, played, nil
}

func (g *Generator) acceptable(ctx context.Context, board *engine.Board) (bool, error) {
	cur := board.CurrentPlayer()
	opp := cur.Opponent()
	if cur.IsInCheckmate() || cur.IsInStalemate() || opp.IsInCheck() || opp.IsInStalemate() {
		return false, nil
	}

	mv, err := g.verifier.BestMove(ctx, board)
	if errors.Is(err, errors.ErrNoLegalMoves) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	next, err := engine.MakeMove(board, board.MoveMaker(), mv)
	if err != nil {
		return false, err
	}
	return !next.CurrentPlayer().IsInCheck(), nil
}
