package setup

import (
	"context"
	"testing"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/testutil"
)

// quickConfig keeps the verifying search shallow so tests stay fast.
func quickConfig(seed int64) config.RandomConfig {
	return config.RandomConfig{
		MinMoves:    2,
		MaxMoves:    8,
		PlayDepth:   1,
		VerifyDepth: 2,
		MaxRetries:  20,
		Seed:        seed,
	}
}

func mustGenerator(t *testing.T, cfg config.RandomConfig) *Generator {
	t.Helper()
	g, err := NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator(): %v", err)
	}
	return g
}

func TestRandomBoard(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		g := mustGenerator(t, quickConfig(seed))
		b, played, err := g.RandomBoard(context.Background())
		testutil.AssertNoError(t, err)

		testutil.AssertEqual(t, b.MoveMaker(), chess.White)
		testutil.AssertTrue(t, played >= 0 && played < 8, "played %d plies", played)
		testutil.AssertTrue(t, played%2 == 0, "White to move after %d plies", played)

		cur := b.CurrentPlayer()
		testutil.AssertFalse(t, cur.IsInCheckmate() || cur.IsInStalemate(), "seed %d: side to move is finished", seed)
		testutil.AssertFalse(t, cur.Opponent().IsInCheck(), "seed %d: opponent in check", seed)
	}
}

func TestRandomBoard_SameSeedSameBoard(t *testing.T) {
	a, pa, err := mustGenerator(t, quickConfig(99)).RandomBoard(context.Background())
	testutil.AssertNoError(t, err)
	b, pb, err := mustGenerator(t, quickConfig(99)).RandomBoard(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, a.FEN(), b.FEN())
	testutil.AssertEqual(t, pa, pb)
}

func TestRandomBoard_Exhausted(t *testing.T) {
	cfg := quickConfig(5)
	cfg.MaxRetries = 3
	g := mustGenerator(t, cfg)
	// White is stalemated here, so every candidate is rejected.
	g.start = engine.MustParseFEN("k7/8/8/8/8/8/2q5/K7 w - - 0 1")

	_, _, err := g.RandomBoard(context.Background())
	testutil.AssertErrorIs(t, err, errors.ErrRandomBoardExhausted)
}

func TestRandomBoard_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := mustGenerator(t, quickConfig(1)).RandomBoard(ctx)
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	cfg := quickConfig(1)
	cfg.MaxRetries = 0
	_, err := NewGenerator(cfg, nil)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}
