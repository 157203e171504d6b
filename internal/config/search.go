package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// SearchConfig holds the parameters of the minimax search.
type SearchConfig struct {
	// Depth is the nominal search depth in plies.
	Depth int

	// QuiescenceDepth is the number of extra capture-only plies searched
	// below the nominal depth.
	QuiescenceDepth int

	// Pruning enables alpha-beta cut-offs.
	Pruning bool

	// Ordering searches captures first, most valuable victim first.
	Ordering bool

	// Workers splits the root moves over a worker pool when above 1.
	Workers int

	// TimeBudget enables iterative deepening up to Depth, returning the
	// deepest completed result when the budget runs out. Zero disables it.
	TimeBudget time.Duration

	// EvalCacheSize bounds the evaluation cache (0 = unlimited, -1 = off).
	EvalCacheSize int
}

// MaxSearchDepth bounds Depth and QuiescenceDepth.
const MaxSearchDepth = 32

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Depth:           4,
		QuiescenceDepth: 2,
		Pruning:         true,
		Ordering:        true,
		Workers:         1,
		EvalCacheSize:   1 << 16,
	}
}

// Validate checks that the search configuration is usable.
func (s *SearchConfig) Validate() error {
	if s.Depth < 1 || s.Depth > MaxSearchDepth {
		return fmt.Errorf("search depth %d outside 1..%d: %w", s.Depth, MaxSearchDepth, errors.ErrInvalidConfig)
	}
	if s.QuiescenceDepth < 0 || s.QuiescenceDepth > MaxSearchDepth {
		return fmt.Errorf("quiescence depth %d outside 0..%d: %w", s.QuiescenceDepth, MaxSearchDepth, errors.ErrInvalidConfig)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", s.Workers, errors.ErrInvalidConfig)
	}
	if s.TimeBudget < 0 {
		return fmt.Errorf("negative time budget %v: %w", s.TimeBudget, errors.ErrInvalidConfig)
	}
	if s.EvalCacheSize < -1 {
		return fmt.Errorf("eval cache size %d: %w", s.EvalCacheSize, errors.ErrInvalidConfig)
	}
	return nil
}
