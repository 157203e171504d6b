package config

import (
	"fmt"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// RandomConfig holds settings for random board generation.
type RandomConfig struct {
	// MinMoves and MaxMoves bound the number of plies played (MaxMoves exclusive).
	MinMoves int
	MaxMoves int

	// PlayDepth is the search depth of the move generator.
	PlayDepth int

	// VerifyDepth and VerifyQuiescence configure the stronger search that
	// checks the finished board.
	VerifyDepth      int
	VerifyQuiescence int

	// MaxRetries bounds the rerolls before generation gives up.
	MaxRetries int

	// Seed seeds the random source; 0 picks a time-based seed.
	Seed int64
}

// NewRandomConfig creates a RandomConfig with default values.
func NewRandomConfig() *RandomConfig {
	return &RandomConfig{
		MinMoves:         5,
		MaxMoves:         35,
		PlayDepth:        1,
		VerifyDepth:      4,
		VerifyQuiescence: 2,
		MaxRetries:       50,
	}
}

// Validate checks that the random board configuration is usable.
func (r *RandomConfig) Validate() error {
	if r.MinMoves < 0 || r.MinMoves >= r.MaxMoves {
		return fmt.Errorf("random moves range [%d, %d) is empty: %w", r.MinMoves, r.MaxMoves, errors.ErrInvalidConfig)
	}
	if r.PlayDepth < 1 || r.VerifyDepth < 1 {
		return fmt.Errorf("random play depth %d and verify depth %d must be positive: %w",
			r.PlayDepth, r.VerifyDepth, errors.ErrInvalidConfig)
	}
	if r.VerifyQuiescence < 0 {
		return fmt.Errorf("verify quiescence %d: %w", r.VerifyQuiescence, errors.ErrInvalidConfig)
	}
	if r.MaxRetries < 1 {
		return fmt.Errorf("max retries (%d) must be at least 1: %w", r.MaxRetries, errors.ErrInvalidConfig)
	}
	return nil
}
