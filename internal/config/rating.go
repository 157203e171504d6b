package config

import (
	"fmt"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// RatingConfig holds Elo settings.
type RatingConfig struct {
	InitialRating int     // Rating given to new players
	KFactor       float64 // Maximum rating change per game
}

// NewRatingConfig creates a RatingConfig with default values.
func NewRatingConfig() *RatingConfig {
	return &RatingConfig{
		InitialRating: 1500,
		KFactor:       32,
	}
}

// Validate checks that the rating configuration is usable.
func (r *RatingConfig) Validate() error {
	if r.InitialRating < 0 {
		return fmt.Errorf("initial rating %d: %w", r.InitialRating, errors.ErrInvalidConfig)
	}
	if r.KFactor <= 0 {
		return fmt.Errorf("k-factor %v must be positive: %w", r.KFactor, errors.ErrInvalidConfig)
	}
	return nil
}
