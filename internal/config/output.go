package config

import (
	"fmt"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// OutputConfig controls how games and boards are printed.
type OutputConfig struct {
	MaxLineLength   uint // Wrap move text at this width
	JSONFormat      bool
	KeepMoveNumbers bool
	ShowBoard       bool // Print the final board grid after each game
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		ShowBoard:       true,
	}
}

// Validate checks that the output configuration is usable.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength < 10 {
		return fmt.Errorf("line length %d is too short: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
