package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// AllowOrigins is the CORS allow-list ("*" for any).
	AllowOrigins string

	// MaxGames bounds the number of concurrent sessions (0 = unlimited).
	MaxGames int

	// AIMoveTimeout bounds each AI move computed for a session.
	AIMoveTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		AllowOrigins:    "*",
		MaxGames:        1000,
		AIMoveTimeout:   30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate checks that the server configuration is usable.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.MaxGames < 0 {
		return fmt.Errorf("max games %d: %w", s.MaxGames, errors.ErrInvalidConfig)
	}
	if s.AIMoveTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive: %w", errors.ErrInvalidConfig)
	}
	return nil
}
