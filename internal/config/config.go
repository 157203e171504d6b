// Package config provides configuration for the chess engine, the search,
// board setup, ratings, output and the HTTP server.
package config

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	Search *SearchConfig
	Random *RandomConfig
	Rating *RatingConfig
	Server *ServerConfig
	Output *OutputConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Search:     NewSearchConfig(),
		Random:     NewRandomConfig(),
		Rating:     NewRatingConfig(),
		Server:     NewServerConfig(),
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the main output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	for _, v := range []interface{ Validate() error }{c.Search, c.Random, c.Rating, c.Server, c.Output} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Logf writes a log line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c == nil || c.LogFile == nil || c.Verbosity < level {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}

// logMu serialises log lines from concurrent searches and games.
var logMu sync.Mutex
