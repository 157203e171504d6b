package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithDepth sets the search depth and quiescence extension.
func (b *ConfigBuilder) WithDepth(depth, quiescence int) *ConfigBuilder {
	b.cfg.Search.Depth = depth
	b.cfg.Search.QuiescenceDepth = quiescence
	return b
}

// WithPruning enables or disables alpha-beta pruning.
func (b *ConfigBuilder) WithPruning(enabled bool) *ConfigBuilder {
	b.cfg.Search.Pruning = enabled
	return b
}

// WithOrdering enables or disables move ordering.
func (b *ConfigBuilder) WithOrdering(enabled bool) *ConfigBuilder {
	b.cfg.Search.Ordering = enabled
	return b
}

// WithWorkers sets the number of parallel root workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Search.Workers = n
	return b
}

// WithTimeBudget enables iterative deepening under a time budget.
func (b *ConfigBuilder) WithTimeBudget(d time.Duration) *ConfigBuilder {
	b.cfg.Search.TimeBudget = d
	return b
}

// WithEvalCache sets the evaluation cache size.
func (b *ConfigBuilder) WithEvalCache(size int) *ConfigBuilder {
	b.cfg.Search.EvalCacheSize = size
	return b
}

// WithRandomSeed seeds random board generation.
func (b *ConfigBuilder) WithRandomSeed(seed int64) *ConfigBuilder {
	b.cfg.Random.Seed = seed
	return b
}

// WithMaxRetries bounds random board rerolls.
func (b *ConfigBuilder) WithMaxRetries(n int) *ConfigBuilder {
	b.cfg.Random.MaxRetries = n
	return b
}

// WithAddr sets the server listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithJSON switches game and board output to JSON.
func (b *ConfigBuilder) WithJSON(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
