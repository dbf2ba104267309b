package config

import "io"

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

// WithPlayer sets the player whose games are analysed.
func (b *ConfigBuilder) WithPlayer(name string) *ConfigBuilder {
	b.cfg.Player = name
	return b
}

// WithDefaultRating sets the rating used when the player's Elo tag is missing.
func (b *ConfigBuilder) WithDefaultRating(rating float64) *ConfigBuilder {
	b.cfg.Analysis.DefaultRating = rating
	return b
}

// WithWorkers sets the number of analysis workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Worker.Workers = n
	return b
}

// WithShards sets the number of aggregation shards.
func (b *ConfigBuilder) WithShards(n int) *ConfigBuilder {
	b.cfg.Worker.Shards = n
	return b
}

// WithRankingThresholds sets the minimum games for the study and keep lists.
func (b *ConfigBuilder) WithRankingThresholds(minStudy, minKeep int) *ConfigBuilder {
	b.cfg.Analysis.MinStudyGames = minStudy
	b.cfg.Analysis.MinKeepGames = minKeep
	return b
}

// WithSignificance sets the significance test thresholds.
func (b *ConfigBuilder) WithSignificance(minGames int, minVariance, confidence float64) *ConfigBuilder {
	b.cfg.Analysis.MinSignificanceGames = minGames
	b.cfg.Analysis.MinVariance = minVariance
	b.cfg.Analysis.Confidence = confidence
	return b
}

// WithOutputFormat sets the report format.
func (b *ConfigBuilder) WithOutputFormat(format string) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}
