// Package config provides configuration for opening-insight.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lgbarn/opening-insight-go/internal/errors"
	"github.com/lgbarn/opening-insight-go/internal/input"
	"github.com/lgbarn/opening-insight-go/internal/stats"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int    `yaml:"verbosity" validate:"gte=0,lte=2"` // 0=warnings, 1=batch summary, 2=per game
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`

	// Player is matched against the White and Black tags of each game.
	Player string `yaml:"player"`

	OpeningsPath string `yaml:"openings"`
	StorePath    string `yaml:"store"`
	HTTPAddr     string `yaml:"http_addr" validate:"omitempty,hostname_port"`

	Worker   WorkerConfig   `yaml:"worker"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Input    InputConfig    `yaml:"input"`

	// Output streams
	OutputFile io.Writer `yaml:"-" validate:"-"`
	LogFile    io.Writer `yaml:"-" validate:"-"`
}

// WorkerConfig sizes the worker pool and the aggregation fan-out.
type WorkerConfig struct {
	Workers    int `yaml:"workers" validate:"gte=1"`
	BufferSize int `yaml:"buffer_size" validate:"gte=1"`
	Shards     int `yaml:"shards" validate:"gte=1"`
}

// AnalysisConfig holds the rating defaults and ranking thresholds.
type AnalysisConfig struct {
	// DefaultRating is used when the player's own Elo tag is missing.
	DefaultRating float64 `yaml:"default_rating" validate:"gte=0"`

	MinStudyGames        int     `yaml:"min_study_games" validate:"gte=1"`
	MinKeepGames         int     `yaml:"min_keep_games" validate:"gte=1"`
	MinSignificanceGames int     `yaml:"min_significance_games" validate:"gte=5"`
	MinVariance          float64 `yaml:"min_variance" validate:"gte=0"`
	Confidence           float64 `yaml:"confidence" validate:"gte=0.5,lte=0.999"`
}

// InputConfig holds settings for reading game files.
type InputConfig struct {
	// MaxLineSize is the longest PGN line accepted, e.g. "1MB".
	MaxLineSize string `yaml:"max_line_size" validate:"required"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	th := stats.DefaultThresholds()
	return &Config{
		Verbosity: 1,
		LogFormat: "console",
		Worker: WorkerConfig{
			Workers:    runtime.NumCPU(),
			BufferSize: 64,
			Shards:     4,
		},
		Analysis: AnalysisConfig{
			DefaultRating:        1500,
			MinStudyGames:        5,
			MinKeepGames:         3,
			MinSignificanceGames: th.MinGames,
			MinVariance:          th.MinVariance,
			Confidence:           th.Confidence,
		},
		Output:     *NewOutputConfig(),
		Input:      InputConfig{MaxLineSize: "1MB"},
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// LoadFile reads a YAML file over the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data)
}

// Load decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Load(data []byte) (*Config, error) {
	cfg := NewConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field. The error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
		}
		var details []string
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s failed %s=%s (got %v)",
				fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		}
		return fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(details, "; "))
	}
	if _, err := c.MaxLineBytes(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	return nil
}

// Thresholds returns the significance thresholds.
func (c *Config) Thresholds() stats.Thresholds {
	return stats.Thresholds{
		MinGames:    c.Analysis.MinSignificanceGames,
		MinVariance: c.Analysis.MinVariance,
		Confidence:  c.Analysis.Confidence,
	}
}

// MaxLineBytes parses Input.MaxLineSize.
func (c *Config) MaxLineBytes() (int, error) {
	n, err := input.ParseSize(c.Input.MaxLineSize)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("max line size %q must be positive", c.Input.MaxLineSize)
	}
	return n, nil
}
