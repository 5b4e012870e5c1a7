package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	StartModeRandom   = "random"
	StartModePatterns = "patterns"
)

// Config holds the configuration for the game
type Config struct {
	Width              int           `json:"width"`
	Height             int           `json:"height"`
	LiveProbability    float64       `json:"live_probability"`
	StabilityThreshold int           `json:"stability_threshold"`
	Seed               int64         `json:"seed"`
	StartMode          string        `json:"start_mode"`
	FrameRate          time.Duration `json:"frame_rate"`
	UseParallel        bool          `json:"use_parallel"`
	UseBoundedGrid     bool          `json:"use_bounded_grid"`
	UseMemoryPool      bool          `json:"use_memory_pool"`
	MaxGenerations     int           `json:"max_generations"`
	AutoRestart        bool          `json:"auto_restart"`
	RestartDelay       time.Duration `json:"restart_delay"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:              80,
		Height:             80,
		LiveProbability:    0.2,
		StabilityThreshold: 10,
		StartMode:          StartModeRandom,
		FrameRate:          10 * time.Millisecond,
		UseParallel:        true,
		UseBoundedGrid:     false,
		UseMemoryPool:      true,
		MaxGenerations:     0, // unlimited
		AutoRestart:        false,
		RestartDelay:       2 * time.Second,
	}
}

// LoadConfig loads configuration from JSON file on top of DefaultConfig
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}

// Validate checks every field the engine depends on
func (c Config) Validate() error {
	if err := ValidateDimensions(c.Height, c.Width); err != nil {
		return err
	}
	if err := ValidateProbability(c.LiveProbability); err != nil {
		return err
	}
	if c.StabilityThreshold <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "[Validate] stability threshold must be positive, got %d", c.StabilityThreshold)
	}
	if c.MaxGenerations < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "[Validate] max generations must not be negative, got %d", c.MaxGenerations)
	}
	if c.FrameRate < 0 || c.RestartDelay < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "[Validate] durations must not be negative")
	}
	switch c.StartMode {
	case StartModeRandom, StartModePatterns:
	default:
		return errors.Wrapf(ErrInvalidConfiguration, "[Validate] unknown start mode %q", c.StartMode)
	}
	return nil
}

// ValidateDimensions rejects non-positive grid sizes
func ValidateDimensions(height, width int) error {
	if height <= 0 || width <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "[ValidateDimensions] grid must be at least 1x1, got %dx%d", height, width)
	}
	return nil
}

// ValidateProbability rejects probabilities outside [0, 1]
func ValidateProbability(p float64) error {
	// !(p >= 0) also catches NaN
	if !(p >= 0) || p > 1 {
		return errors.Wrapf(ErrInvalidConfiguration, "[ValidateProbability] probability must be within [0, 1], got %v", p)
	}
	return nil
}
