package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Seeding patterns understood by the game loop
const (
	PatternRandom = "random"
	PatternDead   = "dead"
	PatternGlider = "glider"
	PatternPulsar = "pulsar"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width               uint32        `json:"width"`
	Height              uint32        `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	Seed                int64         `json:"seed"`
	Pattern             string        `json:"pattern"`
	Debug               bool          `json:"debug"`
	Interactive         bool          `json:"interactive"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               64,
		Height:              64,
		FrameRate:           150 * time.Millisecond,
		MaxGenerations:      1000,
		RandomDensity:       0.5,
		Seed:                time.Now().UnixNano(),
		Pattern:             PatternRandom,
		Debug:               false,
		Interactive:         false,
		AutoRestart:         true,
		StagnationThreshold: 5,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate reports settings the game loop cannot run with
func (c Config) Validate() error {
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_density %v outside [0, 1]", c.RandomDensity)
	}
	if c.FrameRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative frame_rate %v", c.FrameRate)
	}
	if c.MaxGenerations < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative max_generations %d", c.MaxGenerations)
	}
	switch c.Pattern {
	case PatternRandom, PatternDead, PatternGlider, PatternPulsar:
	default:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown pattern %q", c.Pattern)
	}
	return nil
}
