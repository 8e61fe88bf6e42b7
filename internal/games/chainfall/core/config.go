package core

import (
	"errors"
	"fmt"
)

// Default tuning values.
const (
	DefaultWidth         = 16
	DefaultHeight        = 16
	DefaultColors        = 4
	DefaultThreshold     = 4
	DefaultDropInterval  = 6
	DefaultEraseDuration = 18
	DefaultSpawnDelay    = 10
)

// ErrInvalidConfig is matched by every configuration error returned by New.
var ErrInvalidConfig = errors.New("invalid board configuration")

// ConfigError describes a rejected configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config holds the parameters of a board. It is fixed once the board is built.
type Config struct {
	Width         int  // Board columns
	Height        int  // Board rows
	Colors        int  // Palette size K; block colors are 1..K
	Threshold     int  // Minimum group size that erases
	DropInterval  int  // Ticks between two pair gravity steps
	EraseDuration int  // Ticks a marked group stays visible
	SpawnDelay    int  // Ticks between a spawn and the first fall step
	Cascade       bool // Re-settle and re-detect after every erase
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Colors:        DefaultColors,
		Threshold:     DefaultThreshold,
		DropInterval:  DefaultDropInterval,
		EraseDuration: DefaultEraseDuration,
		SpawnDelay:    DefaultSpawnDelay,
		Cascade:       true,
	}
}

// Validate checks that the configuration describes a runnable board.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "width", Message: fmt.Sprintf("must be positive, got %d", c.Width)}
	case c.Height <= 0:
		return &ConfigError{Field: "height", Message: fmt.Sprintf("must be positive, got %d", c.Height)}
	case c.Width < 2 && c.Height < 2:
		return &ConfigError{Field: "width", Message: "board must hold a pair (width or height >= 2)"}
	case c.Colors < 1:
		return &ConfigError{Field: "colors", Message: fmt.Sprintf("must be at least 1, got %d", c.Colors)}
	case c.Colors > 255:
		return &ConfigError{Field: "colors", Message: fmt.Sprintf("must be at most 255, got %d", c.Colors)}
	case c.Threshold < 2:
		return &ConfigError{Field: "threshold", Message: fmt.Sprintf("must be at least 2, got %d", c.Threshold)}
	case c.DropInterval < 1:
		return &ConfigError{Field: "drop_interval", Message: fmt.Sprintf("must be at least 1, got %d", c.DropInterval)}
	case c.EraseDuration < 1:
		return &ConfigError{Field: "erase_duration", Message: fmt.Sprintf("must be at least 1, got %d", c.EraseDuration)}
	case c.SpawnDelay < 0:
		return &ConfigError{Field: "spawn_delay", Message: fmt.Sprintf("must not be negative, got %d", c.SpawnDelay)}
	}
	return nil
}
