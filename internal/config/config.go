// Package config provides YAML-based configuration loading for the chainfall
// simulation.
package config

import (
	chaincore "github.com/vovakirdan/chainfall/internal/games/chainfall/core"
)

// ChainfallConfig contains all configuration for a chainfall board.
type ChainfallConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Rules  RulesConfig  `yaml:"rules"`
	Timing TimingConfig `yaml:"timing"`
}

// BoardConfig defines the board size and palette.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Colors int `yaml:"colors"`
}

// RulesConfig defines elimination rules.
type RulesConfig struct {
	Threshold int  `yaml:"threshold"` // Minimum group size that erases
	Cascade   bool `yaml:"cascade"`   // Re-check after each erase
}

// TimingConfig defines phase durations in ticks.
type TimingConfig struct {
	DropInterval  int `yaml:"drop_interval"`
	EraseDuration int `yaml:"erase_duration"`
	SpawnDelay    int `yaml:"spawn_delay"`
}

// ToCore converts the file representation into the simulation config.
func (c ChainfallConfig) ToCore() chaincore.Config {
	return chaincore.Config{
		Width:         c.Board.Width,
		Height:        c.Board.Height,
		Colors:        c.Board.Colors,
		Threshold:     c.Rules.Threshold,
		DropInterval:  c.Timing.DropInterval,
		EraseDuration: c.Timing.EraseDuration,
		SpawnDelay:    c.Timing.SpawnDelay,
		Cascade:       c.Rules.Cascade,
	}
}

// Validate reports whether the config describes a runnable board.
// The returned error matches chaincore.ErrInvalidConfig.
func (c ChainfallConfig) Validate() error {
	return c.ToCore().Validate()
}
