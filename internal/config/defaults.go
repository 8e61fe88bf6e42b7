package config

import (
	_ "embed"

	chaincore "github.com/vovakirdan/chainfall/internal/games/chainfall/core"
)

//go:embed defaults/chainfall.yaml
var defaultChainfallYAML []byte

// DefaultChainfallConfig returns the built-in configuration, used when no
// YAML source can be read.
func DefaultChainfallConfig() ChainfallConfig {
	return ChainfallConfig{
		Board: BoardConfig{
			Width:  chaincore.DefaultWidth,
			Height: chaincore.DefaultHeight,
			Colors: chaincore.DefaultColors,
		},
		Rules: RulesConfig{
			Threshold: chaincore.DefaultThreshold,
			Cascade:   true,
		},
		Timing: TimingConfig{
			DropInterval:  chaincore.DefaultDropInterval,
			EraseDuration: chaincore.DefaultEraseDuration,
			SpawnDelay:    chaincore.DefaultSpawnDelay,
		},
	}
}
