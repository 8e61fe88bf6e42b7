package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preset selects a rule variant on top of a loaded config.
type Preset string

const (
	PresetClassic    Preset = "classic"     // Rules as configured; cascade by default
	PresetSettleOnce Preset = "settle_once" // Settle once after an erase, no re-check
)

// Presets returns all presets in display order.
func Presets() []Preset {
	return []Preset{PresetClassic, PresetSettleOnce}
}

// ParsePreset parses a preset name.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", s)
}

// ApplyPreset modifies the config according to a preset.
// Classic leaves the loaded rules alone, so rules.cascade in a file wins.
func ApplyPreset(cfg *ChainfallConfig, preset Preset) {
	if preset == PresetSettleOnce {
		cfg.Rules.Cascade = false
	}
}

// LoadChainfall loads the chainfall configuration.
// Search order: customPath -> ~/.chainfall/configs/chainfall.yaml ->
// ./configs/chainfall.yaml -> embedded default.
// Only a bad customPath is an error; broken files elsewhere are skipped.
func LoadChainfall(customPath string) (ChainfallConfig, error) {
	// Fields missing from a file keep their default values.
	cfg := DefaultChainfallConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath("chainfall.yaml"),
		filepath.Join("configs", "chainfall.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	embedded := DefaultChainfallConfig()
	if err := yaml.Unmarshal(defaultChainfallYAML, &embedded); err != nil {
		return DefaultChainfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// reported as not found.
func tryLoad(path string) (ChainfallConfig, bool) {
	cfg := DefaultChainfallConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chainfall", "configs", filename)
}
