package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	chaincore "github.com/vovakirdan/chainfall/internal/games/chainfall/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadChainfall("")
	if err != nil {
		t.Fatalf("LoadChainfall() failed: %v", err)
	}
	if cfg != DefaultChainfallConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultChainfallConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestToCore(t *testing.T) {
	cfg := DefaultChainfallConfig()
	if got := cfg.ToCore(); got != chaincore.DefaultConfig() {
		t.Errorf("ToCore() = %+v, expected %+v", got, chaincore.DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	data := []byte("board:\n  width: 6\n  height: 8\nrules:\n  threshold: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadChainfall(path)
	if err != nil {
		t.Fatalf("LoadChainfall() failed: %v", err)
	}

	if cfg.Board.Width != 6 || cfg.Board.Height != 8 || cfg.Rules.Threshold != 3 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Missing fields keep defaults.
	if cfg.Board.Colors != chaincore.DefaultColors {
		t.Errorf("Colors = %d, expected default %d", cfg.Board.Colors, chaincore.DefaultColors)
	}
	if cfg.Timing.EraseDuration != chaincore.DefaultEraseDuration {
		t.Errorf("EraseDuration = %d, expected default", cfg.Timing.EraseDuration)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadChainfall(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadChainfall(broken); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("rules:\n  threshold: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadChainfall(invalid)
	if !errors.Is(err, chaincore.ErrInvalidConfig) {
		t.Errorf("threshold 1 should fail with ErrInvalidConfig, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	writeConfig := func(dir string, width int) {
		t.Helper()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		data := []byte("board:\n  width: " + string(rune('0'+width)) + "\n")
		if err := os.WriteFile(filepath.Join(dir, "chainfall.yaml"), data, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	writeConfig(filepath.Join(work, "configs"), 5)
	cfg, _ := LoadChainfall("")
	if cfg.Board.Width != 5 {
		t.Errorf("local config not used, width = %d", cfg.Board.Width)
	}

	writeConfig(filepath.Join(home, ".chainfall", "configs"), 7)
	cfg, _ = LoadChainfall("")
	if cfg.Board.Width != 7 {
		t.Errorf("user config should win over local, width = %d", cfg.Board.Width)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultChainfallConfig()

	ApplyPreset(&cfg, PresetSettleOnce)
	if cfg.Rules.Cascade {
		t.Error("settle_once should disable cascade")
	}

	ApplyPreset(&cfg, PresetClassic)
	if cfg.Rules.Cascade {
		t.Error("classic should keep the loaded cascade setting")
	}

	cfg = DefaultChainfallConfig()
	ApplyPreset(&cfg, PresetClassic)
	if !cfg.Rules.Cascade {
		t.Error("classic should cascade with the default rules")
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParsePreset(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePreset("hard"); err == nil {
		t.Error("unknown preset should fail")
	}
}
