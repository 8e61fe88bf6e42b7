package chainfall

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall/layouts"
	"github.com/vovakirdan/chainfall/internal/registry"
)

const smallConfig = `
board:
  width: 6
  height: 8
  colors: 1
rules:
  threshold: 4
  cascade: true
timing:
  drop_interval: 1
  erase_duration: 2
  spawn_delay: 1
`

// useConfig points the package at a temporary config file for one test.
func useConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chainfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"chainfall", "chainfall_single"} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		assert.NotEmpty(t, g.Title())
	}
}

func TestResetAppliesConfigAndPreset(t *testing.T) {
	useConfig(t, smallConfig)

	g := New()
	g.Reset(runtimeConfig(1))
	cfg := g.Config()
	assert.Equal(t, 6, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
	assert.True(t, cfg.Cascade)
	assert.Empty(t, g.Warning())

	single := NewSettleOnce()
	single.Reset(runtimeConfig(1))
	assert.False(t, single.Config().Cascade)
}

func TestResetHonorsCascadeFromFile(t *testing.T) {
	useConfig(t, "rules:\n  cascade: false\n")

	g := New()
	g.Reset(core.DefaultConfig())
	assert.Empty(t, g.Warning())
	assert.False(t, g.Config().Cascade)
}

func TestSetPreset(t *testing.T) {
	useConfig(t, smallConfig)

	g := New()
	assert.Equal(t, config.PresetClassic, g.Preset())

	g.SetPreset(config.PresetSettleOnce)
	g.Reset(runtimeConfig(1))
	assert.False(t, g.Config().Cascade)

	single := NewSettleOnce()
	single.SetPreset(config.PresetClassic)
	single.Reset(runtimeConfig(1))
	assert.True(t, single.Config().Cascade)
}

func TestStepReportsChains(t *testing.T) {
	useConfig(t, smallConfig)

	g := New()
	g.Reset(runtimeConfig(3))

	advanced := false
	for range 2000 {
		res := g.Step()
		if res.ChainAdvanced {
			advanced = true
			assert.Positive(t, res.State.Chain)
			assert.Equal(t, "erasing", res.State.Phase)
			break
		}
	}
	assert.True(t, advanced, "no chain within 2000 ticks")
	assert.Positive(t, g.State().Cleared)
}

func TestResetIsReproducible(t *testing.T) {
	useConfig(t, smallConfig)

	run := func() Frame {
		g := New()
		g.Reset(runtimeConfig(77))
		for range 400 {
			g.Step()
		}
		return g.Frame()
	}

	assert.Equal(t, run(), run())
}

func TestResetFallsBackOnBadConfig(t *testing.T) {
	useConfig(t, "rules:\n  threshold: 1\n")

	g := New()
	g.Reset(runtimeConfig(1))

	assert.Contains(t, g.Warning(), "threshold")
	assert.Equal(t, 16, g.Config().Width)
	g.Step()
	assert.Equal(t, uint64(1), g.State().Tick)
}

func TestLayoutStart(t *testing.T) {
	useConfig(t, smallConfig)

	layout, err := layouts.FromRows("staircase", "Staircase", 4, []string{
		"....",
		"2...",
		"122.",
		"1112",
	})
	require.NoError(t, err)

	g := New()
	g.SetLayout(&layout)
	g.Reset(runtimeConfig(5))

	f := g.Frame()
	assert.Equal(t, []string{"....", "2...", "122.", "1112"}, f.Rows)
	assert.Equal(t, 4, g.Config().Colors, "palette widened for the layout")

	for range 200 {
		g.Step()
	}
	assert.GreaterOrEqual(t, g.State().MaxChain, 1)

	// Reset starts from the layout again.
	g.Reset(runtimeConfig(6))
	assert.Equal(t, []string{"....", "2...", "122.", "1112"}, g.Frame().Rows)

	g.SetLayout(nil)
	g.Reset(runtimeConfig(6))
	assert.Equal(t, 6, g.Config().Width)
}

func TestRender(t *testing.T) {
	useConfig(t, smallConfig)

	g := New()
	g.Reset(runtimeConfig(1))
	for range 5 {
		g.Step()
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Chainfall")
	assert.Contains(t, out, "Tick      5")
	assert.Contains(t, out, "Board     6x8")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, string(BlockChar), "the falling pair is drawn")
}

func TestRenderNarrowScreenDropsHUD(t *testing.T) {
	useConfig(t, smallConfig)

	g := New()
	g.Reset(runtimeConfig(1))

	screen := core.NewScreen(16, 12)
	g.Render(screen)

	assert.NotContains(t, screen.String(), "Tick")
	assert.Contains(t, screen.String(), "chain 0")
}

func TestRenderTooSmall(t *testing.T) {
	useConfig(t, smallConfig)

	g := New()
	g.Reset(runtimeConfig(1))

	screen := core.NewScreen(20, 5)
	g.Render(screen)

	assert.Contains(t, screen.String(), "too small")
}

func TestFrameJSON(t *testing.T) {
	useConfig(t, smallConfig)

	g := New()
	g.Reset(runtimeConfig(1))
	g.Step()

	data, err := json.Marshal(g.Frame())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "spawn_wait", decoded["phase"])
	assert.Contains(t, decoded, "pair")
	rows, ok := decoded["rows"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, 8)
	assert.Equal(t, strings.Repeat(".", 6), rows[0])
}
