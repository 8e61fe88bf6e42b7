// Package chainfall adapts the chainfall board to the platform: registry
// variants, HUD rendering and serializable frames.
package chainfall

import (
	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
	chaincore "github.com/vovakirdan/chainfall/internal/games/chainfall/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall/layouts"
	"github.com/vovakirdan/chainfall/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game runs one independent chainfall board.
type Game struct {
	id     string
	title  string
	preset config.Preset

	runtime core.RuntimeConfig
	cfg     config.ChainfallConfig
	grid    *chaincore.Grid
	layout  *layouts.Layout

	// Last configuration problem, shown in the HUD. The board falls back to
	// defaults instead of stopping.
	warning string
}

// New creates a board that re-settles and re-checks after every erase.
func New() *Game {
	return &Game{id: "chainfall", title: "Chainfall", preset: config.PresetClassic}
}

// NewSettleOnce creates a board that settles once after an erase and stops
// the chain there.
func NewSettleOnce() *Game {
	return &Game{id: "chainfall_single", title: "Chainfall (settle once)", preset: config.PresetSettleOnce}
}

func init() {
	registry.Register("chainfall", func() registry.Game {
		return New()
	})
	registry.Register("chainfall_single", func() registry.Game {
		return NewSettleOnce()
	})
}

// ID returns the unique identifier for this variant.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	return g.title
}

// SetLayout makes every following Reset start from layout instead of an
// empty board. A nil layout restores the empty start.
func (g *Game) SetLayout(layout *layouts.Layout) {
	g.layout = layout
}

// SetPreset overrides the variant's rule preset for following Resets.
func (g *Game) SetPreset(preset config.Preset) {
	g.preset = preset
}

// Preset returns the rule preset applied on Reset.
func (g *Game) Preset() config.Preset {
	return g.preset
}

// Layout returns the starting layout, if any.
func (g *Game) Layout() *layouts.Layout {
	return g.layout
}

// Reset loads the configuration and starts a new board seeded by
// runtime.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.warning = ""

	cfg, err := config.LoadChainfall(configPath)
	if err != nil {
		g.warning = err.Error()
		cfg = config.DefaultChainfallConfig()
	}
	config.ApplyPreset(&cfg, g.preset)
	g.cfg = cfg

	rng := chaincore.NewRand(runtime.Seed)
	coreCfg := cfg.ToCore()

	if g.layout != nil {
		grid, err := g.layout.NewGrid(coreCfg, rng)
		if err == nil {
			g.grid = grid
			return
		}
		g.warning = "layout " + g.layout.ID + ": " + err.Error()
	}

	grid, err := chaincore.New(coreCfg, rng)
	if err != nil {
		g.warning = err.Error()
		grid, _ = chaincore.New(config.DefaultChainfallConfig().ToCore(), rng)
	}
	g.grid = grid
}

// Step advances the board by one tick.
func (g *Game) Step() core.StepResult {
	if g.grid == nil {
		return core.StepResult{}
	}

	before := g.grid.Chain()
	g.grid.Tick()

	return core.StepResult{
		State:         g.State(),
		ChainAdvanced: g.grid.Chain() > before,
	}
}

// State returns the driver-facing summary.
func (g *Game) State() core.GameState {
	if g.grid == nil {
		return core.GameState{}
	}
	stats := g.grid.Stats()
	return core.GameState{
		Tick:     g.grid.Ticks(),
		Phase:    g.grid.Phase().String(),
		Chain:    g.grid.Chain(),
		MaxChain: stats.MaxChain,
		Cleared:  stats.Erased,
	}
}

// Snapshot returns an immutable copy of the board.
func (g *Game) Snapshot() chaincore.Snapshot {
	if g.grid == nil {
		return chaincore.Snapshot{}
	}
	return g.grid.Snapshot()
}

// Config returns the configuration the board was built with.
func (g *Game) Config() chaincore.Config {
	if g.grid == nil {
		return g.cfg.ToCore()
	}
	return g.grid.Config()
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Warning returns the last configuration problem, or "".
func (g *Game) Warning() string {
	return g.warning
}
