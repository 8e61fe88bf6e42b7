package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
)

// statusTicks is how long a status message stays in the help bar.
const statusTicks = 90

// Model is the Bubble Tea model that watches one simulation run.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     WatchKeyMap
	help     help.Model
	shotDir  string
	paused   bool
	quitting bool
	back     bool

	status     string
	statusLeft int

	// gen tags this model's ticks.
	gen uint64
}

// NewModel creates a watch model for the given simulation.
func NewModel(game registry.Game, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		config:  cfg,
		keys:    DefaultWatchKeyMap(),
		help:    h,
		shotDir: defaultScreenshotDir(),
		gen:     nextGen(),
	}
}

// WithBack enables the back-to-menu binding.
func (m Model) WithBack() Model {
	m.keys.Back.SetEnabled(true)
	return m
}

// WithoutScreenshots disables the screenshot binding, used for remote
// sessions that must not write to the host.
func (m Model) WithoutScreenshots() Model {
	m.keys.Screenshot.SetEnabled(false)
	return m
}

// WithScreenshotDir overrides where ctrl+s writes screenshots.
func (m Model) WithScreenshotDir(dir string) Model {
	m.shotDir = dir
	return m
}

// Init starts the simulation and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, screenHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Restart):
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.setStatus(fmt.Sprintf("reseeded: %d", m.config.Seed))

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.setStatus("screenshot failed: " + err.Error())
		} else {
			m.setStatus("saved " + path)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances the simulation unless paused.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.game.Step()
	}
	if m.statusLeft > 0 {
		m.statusLeft--
		if m.statusLeft == 0 {
			m.status = ""
		}
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusLeft = statusTicks
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s_%d.txt", m.game.ID(), timestamp, m.game.State().Tick))
	if err := os.WriteFile(path, []byte(m.screen.String()+"\n"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	if m.paused {
		footer = pausedStyle.Render("PAUSED") + " " + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// screenHeight leaves one line for the help bar.
func screenHeight(h int) int {
	return core.Max(h-1, 0)
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".chainfall", "screenshots")
}

// Run watches the simulation until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// RunWatch watches the simulation with the back binding enabled and reports
// whether the user asked for the menu.
func RunWatch(game registry.Game, cfg core.RuntimeConfig) (bool, error) {
	p := tea.NewProgram(
		NewModel(game, cfg).WithBack(),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
