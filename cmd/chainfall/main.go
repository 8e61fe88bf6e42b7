// chainfall watches a self-playing falling-pair chain simulation in the terminal.
//
// Usage:
//
//	chainfall                    - Pick a variant from a menu
//	chainfall list               - List simulation variants
//	chainfall watch [variant]    - Watch a variant
//	chainfall run [variant]      - Run headless and print the result
//	chainfall layouts ...        - Manage stored board layouts
//	chainfall serve              - Start SSH spectator server
//	chainfall stream             - Start websocket snapshot feed
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.chainfall/chainfall.db)
//	--config <path>     - Custom chainfall config YAML
//	--log-level <level> - debug, info, warn or error
//	--layouts-dir <dir> - Layout files searched by ID (default: ./layouts)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall"
	"github.com/vovakirdan/chainfall/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLogLevel   string
	flagLayoutsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chainfall",
	Short: "Chainfall - watch falling pairs chain themselves away",
	Long: `Chainfall is a self-playing falling-block simulation. Pairs of colored
blocks drop onto a fixed board, settle, and groups of four or more
connected blocks of one color are erased, chaining as the board falls.

Run without a command to pick a variant from a menu.

Examples:
  chainfall
  chainfall watch --seed 42
  chainfall run --ticks 5000 --ascii
  chainfall layouts import ./layouts
  chainfall serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.chainfall/chainfall.db", "Path to layouts database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom chainfall config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLayoutsDir, "layouts-dir", "layouts", "Directory searched for layout IDs not in the database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
}

// setup applies the global flags shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	chainfall.SetConfigPath(flagConfig)
	return nil
}

// newLogger creates a stderr logger honoring --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// runMenu loops menu -> watch until the user quits from the menu.
func runMenu(_ *cobra.Command, _ []string) error {
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = result.Config
		if result.Quit {
			return nil
		}

		game, err := newGame(result.GameID)
		if err != nil {
			return err
		}
		back, err := tui.RunWatch(game, cfg)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}
