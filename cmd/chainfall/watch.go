package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/platform/tui"
)

var flagLayout string

var watchCmd = &cobra.Command{
	Use:   "watch [variant]",
	Short: "Watch a simulation",
	Long: `Watch the specified variant play itself (default: chainfall).

Controls:
  P/Space   - Pause
  R         - Restart with a new seed
  Ctrl+S    - Save a text screenshot to ~/.chainfall/screenshots
  ?         - More help
  Q/Ctrl+C  - Quit

Examples:
  chainfall watch
  chainfall watch chainfall_single --seed 42
  chainfall watch --layout tower
  chainfall watch --layout ./layouts/staircase.yaml
  chainfall watch --config ./my-chainfall.yaml
  chainfall watch --preset settle_once`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagLayout, "layout", "", "Start from a stored layout ID or a layout file")
	watchCmd.Flags().StringVar(&flagPreset, "preset", "", presetUsage())
}

func runWatch(_ *cobra.Command, args []string) error {
	game, err := newGame(variantArg(args))
	if err != nil {
		return err
	}

	if flagLayout != "" {
		layout, err := resolveLayout(flagLayout)
		if err != nil {
			return err
		}
		game.SetLayout(layout)
	}

	return tui.Run(game, runtimeConfig())
}
