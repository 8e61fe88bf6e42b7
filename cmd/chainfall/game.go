package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/games/chainfall"
	"github.com/vovakirdan/chainfall/internal/games/chainfall/layouts"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/storage"
)

const defaultVariant = "chainfall"

// flagPreset is shared by watch and run.
var flagPreset string

// presetUsage lists the presets for the --preset help text.
func presetUsage() string {
	names := make([]string, 0, len(config.Presets()))
	for _, p := range config.Presets() {
		names = append(names, string(p))
	}
	return "Rule preset overriding the variant's: " + strings.Join(names, ", ")
}

// variantArg returns the variant named in args, or the default.
func variantArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultVariant
}

// newGame creates a chainfall variant from the registry.
func newGame(id string) (*chainfall.Game, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown variant %q, run 'chainfall list' to see available variants", id)
	}
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	cg, ok := game.(*chainfall.Game)
	if !ok {
		return nil, fmt.Errorf("variant %q is not a chainfall board", id)
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return nil, err
		}
		cg.SetPreset(preset)
	}
	return cg, nil
}

// resolveLayout finds a layout by stored ID, then as a file path, then by ID
// in the --layouts-dir directory.
func resolveLayout(ref string) (*layouts.Layout, error) {
	if store, err := storage.Open(flagDBPath); err == nil {
		defer store.Close()
		rec, err := store.Layout(ref)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			layout, err := layouts.FromRecord(*rec)
			if err != nil {
				return nil, fmt.Errorf("stored layout %s: %w", ref, err)
			}
			return &layout, nil
		}
	}

	if _, err := os.Stat(ref); err == nil {
		found, _, err := layouts.Load(ref)
		if err != nil {
			return nil, fmt.Errorf("layout %q: %w", ref, err)
		}
		if len(found) != 1 {
			return nil, fmt.Errorf("layout %q: expected one layout, found %d", ref, len(found))
		}
		return &found[0], nil
	}

	layout, err := layouts.NewLoader(flagLayoutsDir).LoadByID(ref)
	if err != nil {
		return nil, fmt.Errorf("layout %q is not stored, not a file and not in %s: %w", ref, flagLayoutsDir, err)
	}
	return &layout, nil
}
