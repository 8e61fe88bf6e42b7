package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/games/chainfall/layouts"
	"github.com/vovakirdan/chainfall/internal/platform/tui"
	"github.com/vovakirdan/chainfall/internal/storage"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage stored board layouts",
	Long: `Board layouts are pre-built boards a run can start from. They are
written as YAML files and imported into the layouts database.

  id: tower
  name: Tower
  colors: 4
  rows:
    - "......"
    - "..12.."
    - ".1122."

'.' is an empty cell, 1-9 then a-z are colors.

Examples:
  chainfall layouts import ./layouts
  chainfall layouts list
  chainfall layouts show tower
  chainfall layouts delete tower
  chainfall layouts browse`,
}

var layoutsImportCmd = &cobra.Command{
	Use:   "import <file|dir>",
	Short: "Import layout files into the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsImport,
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutsList,
}

var layoutsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsShow,
}

var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsDelete,
}

var layoutsBrowseCmd = &cobra.Command{
	Use:   "browse [variant]",
	Short: "Browse stored layouts and watch one",
	Long: `Opens a table of stored layouts with a preview. Enter watches the
highlighted layout, x deletes it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayoutsBrowse,
}

func init() {
	layoutsCmd.AddCommand(layoutsImportCmd)
	layoutsCmd.AddCommand(layoutsListCmd)
	layoutsCmd.AddCommand(layoutsShowCmd)
	layoutsCmd.AddCommand(layoutsDeleteCmd)
	layoutsCmd.AddCommand(layoutsBrowseCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("could not open layouts database: %w", err)
	}
	return store, nil
}

func runLayoutsImport(cmd *cobra.Command, args []string) error {
	logger := newLogger("chainfall-layouts")

	found, skipped, err := layouts.Load(args[0])
	if err != nil {
		return err
	}
	for _, s := range skipped {
		logger.Warn("skipped layout file", "file", s.Path, "error", s.Err)
	}
	if len(found) == 0 {
		return fmt.Errorf("no valid layouts found in %s", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, layout := range found {
		if err := store.SaveLayout(layout.Record()); err != nil {
			return fmt.Errorf("saving %s: %w", layout.ID, err)
		}
		logger.Debug("imported", "id", layout.ID, "file", layout.FilePath)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d layout(s).\n", len(found))
	if len(skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d invalid file(s).\n", len(skipped))
	}
	return nil
}

func runLayoutsList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Layouts()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No layouts stored. Use 'chainfall layouts import <file|dir>'.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, rec := range records {
		maxIDLen = max(maxIDLen, len(rec.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Size", "Colors", "Name")
	fmt.Fprintf(out, "  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----")
	for _, rec := range records {
		size := fmt.Sprintf("%dx%d", rec.Width, rec.Height)
		fmt.Fprintf(out, "  %-*s  %-7s  %-6d  %s\n", maxIDLen, rec.ID, size, rec.Colors, rec.Name)
	}
	return nil
}

func runLayoutsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Layout(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("layout %q not found", args[0])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", rec.Name, rec.ID)
	fmt.Fprintf(out, "Size: %dx%d, colors: %d, updated %s\n",
		rec.Width, rec.Height, rec.Colors, rec.UpdatedAt.Format("2006-01-02 15:04"))
	keys := make([]string, 0, len(rec.Metadata))
	for k := range rec.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, rec.Metadata[k])
	}
	fmt.Fprintln(out, strings.Join(rec.Rows, "\n"))
	return nil
}

func runLayoutsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.DeleteLayout(args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("layout %q not found", args[0])
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
	return nil
}

// runLayoutsBrowse shows the browser, then watches the chosen layout.
// The optional argument picks the variant to watch it with.
func runLayoutsBrowse(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	id, err := tui.RunLayoutBrowser(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		store.Close()
		return err
	}
	if id == "" {
		return store.Close()
	}

	rec, err := store.Layout(id)
	store.Close()
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("layout %q not found", id)
	}

	layout, err := layouts.FromRecord(*rec)
	if err != nil {
		return fmt.Errorf("stored layout %s: %w", id, err)
	}

	game, err := newGame(variantArg(args))
	if err != nil {
		return err
	}
	game.SetLayout(&layout)
	return tui.Run(game, cfg)
}
