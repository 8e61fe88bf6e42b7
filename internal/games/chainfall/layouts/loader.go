// Package layouts loads pre-built chainfall boards from YAML files.
package layouts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/chainfall/internal/games/chainfall/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall/layouts/formats"
)

// Layout is a pre-built board.
type Layout struct {
	formats.Layout
	FilePath string
}

// ParseError is returned for malformed layout files.
type ParseError = formats.ParseError

// NewGrid builds a grid sized for the layout from cfg and loads the board.
func (l *Layout) NewGrid(cfg core.Config, rng core.Rand) (*core.Grid, error) {
	g, err := core.New(l.Config(cfg), rng)
	if err != nil {
		return nil, err
	}
	if err := g.Load(l.Rows); err != nil {
		return nil, err
	}
	return g, nil
}

// FromRows builds a layout from stored row strings.
func FromRows(id, name string, colors int, rows []string) (Layout, error) {
	parsed, err := formats.Build(id, name, colors, rows)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Layout: parsed}, nil
}

// SkippedFile is a layout file LoadAll could not use.
type SkippedFile struct {
	Path string
	Err  error
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string

	// Skipped lists the invalid files of the last LoadAll.
	Skipped []SkippedFile
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Invalid files are skipped and recorded in Skipped. Returns layouts
// sorted by ID.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout
	l.Skipped = nil

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		layout, err := l.LoadFile(path)
		if err != nil {
			l.Skipped = append(l.Skipped, SkippedFile{Path: path, Err: err})
			return nil
		}

		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})

	return layouts, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Layout{Layout: parsed, FilePath: path}, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}

	for _, layout := range layouts {
		if layout.ID == id {
			return layout, nil
		}
	}

	return Layout{}, fmt.Errorf("layout not found: %s", id)
}

// Load reads layouts from path, which may be a single file or a directory.
// For a directory, invalid files are returned as skipped rather than failing
// the whole load.
func Load(path string) ([]Layout, []SkippedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	loader := NewLoader(path)
	if info.IsDir() {
		layouts, err := loader.LoadAll()
		return layouts, loader.Skipped, err
	}
	layout, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return []Layout{layout}, nil, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Layout, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Layout{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
