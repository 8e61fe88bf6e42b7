// Package formats provides board layout file parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chainfall/internal/games/chainfall/core"
)

// YAMLLayout is the YAML structure of a layout file.
//
//	id: tower
//	name: Tower
//	colors: 4
//	rows:
//	  - "...."
//	  - "11.2"
type YAMLLayout struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Colors   int               `yaml:"colors,omitempty"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Layout is a parsed board layout ready to load into a grid.
type Layout struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Colors   int
	Rows     [][]core.Color // Rows[row][col], 0 is empty
	Metadata map[string]string
}

// ParseError describes an invalid layout. Line is the 1-based source line,
// or 0 when the problem is not tied to a line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ParseYAML parses a YAML layout file.
func ParseYAML(data []byte) (Layout, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	var yl YAMLLayout
	if err := root.Decode(&yl); err != nil {
		return Layout{}, fmt.Errorf("yaml decode: %w", err)
	}

	return build(yl, rowLines(&root))
}

// Build creates a layout from row strings, as stored in the layout library.
func Build(id, name string, colors int, rows []string) (Layout, error) {
	return build(YAMLLayout{ID: id, Name: name, Colors: colors, Rows: rows}, nil)
}

func build(yl YAMLLayout, lines []int) (Layout, error) {
	lineOf := func(i int) int {
		if i < len(lines) {
			return lines[i]
		}
		return 0
	}

	if strings.TrimSpace(yl.ID) == "" {
		return Layout{}, &ParseError{Message: "missing id"}
	}
	if len(yl.Rows) == 0 {
		return Layout{}, &ParseError{Message: "no rows"}
	}

	width := len(yl.Rows[0])
	rows := make([][]core.Color, len(yl.Rows))
	maxColor := 0

	for r, text := range yl.Rows {
		if len(text) != width {
			return Layout{}, &ParseError{
				Line:    lineOf(r),
				Message: fmt.Sprintf("row %d has %d cells, expected %d", r, len(text), width),
			}
		}
		rows[r] = make([]core.Color, width)
		for c := 0; c < len(text); c++ {
			color, ok := ParseCell(text[c])
			if !ok {
				return Layout{}, &ParseError{
					Line:    lineOf(r),
					Message: fmt.Sprintf("invalid cell %q at row %d col %d", text[c], r, c),
				}
			}
			rows[r][c] = color
			maxColor = max(maxColor, int(color))
		}
	}

	colors := yl.Colors
	if colors == 0 {
		colors = max(core.DefaultColors, maxColor)
	}
	if maxColor > colors {
		return Layout{}, &ParseError{
			Message: fmt.Sprintf("color %d outside palette of %d", maxColor, colors),
		}
	}

	cfg := core.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Colors = width, len(rows), colors
	if err := cfg.Validate(); err != nil {
		return Layout{}, &ParseError{Message: err.Error()}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Layout{
		ID:       yl.ID,
		Name:     name,
		Width:    width,
		Height:   len(rows),
		Colors:   colors,
		Rows:     rows,
		Metadata: yl.Metadata,
	}, nil
}

// rowLines returns the source line of every entry of the top-level rows
// sequence.
func rowLines(root *yaml.Node) []int {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "rows" {
			continue
		}
		seq := doc.Content[i+1]
		lines := make([]int, len(seq.Content))
		for j, item := range seq.Content {
			lines[j] = item.Line
		}
		return lines
	}
	return nil
}

// ParseCell decodes one layout character: '.' is empty, '1'..'9' then
// 'a'..'z' are colors 1..35.
func ParseCell(ch byte) (core.Color, bool) {
	switch {
	case ch == '.':
		return 0, true
	case ch >= '1' && ch <= '9':
		return core.Color(ch - '0'), true
	case ch >= 'a' && ch <= 'z':
		return core.Color(ch-'a') + 10, true
	default:
		return 0, false
	}
}

// RowStrings encodes the layout rows back into layout characters.
func (l Layout) RowStrings() []string {
	out := make([]string, len(l.Rows))
	for r, row := range l.Rows {
		var sb strings.Builder
		for _, color := range row {
			if color == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteRune(core.ColorRune(color))
		}
		out[r] = sb.String()
	}
	return out
}

// Config returns cfg resized to the layout and widened to its palette.
func (l Layout) Config(cfg core.Config) core.Config {
	cfg.Width = l.Width
	cfg.Height = l.Height
	if l.Colors > cfg.Colors {
		cfg.Colors = l.Colors
	}
	return cfg
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
