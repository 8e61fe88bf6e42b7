package core

import (
	"fmt"
	"strings"
)

// ColorRune returns the character used for color c in ASCII output:
// '1'..'9' then 'a'..'z'.
func ColorRune(c Color) rune {
	switch {
	case c >= 1 && c <= 9:
		return rune('0' + c)
	case c >= 10 && c <= 35:
		return rune('a' + c - 10)
	default:
		return '?'
	}
}

// RenderASCII returns a text dump of a snapshot, used for debugging, the
// headless runner and golden-style tests.
//
// Format:
//   - '.' empty, color digits for settled cells, '*' marked cells
//   - the falling pair is drawn over the matrix with its colors
//   - a header line with tick, phase and chain
func RenderASCII(s Snapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Tick: %d | Phase: %s | Chain: %d | Max chain: %d\n",
		s.Tick, s.Phase, s.Chain, s.Stats.MaxChain))
	sb.WriteString(strings.Repeat("-", s.Width) + "\n")
	sb.WriteString(RenderBoard(s))
	sb.WriteString(strings.Repeat("-", s.Width) + "\n")

	return sb.String()
}

// RenderBoard returns only the board rows of a snapshot, one line per row.
func RenderBoard(s Snapshot) string {
	var sb strings.Builder
	sb.Grow((s.Width + 1) * s.Height)

	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			sb.WriteRune(cellRune(s.At(P(r, c))))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func cellRune(c Cell) rune {
	switch c.Kind {
	case CellColored:
		return ColorRune(c.Color)
	case CellMarked:
		return '*'
	default:
		return '.'
	}
}
