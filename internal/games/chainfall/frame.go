package chainfall

import (
	chaincore "github.com/vovakirdan/chainfall/internal/games/chainfall/core"
)

// Frame is a snapshot encoded with primitive types for streaming.
// Rows use the layout alphabet: '.' empty, color characters for settled
// cells, '*' for marked cells. The pair is reported separately.
type Frame struct {
	Tick     uint64     `json:"tick"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Phase    string     `json:"phase"`
	Chain    int        `json:"chain"`
	MaxChain int        `json:"max_chain"`
	Rows     []string   `json:"rows"`
	Pair     *FramePair `json:"pair,omitempty"`
	Pending  int        `json:"pending"`
	Erased   int        `json:"erased"`
}

// FramePair is the falling pair of a frame.
type FramePair struct {
	Cells  [2][2]int `json:"cells"` // [row, col] of each cell
	Colors [2]int    `json:"colors"`
}

// NewFrame encodes a snapshot.
func NewFrame(s chaincore.Snapshot) Frame {
	f := Frame{
		Tick:     s.Tick,
		Width:    s.Width,
		Height:   s.Height,
		Phase:    s.Phase.String(),
		Chain:    s.Chain,
		MaxChain: s.Stats.MaxChain,
		Rows:     make([]string, s.Height),
		Pending:  s.Pending,
		Erased:   s.Stats.Erased,
	}

	for r, row := range s.Cells {
		buf := make([]rune, len(row))
		for c, cell := range row {
			switch cell.Kind {
			case chaincore.CellColored:
				buf[c] = chaincore.ColorRune(cell.Color)
			case chaincore.CellMarked:
				buf[c] = '*'
			default:
				buf[c] = '.'
			}
		}
		f.Rows[r] = string(buf)
	}

	if s.Pair != nil {
		cells := s.Pair.Cells()
		f.Pair = &FramePair{}
		for i, p := range cells {
			f.Pair.Cells[i] = [2]int{p.Row, p.Col}
			f.Pair.Colors[i] = int(s.Pair.Colors[i])
		}
	}

	return f
}

// Frame encodes the current board.
func (g *Game) Frame() Frame {
	return NewFrame(g.Snapshot())
}
