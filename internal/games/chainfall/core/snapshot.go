package core

// Stats counts simulation events since the last reset.
type Stats struct {
	Spawns    int // Pairs placed
	Locks     int // Pairs absorbed into the matrix
	Groups    int // Qualifying groups marked
	Erased    int // Cells marked for removal
	MaxChain  int // Longest chain seen
	Overflows int // Overflow reliefs
	Relieved  int // Cells removed by overflow reliefs
	Resets    int // Defensive board clears
}

func (s *Stats) observeChain(chain int) {
	if chain > s.MaxChain {
		s.MaxChain = chain
	}
}

// Snapshot is an immutable copy of the board for renderers.
type Snapshot struct {
	Tick    uint64
	Width   int
	Height  int
	Cells   [][]Cell // Cells[row][col]
	Pair    *Pair    // nil when no pair is active
	Chain   int
	Phase   Phase
	Pending int // Number of marked cells
	Stats   Stats
}

// Snapshot copies the current state. The result shares no memory with the grid.
func (g *Grid) Snapshot() Snapshot {
	cells := make([][]Cell, g.cfg.Height)
	for r := range cells {
		row := make([]Cell, g.cfg.Width)
		copy(row, g.cells[r*g.cfg.Width:(r+1)*g.cfg.Width])
		cells[r] = row
	}

	var pair *Pair
	if g.pair != nil {
		p := *g.pair
		pair = &p
	}

	return Snapshot{
		Tick:    g.tick,
		Width:   g.cfg.Width,
		Height:  g.cfg.Height,
		Cells:   cells,
		Pair:    pair,
		Chain:   g.chain,
		Phase:   g.phase,
		Pending: len(g.pending),
		Stats:   g.stats,
	}
}

// At returns the cell shown at p: the pair's color if the pair covers p,
// otherwise the matrix cell. Out-of-bounds positions read as empty.
func (s Snapshot) At(p Pos) Cell {
	if s.Pair != nil {
		cells := s.Pair.Cells()
		for i, pc := range cells {
			if pc == p {
				return Colored(s.Pair.Colors[i])
			}
		}
	}
	if p.Row < 0 || p.Row >= s.Height || p.Col < 0 || p.Col >= s.Width {
		return Empty()
	}
	return s.Cells[p.Row][p.Col]
}
