package core

type dropResult uint8

const (
	dropIdle   dropResult = iota // No pair to move
	dropMoved                    // Pair moved down one row
	dropLocked                   // Pair written into the matrix
	dropReset                    // Pair was out of bounds; board cleared
)

// dropPair runs one gravity step for the falling pair. Both cells move
// together or the pair locks in place; the two-cell shape never splits here.
func (g *Grid) dropPair() dropResult {
	if g.pair == nil {
		return dropIdle
	}
	cells := g.pair.Cells()

	for _, p := range cells {
		if !g.InBounds(p) {
			g.clearBoard()
			return dropReset
		}
	}

	for _, p := range cells {
		below := p.Below()
		if g.InBounds(below) && g.at(below).IsEmpty() {
			continue
		}
		for i, cell := range cells {
			g.set(cell, Colored(g.pair.Colors[i]))
		}
		g.pair = nil
		g.stats.Locks++
		return dropLocked
	}

	g.pair.Row++
	return dropMoved
}

// clearBoard wipes the matrix after an impossible pair position and requests
// a fresh spawn.
func (g *Grid) clearBoard() {
	for i := range g.cells {
		g.cells[i] = Empty()
	}
	g.pair = nil
	g.pending = g.pending[:0]
	g.eraseTimer = 0
	g.chain = 0
	g.phase = PhaseIdle
	g.stats.Resets++
}

// SettleStep runs one bottom-up pass over the settled cells, moving each cell
// that has an empty cell below it down one row. Reports whether anything moved.
func (g *Grid) SettleStep() bool {
	moved := false
	for r := g.cfg.Height - 2; r >= 0; r-- {
		for c := 0; c < g.cfg.Width; c++ {
			from := P(r, c)
			cell := g.at(from)
			if cell.IsEmpty() {
				continue
			}
			to := from.Below()
			if !g.at(to).IsEmpty() {
				continue
			}
			g.set(to, cell)
			g.set(from, Empty())
			moved = true
		}
	}
	return moved
}

// Settle repeats SettleStep until no cell moves and returns the number of
// passes that moved something.
func (g *Grid) Settle() int {
	passes := 0
	for g.SettleStep() {
		passes++
	}
	return passes
}
