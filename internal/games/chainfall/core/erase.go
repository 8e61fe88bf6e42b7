package core

var neighbors = [4]Pos{{Row: -1}, {Col: 1}, {Row: 1}, {Col: -1}}

// Erase scans the board row by row and marks every 4-connected group of one
// color whose size reaches the threshold. All qualifying groups of a scan are
// marked together. If any group was marked the erase animation starts and
// Erase reports true; otherwise the board is left untouched.
func (g *Grid) Erase() bool {
	g.visited.Clear()
	found := false

	for r := 0; r < g.cfg.Height; r++ {
		for c := 0; c < g.cfg.Width; c++ {
			start := P(r, c)
			if _, seen := g.visited.Get(g.index(start)); seen {
				continue
			}
			cell := g.at(start)
			if cell.Kind != CellColored {
				continue
			}

			group := g.collectGroup(start, cell.Color)
			if len(group) < g.cfg.Threshold {
				continue
			}
			for _, p := range group {
				g.set(p, Marked(cell.Color))
			}
			g.pending = append(g.pending, group...)
			g.stats.Groups++
			g.stats.Erased += len(group)
			found = true
		}
	}

	if found {
		g.eraseTimer = g.cfg.EraseDuration
		g.phase = PhaseErasing
	}
	return found
}

// collectGroup runs a breadth-first search from start over colored cells of
// the same color. The returned slice doubles as the BFS queue.
func (g *Grid) collectGroup(start Pos, color Color) []Pos {
	group := []Pos{start}
	g.visited.Put(g.index(start), struct{}{})

	for head := 0; head < len(group); head++ {
		cur := group[head]
		for _, d := range neighbors {
			next := P(cur.Row+d.Row, cur.Col+d.Col)
			if !g.InBounds(next) {
				continue
			}
			idx := g.index(next)
			if _, seen := g.visited.Get(idx); seen {
				continue
			}
			cell := g.cells[idx]
			if cell.Kind != CellColored || cell.Color != color {
				continue
			}
			g.visited.Put(idx, struct{}{})
			group = append(group, next)
		}
	}
	return group
}

// clearMarked empties the cells of the pending clear set and drains it.
func (g *Grid) clearMarked() {
	for _, p := range g.pending {
		if g.at(p).Kind == CellMarked {
			g.set(p, Empty())
		}
	}
	g.pending = g.pending[:0]
}
