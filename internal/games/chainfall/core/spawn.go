package core

// GenerateDrop places a new pair in the top rows. The orientation is drawn
// uniformly among the orientations that have a free placement, then the column
// uniformly among that orientation's free columns, then two independent colors.
//
// When nothing fits, the board is overflowing: every cell of one color present
// on the board is removed and the spawn grace period still starts. The loose
// cells left behind are settled when the grace period ends.
// Returns false on the overflow path. It never fails.
func (g *Grid) GenerateDrop() bool {
	horizontal, vertical := g.spawnCandidates()

	g.chain = 0
	g.dropTimer = 0
	g.genWait = g.cfg.SpawnDelay

	var options []Orientation
	if len(horizontal) > 0 {
		options = append(options, Horizontal)
	}
	if len(vertical) > 0 {
		options = append(options, Vertical)
	}

	if len(options) == 0 {
		g.pair = nil
		g.relieveOverflow()
		if g.genWait > 0 {
			g.phase = PhaseSpawnWait
		} else {
			g.resolve()
		}
		return false
	}

	orient := options[g.rng.Intn(len(options))]
	cols := horizontal
	if orient == Vertical {
		cols = vertical
	}
	col := cols[g.rng.Intn(len(cols))]

	g.pair = &Pair{
		Row:    0,
		Col:    col,
		Orient: orient,
		Colors: [2]Color{g.randomColor(), g.randomColor()},
	}
	g.stats.Spawns++

	if g.genWait > 0 {
		g.phase = PhaseSpawnWait
	} else {
		g.phase = PhaseFalling
	}
	return true
}

// spawnCandidates returns the free anchor columns for each orientation.
func (g *Grid) spawnCandidates() (horizontal, vertical []int) {
	for c := 0; c+1 < g.cfg.Width; c++ {
		if g.at(P(0, c)).IsEmpty() && g.at(P(0, c+1)).IsEmpty() {
			horizontal = append(horizontal, c)
		}
	}
	if g.cfg.Height < 2 {
		return horizontal, nil
	}
	for c := 0; c < g.cfg.Width; c++ {
		if g.at(P(0, c)).IsEmpty() && g.at(P(1, c)).IsEmpty() {
			vertical = append(vertical, c)
		}
	}
	return horizontal, vertical
}

// relieveOverflow clears every cell of one randomly chosen color.
// The color is drawn among the colors on the board so the relief always frees
// space; an empty board falls back to the whole palette.
func (g *Grid) relieveOverflow() Color {
	present := g.presentColors()
	var color Color
	if len(present) == 0 {
		color = g.randomColor()
	} else {
		color = present[g.rng.Intn(len(present))]
	}

	removed := 0
	for i, cell := range g.cells {
		if cell.Kind == CellColored && cell.Color == color {
			g.cells[i] = Empty()
			removed++
		}
	}

	g.stats.Overflows++
	g.stats.Relieved += removed
	return color
}

// presentColors lists the colors of settled cells in ascending order.
func (g *Grid) presentColors() []Color {
	seen := make([]bool, g.cfg.Colors+1)
	for _, cell := range g.cells {
		if cell.Kind == CellColored && int(cell.Color) <= g.cfg.Colors {
			seen[cell.Color] = true
		}
	}
	var out []Color
	for c := 1; c <= g.cfg.Colors; c++ {
		if seen[c] {
			out = append(out, Color(c))
		}
	}
	return out
}

func (g *Grid) randomColor() Color {
	return Color(1 + g.rng.Intn(g.cfg.Colors))
}
