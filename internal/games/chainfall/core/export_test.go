package core

// Resolve runs the settle-and-detect step that follows a lock.
func (g *Grid) Resolve() {
	g.resolve()
}

// PlacePair installs p as the falling pair and switches to phase.
func (g *Grid) PlacePair(p Pair, phase Phase) {
	g.pair = &p
	g.phase = phase
	g.dropTimer = 0
}

// DropPair runs a single pair gravity step and reports whether the pair locked.
func (g *Grid) DropPair() bool {
	return g.dropPair() == dropLocked
}
