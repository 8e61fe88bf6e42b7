package core

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Grid is the board: a Height x Width matrix of cells, the optional falling
// pair and the timers of the phase state machine.
// Cells are stored in row-major order: index = row*Width + col.
// A Grid is not safe for concurrent use; readers should work from Snapshot.
type Grid struct {
	cfg   Config
	rng   Rand
	cells []Cell
	pair  *Pair
	phase Phase

	dropTimer  int // Ticks since the last pair gravity step
	genWait    int // Remaining spawn grace ticks
	eraseTimer int // Remaining erase animation ticks
	chain      int // Consecutive settle/erase cycles
	pending    []Pos

	visited *intmap.Map[int, struct{}] // Flood-fill scratch, keyed by cell index
	tick    uint64
	stats   Stats
}

// New builds an empty board. A nil rng is replaced by a source seeded with 1.
// Returns an error matching ErrInvalidConfig if cfg is not runnable.
func New(cfg Config, rng Rand) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(1)
	}
	g := &Grid{
		cfg:     cfg,
		rng:     rng,
		cells:   make([]Cell, cfg.Width*cfg.Height),
		visited: intmap.New[int, struct{}](cfg.Width * cfg.Height),
	}
	g.Reset()
	return g, nil
}

// Reset empties the board, drops the pair and clears every timer and counter.
// The random source is kept.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Empty()
	}
	g.pair = nil
	g.phase = PhaseIdle
	g.dropTimer = 0
	g.genWait = 0
	g.eraseTimer = 0
	g.chain = 0
	g.pending = g.pending[:0]
	g.tick = 0
	g.stats = Stats{}
}

// ResetSeed resets the board and replaces the random source with one seeded
// by seed, making the following run reproducible.
func (g *Grid) ResetSeed(seed int64) {
	g.rng = NewRand(seed)
	g.Reset()
}

// Load resets the board and fills it from rows of colors, top row first.
// A zero color leaves the cell empty.
func (g *Grid) Load(rows [][]Color) error {
	if len(rows) != g.cfg.Height {
		return fmt.Errorf("load: got %d rows, board has %d", len(rows), g.cfg.Height)
	}
	for r, row := range rows {
		if len(row) != g.cfg.Width {
			return fmt.Errorf("load: row %d has %d cells, board has %d", r, len(row), g.cfg.Width)
		}
		for c, color := range row {
			if int(color) > g.cfg.Colors {
				return fmt.Errorf("load: color %d at %v outside palette of %d", color, P(r, c), g.cfg.Colors)
			}
		}
	}

	g.Reset()
	for r, row := range rows {
		for c, color := range row {
			if color != 0 {
				g.set(P(r, c), Colored(color))
			}
		}
	}
	return nil
}

// Tick advances the state machine by exactly one step.
func (g *Grid) Tick() {
	g.tick++

	switch g.phase {
	case PhaseErasing:
		g.stepErasing()
	case PhaseSpawnWait:
		g.stepSpawnWait()
	case PhaseFalling:
		g.stepFalling()
	default:
		g.GenerateDrop()
	}
}

// stepErasing counts down the erase animation and, when it ends, removes the
// marked cells and looks for the next link of the chain.
func (g *Grid) stepErasing() {
	g.eraseTimer--
	if g.eraseTimer > 0 {
		return
	}

	g.clearMarked()
	g.Settle()

	if g.cfg.Cascade && g.Erase() {
		g.chain++
		g.stats.observeChain(g.chain)
		return
	}

	g.chain = 0
	g.phase = PhaseIdle
}

// stepSpawnWait counts down the spawn grace period.
func (g *Grid) stepSpawnWait() {
	if g.genWait > 0 {
		g.genWait--
	}
	if g.genWait > 0 {
		return
	}
	g.endSpawnWait()
}

// endSpawnWait starts the fall of a fresh pair, or settles the board left
// behind by an overflow relief.
func (g *Grid) endSpawnWait() {
	if g.pair != nil {
		g.dropTimer = 0
		g.phase = PhaseFalling
		return
	}
	g.resolve()
}

// stepFalling moves the pair down once every DropInterval ticks.
func (g *Grid) stepFalling() {
	g.dropTimer++
	if g.dropTimer < g.cfg.DropInterval {
		return
	}
	g.dropTimer = 0

	if g.dropPair() == dropLocked {
		g.resolve()
	}
}

// resolve settles the board after a lock or relief and seeds a chain if a
// qualifying group formed. Otherwise the next tick spawns.
func (g *Grid) resolve() {
	g.Settle()
	if g.Erase() {
		g.chain = 1
		g.stats.observeChain(g.chain)
		return
	}
	g.chain = 0
	g.phase = PhaseIdle
}

// Config returns the board configuration.
func (g *Grid) Config() Config {
	return g.cfg
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.cfg.Width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.cfg.Height
}

// Phase returns the current state machine phase.
func (g *Grid) Phase() Phase {
	return g.phase
}

// Chain returns the current chain count.
func (g *Grid) Chain() int {
	return g.chain
}

// Ticks returns the number of ticks since the last reset.
func (g *Grid) Ticks() uint64 {
	return g.tick
}

// Stats returns the counters accumulated since the last reset.
func (g *Grid) Stats() Stats {
	return g.stats
}

// Pair returns a copy of the falling pair and whether one is active.
func (g *Grid) Pair() (Pair, bool) {
	if g.pair == nil {
		return Pair{}, false
	}
	return *g.pair, true
}

// Pending returns a copy of the positions waiting to be cleared.
func (g *Grid) Pending() []Pos {
	out := make([]Pos, len(g.pending))
	copy(out, g.pending)
	return out
}

// InBounds reports whether p lies on the board.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.cfg.Height && p.Col >= 0 && p.Col < g.cfg.Width
}

// Cell returns the settled cell at p. Out-of-bounds positions read as empty.
// The falling pair is not part of the matrix.
func (g *Grid) Cell(p Pos) Cell {
	if !g.InBounds(p) {
		return Empty()
	}
	return g.at(p)
}

// CountColor returns the number of colored or marked cells of color c.
func (g *Grid) CountColor(c Color) int {
	n := 0
	for _, cell := range g.cells {
		if !cell.IsEmpty() && cell.Color == c {
			n++
		}
	}
	return n
}

// FilledCount returns the number of non-empty cells in the matrix.
func (g *Grid) FilledCount() int {
	n := 0
	for _, cell := range g.cells {
		if !cell.IsEmpty() {
			n++
		}
	}
	return n
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.cfg.Width + p.Col
}

func (g *Grid) at(p Pos) Cell {
	return g.cells[g.index(p)]
}

func (g *Grid) set(p Pos, c Cell) {
	g.cells[g.index(p)] = c
}
