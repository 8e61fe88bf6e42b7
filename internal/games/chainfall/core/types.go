// Package core implements the chainfall simulation: a board that spawns two-cell
// pairs, drops them on a fixed tick, settles loose cells and erases connected
// same-colored groups with chain counting.
// This package is UI-agnostic and deterministic for a given random source.
package core

import "fmt"

// Color is a palette index in [1, K]. Zero is never a valid block color.
type Color uint8

// CellKind tags the state of a board cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellColored
	CellMarked // Scheduled for removal when the erase window ends
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellColored:
		return "colored"
	case CellMarked:
		return "marked"
	default:
		return "unknown"
	}
}

// Cell is a single board cell. Color is meaningful only when Kind is not CellEmpty;
// a marked cell keeps the color it had so renderers can flash it.
type Cell struct {
	Kind  CellKind
	Color Color
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Colored returns a settled cell of the given color.
func Colored(c Color) Cell {
	return Cell{Kind: CellColored, Color: c}
}

// Marked returns a cell of the given color that is waiting to be cleared.
func Marked(c Color) Cell {
	return Cell{Kind: CellMarked, Color: c}
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Pos is a board position. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Below returns the position one row down.
func (p Pos) Below() Pos {
	return Pos{Row: p.Row + 1, Col: p.Col}
}

// Phase is the state of the tick state machine.
type Phase uint8

const (
	PhaseIdle      Phase = iota // No pair; a spawn runs on the next tick
	PhaseSpawnWait              // Grace period after a spawn or overflow relief
	PhaseFalling                // A pair is dropping on the drop interval
	PhaseErasing                // Marked cells are animating before removal
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpawnWait:
		return "spawn_wait"
	case PhaseFalling:
		return "falling"
	case PhaseErasing:
		return "erasing"
	default:
		return "unknown"
	}
}
