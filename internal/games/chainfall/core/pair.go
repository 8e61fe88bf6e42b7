package core

// Orientation is the shape of a falling pair.
type Orientation uint8

const (
	Horizontal Orientation = iota // Occupies (r,c) and (r,c+1)
	Vertical                      // Occupies (r,c) and (r+1,c)
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Pair is the two-cell piece currently falling. Colors[0] belongs to the anchor
// cell and Colors[1] to the second cell.
type Pair struct {
	Row    int
	Col    int
	Orient Orientation
	Colors [2]Color
}

// Cells returns the two positions the pair occupies, anchor first.
func (p Pair) Cells() [2]Pos {
	anchor := P(p.Row, p.Col)
	if p.Orient == Vertical {
		return [2]Pos{anchor, P(p.Row+1, p.Col)}
	}
	return [2]Pos{anchor, P(p.Row, p.Col+1)}
}
