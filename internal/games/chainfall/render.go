package chainfall

import (
	"fmt"

	"github.com/vovakirdan/chainfall/internal/core"
	chaincore "github.com/vovakirdan/chainfall/internal/games/chainfall/core"
)

// Visual constants
const (
	cellWidth  = 2 // Screen columns per board cell
	hudWidth   = 22
	hudGap     = 2
	flashEvery = 3 // Ticks per flash phase of marked cells

	BlockChar  = '█'
	MarkChar   = '▒'
	EmptyChar  = '·'
	BorderSize = 1
)

// Render draws the board, its frame and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.grid == nil {
		dst.DrawTextCentered(dst.Height()/2, "Starting...")
		return
	}

	snap := g.grid.Snapshot()
	boardW := snap.Width*cellWidth + 2*BorderSize
	boardH := snap.Height + 2*BorderSize

	if dst.Width() < boardW || dst.Height() < boardH {
		g.drawTooSmall(dst, boardW, boardH)
		return
	}

	totalW := boardW
	if dst.Width() >= boardW+hudGap+hudWidth {
		totalW += hudGap + hudWidth
	}
	area := dst.Bounds().CenterIn(totalW, boardH)

	frame := core.NewRect(area.X, area.Y, boardW, boardH)
	dst.DrawBox(frame, frameColor(snap))
	drawBoard(dst, frame.X+BorderSize, frame.Y+BorderSize, snap)

	if totalW > boardW {
		g.drawHUD(dst, frame.Right()+hudGap, area.Y, snap)
	} else {
		dst.DrawText(frame.X, frame.Bottom()-1, fmt.Sprintf(" chain %d ", snap.Chain))
	}
}

// drawBoard draws the matrix with the falling pair on top.
func drawBoard(dst *core.Screen, x0, y0 int, snap chaincore.Snapshot) {
	flashOn := (snap.Tick/flashEvery)%2 == 0

	for r := 0; r < snap.Height; r++ {
		for c := 0; c < snap.Width; c++ {
			x := x0 + c*cellWidth
			y := y0 + r
			cell := snap.At(chaincore.P(r, c))

			switch cell.Kind {
			case chaincore.CellColored:
				color := core.BlockColor(int(cell.Color))
				dst.SetColored(x, y, BlockChar, color)
				dst.SetColored(x+1, y, BlockChar, color)
			case chaincore.CellMarked:
				if flashOn {
					color := core.BlockColor(int(cell.Color))
					dst.SetColored(x, y, MarkChar, color)
					dst.SetColored(x+1, y, MarkChar, color)
				}
			default:
				dst.SetColored(x+1, y, EmptyChar, core.ColorGray)
			}
		}
	}
}

// drawHUD draws run information to the right of the board.
func (g *Game) drawHUD(dst *core.Screen, x, y int, snap chaincore.Snapshot) {
	cfg := g.grid.Config()

	dst.DrawTextColored(x, y, g.title, core.ColorBrightWhite)
	lines := []string{
		fmt.Sprintf("Tick      %d", snap.Tick),
		fmt.Sprintf("Phase     %s", snap.Phase),
		"",
		fmt.Sprintf("Max chain %d", snap.Stats.MaxChain),
		fmt.Sprintf("Groups    %d", snap.Stats.Groups),
		fmt.Sprintf("Erased    %d", snap.Stats.Erased),
		fmt.Sprintf("Pairs     %d", snap.Stats.Spawns),
		fmt.Sprintf("Overflows %d", snap.Stats.Overflows),
		"",
		fmt.Sprintf("Board     %dx%d", cfg.Width, cfg.Height),
		fmt.Sprintf("Colors    %d", cfg.Colors),
		fmt.Sprintf("Threshold %d", cfg.Threshold),
		fmt.Sprintf("Seed      %d", g.runtime.Seed),
	}
	if g.layout != nil {
		lines = append(lines, "Layout    "+g.layout.ID)
	}

	for i, line := range lines {
		dst.DrawText(x, y+2+i, line)
	}

	chainY := y + 2 + len(lines) + 1
	if snap.Chain > 0 {
		dst.DrawTextColored(x, chainY, fmt.Sprintf("%d CHAIN!", snap.Chain), core.ColorBrightYellow)
	}
	if g.warning != "" {
		dst.DrawTextColored(x, chainY+1, truncate(g.warning, hudWidth), core.ColorBrightRed)
	}
}

func (g *Game) drawTooSmall(dst *core.Screen, needW, needH int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Terminal too small")
	dst.DrawTextCentered(y, fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, dst.Width(), dst.Height()))
}

// frameColor highlights the frame while a chain is running.
func frameColor(snap chaincore.Snapshot) core.Color {
	switch {
	case snap.Chain >= 3:
		return core.ColorBrightMagenta
	case snap.Chain > 0:
		return core.ColorBrightYellow
	default:
		return core.ColorGray
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
