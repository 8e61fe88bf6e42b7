package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chainfall/internal/games/chainfall/core"
)

// testConfig returns a small, fast configuration for unit tests.
func testConfig(w, h int) core.Config {
	return core.Config{
		Width:         w,
		Height:        h,
		Colors:        4,
		Threshold:     4,
		DropInterval:  1,
		EraseDuration: 3,
		SpawnDelay:    2,
		Cascade:       true,
	}
}

// parseRows converts rows like "..12" into colors; '.' is empty.
func parseRows(t *testing.T, rows []string) [][]core.Color {
	t.Helper()
	out := make([][]core.Color, len(rows))
	for r, row := range rows {
		out[r] = make([]core.Color, len(row))
		for c, ch := range row {
			switch {
			case ch == '.':
			case ch >= '1' && ch <= '9':
				out[r][c] = core.Color(ch - '0')
			default:
				t.Fatalf("bad cell %q at row %d col %d", ch, r, c)
			}
		}
	}
	return out
}

// newBoard builds a grid from cfg and loads rows into it.
func newBoard(t *testing.T, cfg core.Config, seed int64, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.New(cfg, core.NewRand(seed))
	require.NoError(t, err)
	if len(rows) > 0 {
		require.NoError(t, g.Load(parseRows(t, rows)))
	}
	return g
}

// board renders the grid's matrix and pair as rows.
func board(g *core.Grid) string {
	return core.RenderBoard(g.Snapshot())
}

// tickN advances the grid n times.
func tickN(g *core.Grid, n int) {
	for range n {
		g.Tick()
	}
}

// rowsText joins rows the way RenderBoard prints them.
func rowsText(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}
