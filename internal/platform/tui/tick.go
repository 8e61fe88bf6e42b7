// Package tui provides the Bubble Tea drivers for chainfall: the watch view,
// the variant menu, the layout browser and the SSH spectator server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Gen identifies the watch
// model whose loop scheduled it; other models ignore the tick.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// watchGen hands out a distinct tick generation to every watch model.
var watchGen atomic.Uint64

func nextGen() uint64 {
	return watchGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
