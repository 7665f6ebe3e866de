// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the model that scheduled it, so ticks left over from a
// finished game cannot drive a new one.
type TickMsg struct {
	Loop uint64
	Time time.Time
}

var loops atomic.Uint64

// nextLoop returns a new tick loop identifier.
func nextLoop() uint64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}
