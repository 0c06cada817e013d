// Package tui runs games in a terminal with Bubble Tea, locally or over SSH.
// It paces ticks, turns key presses into held actions, draws the screen
// buffer and saves finished runs.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the model that scheduled it, so a tick still in flight
// after a model is replaced does not drive its successor.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGen atomic.Uint64

func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd schedules the next tick one tick duration from now.
func tickCmd(cfg core.RuntimeConfig, gen uint64) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
