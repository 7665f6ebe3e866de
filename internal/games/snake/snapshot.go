package snake

import (
	snakecore "github.com/vovakirdan/tui-snake/internal/games/snake/core"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	ID     string
	Paused bool
	Cause  string
	Sim    snakecore.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		ID:     g.id,
		Paused: g.paused,
		Cause:  g.cause,
	}
	if g.sim != nil {
		snap.Sim = g.sim.Snapshot()
	}
	return snap
}
