package core

// State names the phase of a simulation.
type State string

const (
	StatePlaying State = "playing"
	StateDead    State = "dead"
	StateCleared State = "cleared"
)

// Snapshot captures the simulation state for determinism testing.
type Snapshot struct {
	Steps     uint64
	Length    int
	HeadX     int
	HeadY     int
	Heading   Direction
	FoodX     int
	FoodY     int
	FoodEaten int
	TickDelay float64
	State     State
}

// Snapshot returns the current simulation snapshot.
func (s *Simulation) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case s.dead:
		state = StateDead
	case s.cleared:
		state = StateCleared
	}

	head := s.creature.Head()
	return Snapshot{
		Steps:     s.steps,
		Length:    s.creature.Len(),
		HeadX:     head.X,
		HeadY:     head.Y,
		Heading:   s.creature.Heading(),
		FoodX:     s.food.X,
		FoodY:     s.food.Y,
		FoodEaten: s.foodEaten,
		TickDelay: s.tickDelay,
		State:     state,
	}
}
