package core

import (
	"errors"
	"fmt"
	"math/rand"
)

// Renderer receives the grid after every successful step and once at
// creation. The grid is live; renderers that keep it must Clone it.
type Renderer interface {
	Render(g *Grid)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(g *Grid)

// Render calls f(g).
func (f RendererFunc) Render(g *Grid) {
	f(g)
}

type nopRenderer struct{}

func (nopRenderer) Render(*Grid) {}

// Config holds the parameters of one game session.
type Config struct {
	Width          int
	Height         int
	InitialDelay   float64   // Ticks to coalesce into one step at the start
	SpeedIncrement float64   // Subtracted from the delay per food eaten
	Start          *Coord    // Nil places the creature at the grid centre
	Heading        Direction // Initial direction of travel, right if unset
	Seed           int64     // RNG seed for food placement

	// MaxFoodAttempts caps random sampling before falling back to a scan.
	// Zero means 4 * Width * Height.
	MaxFoodAttempts int
}

// Simulation owns the grid and the creature and advances them in steps.
// It is not safe for concurrent use; the host delivers events one at a time.
type Simulation struct {
	grid     *Grid
	creature *Creature
	rng      *rand.Rand
	renderer Renderer
	onDeath  func(cause error)

	tickDelay       float64
	tickAccumulator int
	speedIncrement  float64
	maxFoodAttempts int

	food      Coord
	foodEaten int
	steps     uint64
	dead      bool
	cleared   bool
	cause     error
}

// NewSimulation builds the grid, places the creature and the first food,
// and renders once.
func NewSimulation(cfg Config, r Renderer) (*Simulation, error) {
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = nopRenderer{}
	}

	start := C(cfg.Width/2, cfg.Height/2)
	if cfg.Start != nil {
		start = *cfg.Start
	}

	attempts := cfg.MaxFoodAttempts
	if attempts <= 0 {
		attempts = 4 * cfg.Width * cfg.Height
	}

	s := &Simulation{
		grid:            grid,
		creature:        NewCreature(start, cfg.Heading),
		rng:             rand.New(rand.NewSource(cfg.Seed)),
		renderer:        r,
		tickDelay:       max(0, cfg.InitialDelay),
		speedIncrement:  cfg.SpeedIncrement,
		maxFoodAttempts: attempts,
	}

	if err := s.creature.PlaceOnGrid(grid); err != nil {
		return nil, err
	}
	if err := s.placeFood(); err != nil {
		return nil, err
	}

	s.renderer.Render(s.grid)
	return s, nil
}

// OnDeath registers a callback fired once when the creature dies.
func (s *Simulation) OnDeath(fn func(cause error)) {
	s.onDeath = fn
}

// OnInput turns the creature and steps immediately.
// It does nothing once the game is over.
func (s *Simulation) OnInput(d Direction) error {
	if s.IsOver() {
		return nil
	}
	s.creature.Rotate(d)
	return s.step()
}

// OnTick counts one external tick and steps when the accumulated count
// reaches the current delay. It does nothing once the game is over.
func (s *Simulation) OnTick() error {
	if s.IsOver() {
		return nil
	}
	s.tickAccumulator++
	if s.tickAccumulator < int(s.tickDelay) {
		return nil
	}
	s.tickAccumulator = 0
	return s.step()
}

// step applies one movement and its consequences.
// Collisions are absorbed into the dead state and never returned.
func (s *Simulation) step() error {
	var err error
	ate := s.creature.OccupiesFood(s.grid)
	if ate {
		err = s.creature.GrowAndAdvance(s.grid)
	} else {
		err = s.creature.Advance(s.grid)
	}

	if err != nil {
		if IsCollision(err) {
			s.die(err)
			return nil
		}
		return err
	}
	s.steps++

	if ate {
		s.foodEaten++
		s.tickDelay = max(0, s.tickDelay-s.speedIncrement)
		if err := s.placeFood(); err != nil {
			if errors.Is(err, ErrNoFreeCell) {
				s.cleared = true
				s.renderer.Render(s.grid)
			}
			return err
		}
	}

	s.renderer.Render(s.grid)
	return nil
}

func (s *Simulation) die(cause error) {
	s.dead = true
	s.cause = cause
	if s.onDeath != nil {
		fn := s.onDeath
		s.onDeath = nil
		fn(cause)
	}
}

// placeFood puts food on a random empty cell. Random sampling is capped at
// maxFoodAttempts, after which empty cells are scanned in row-major order.
func (s *Simulation) placeFood() error {
	w, h := s.grid.Width(), s.grid.Height()
	for i, n := 0, s.maxFoodAttempts; i < n; i++ {
		c := C(s.rng.Intn(w), s.rng.Intn(h))
		if t, _ := s.grid.Get(c); t == CellEmpty {
			return s.setFood(c)
		}
	}

	empty := s.grid.Coords(CellEmpty)
	if len(empty) == 0 {
		return fmt.Errorf("%w: %dx%d grid is full", ErrNoFreeCell, w, h)
	}
	return s.setFood(empty[0])
}

func (s *Simulation) setFood(c Coord) error {
	if err := s.grid.Set(c, CellFood); err != nil {
		return err
	}
	s.food = c
	return nil
}

// Grid returns the live grid. Callers must not write to it.
func (s *Simulation) Grid() *Grid {
	return s.grid
}

// Creature returns the simulated creature.
func (s *Simulation) Creature() *Creature {
	return s.creature
}

// Len returns the creature's segment count, which is also the score.
func (s *Simulation) Len() int {
	return s.creature.Len()
}

// TickDelay returns the current number of ticks per step.
func (s *Simulation) TickDelay() float64 {
	return s.tickDelay
}

// Food returns the coordinate of the most recently placed food.
func (s *Simulation) Food() Coord {
	return s.food
}

// FoodEaten returns how many times the creature has grown.
func (s *Simulation) FoodEaten() int {
	return s.foodEaten
}

// Steps returns the number of successful steps.
func (s *Simulation) Steps() uint64 {
	return s.steps
}

// IsDead reports whether the creature has collided.
func (s *Simulation) IsDead() bool {
	return s.dead
}

// Cause returns the collision that killed the creature, or nil.
func (s *Simulation) Cause() error {
	return s.cause
}

// IsCleared reports whether the board filled up after eating.
func (s *Simulation) IsCleared() bool {
	return s.cleared
}

// IsOver reports whether the simulation is frozen.
func (s *Simulation) IsOver() bool {
	return s.dead || s.cleared
}
