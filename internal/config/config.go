// Package config provides YAML-based configuration loading for the snake
// game: board size, speed ramp, start position and food placement.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-snake/internal/games/snake/core"
)

// ErrInvalid is returned by Validate for configurations that cannot be played.
var ErrInvalid = errors.New("config: invalid")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board BoardConfig `yaml:"board"`
	Speed SpeedConfig `yaml:"speed"`
	Start StartConfig `yaml:"start"`
	Food  FoodConfig  `yaml:"food"`
}

// BoardConfig defines the grid dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig defines the tick coalescing ramp.
type SpeedConfig struct {
	InitialDelay   float64 `yaml:"initial_delay"`   // Ticks per step at the start
	SpeedIncrement float64 `yaml:"speed_increment"` // Delay reduction per food eaten
	TickRate       int     `yaml:"tick_rate"`       // Host ticks per second
}

// StartConfig defines where the creature spawns. Negative coordinates
// mean the grid centre.
type StartConfig struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Heading string `yaml:"heading"`
}

// FoodConfig defines food placement parameters.
type FoodConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // 0 = 4 * width * height
}

// Validate reports the first problem that would keep the config from
// producing a playable game.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Board.Width <= 0 || c.Board.Height <= 0:
		return fmt.Errorf("%w: board %dx%d must be positive", ErrInvalid, c.Board.Width, c.Board.Height)
	case c.Board.Width*c.Board.Height < 2:
		return fmt.Errorf("%w: board %dx%d has no room for food", ErrInvalid, c.Board.Width, c.Board.Height)
	case !finite(c.Speed.InitialDelay):
		return fmt.Errorf("%w: initial_delay %v is not a finite number", ErrInvalid, c.Speed.InitialDelay)
	case !finite(c.Speed.SpeedIncrement):
		return fmt.Errorf("%w: speed_increment %v is not a finite number", ErrInvalid, c.Speed.SpeedIncrement)
	case c.Speed.InitialDelay < 0:
		return fmt.Errorf("%w: initial_delay %v is negative", ErrInvalid, c.Speed.InitialDelay)
	case c.Speed.SpeedIncrement < 0:
		return fmt.Errorf("%w: speed_increment %v is negative", ErrInvalid, c.Speed.SpeedIncrement)
	case c.Speed.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %d must be positive", ErrInvalid, c.Speed.TickRate)
	case c.Food.MaxAttempts < 0:
		return fmt.Errorf("%w: max_attempts %d is negative", ErrInvalid, c.Food.MaxAttempts)
	}
	if _, err := core.ParseDirection(c.Start.Heading); err != nil {
		return fmt.Errorf("%w: start heading: %v", ErrInvalid, err)
	}
	if c.Start.X >= c.Board.Width || c.Start.Y >= c.Board.Height {
		return fmt.Errorf("%w: start (%d,%d) outside %dx%d board",
			ErrInvalid, c.Start.X, c.Start.Y, c.Board.Width, c.Board.Height)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SimConfig converts the YAML config into simulation parameters.
// The config must have passed Validate.
func (c SnakeConfig) SimConfig(seed int64) core.Config {
	heading, _ := core.ParseDirection(c.Start.Heading)

	cfg := core.Config{
		Width:           c.Board.Width,
		Height:          c.Board.Height,
		InitialDelay:    c.Speed.InitialDelay,
		SpeedIncrement:  c.Speed.SpeedIncrement,
		Heading:         heading,
		Seed:            seed,
		MaxFoodAttempts: c.Food.MaxAttempts,
	}
	if c.Start.X >= 0 && c.Start.Y >= 0 {
		start := core.C(c.Start.X, c.Start.Y)
		cfg.Start = &start
	}
	return cfg
}

// WithBoard returns a copy of the config with a different board size.
// A start position that no longer fits is reset to the centre.
func (c SnakeConfig) WithBoard(width, height int) SnakeConfig {
	c.Board = BoardConfig{Width: width, Height: height}
	if c.Start.X >= width || c.Start.Y >= height {
		c.Start.X, c.Start.Y = -1, -1
	}
	return c
}
