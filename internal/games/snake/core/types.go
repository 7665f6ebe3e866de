// Package core provides the simulation engine for the Snake game: the cell
// grid, the creature's movement state machine and the tick-driven simulation.
// This package is UI-agnostic and deterministic for a given seed.
package core

import "fmt"

// Direction represents the creature's heading. The zero value is DirRight.
type Direction uint8

const (
	DirRight Direction = iota
	DirUp
	DirDown
	DirLeft
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// ParseDirection converts a config value ("up", "down", "left", "right").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	default:
		return DirRight, fmt.Errorf("unknown direction %q", s)
	}
}

// CellType is the content of a single grid cell.
type CellType uint8

const (
	CellEmpty CellType = iota
	CellBody
	CellHead
	CellFood
)

// String returns the name of the cell type.
func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellBody:
		return "body"
	case CellHead:
		return "head"
	case CellFood:
		return "food"
	default:
		return "unknown"
	}
}

// IsSnake reports whether the cell is occupied by the creature.
func (t CellType) IsSnake() bool {
	return t == CellBody || t == CellHead
}
