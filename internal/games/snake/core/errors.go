package core

import "errors"

var (
	// ErrInvalidDimensions is returned when a grid is created with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrOutOfBounds is returned for any cell access outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrCollisionWall means the head would leave the grid.
	ErrCollisionWall = errors.New("collision with wall")

	// ErrCollisionSelf means the head would enter a body segment.
	ErrCollisionSelf = errors.New("collision with self")

	// ErrNoFreeCell means food cannot be placed because no cell is empty.
	ErrNoFreeCell = errors.New("no free cell")
)

// IsCollision reports whether err ends the creature's life.
func IsCollision(err error) bool {
	return errors.Is(err, ErrCollisionWall) || errors.Is(err, ErrCollisionSelf)
}
