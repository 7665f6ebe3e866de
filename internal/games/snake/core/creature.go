package core

import (
	"errors"
	"fmt"

	"github.com/gammazero/deque"
)

// Creature is the snake: an ordered body (head at the front, tail at the back)
// and a heading. It mutates the Grid it is placed on as it moves.
type Creature struct {
	body    deque.Deque[Coord]
	heading Direction

	// onFood records that the last move landed the head on a Food cell.
	// The move overwrites that cell with CellHead, so the grid alone cannot
	// answer OccupiesFood afterwards.
	onFood bool
}

// NewCreature creates a single-segment creature at start.
// It is not on any grid until PlaceOnGrid is called.
func NewCreature(start Coord, heading Direction) *Creature {
	c := &Creature{heading: heading}
	c.body.PushBack(start)
	return c
}

// NewCreatureFromBody creates a creature from an explicit body, head first.
// Segments must be unique and grid-adjacent to their neighbours.
func NewCreatureFromBody(heading Direction, body []Coord) (*Creature, error) {
	if len(body) == 0 {
		return nil, errors.New("creature: empty body")
	}
	seen := make(map[Coord]bool, len(body))
	c := &Creature{heading: heading}
	for i, seg := range body {
		if seen[seg] {
			return nil, fmt.Errorf("creature: segment %v repeated", seg)
		}
		if i > 0 && !seg.Adjacent(body[i-1]) {
			return nil, fmt.Errorf("creature: segment %v not adjacent to %v", seg, body[i-1])
		}
		seen[seg] = true
		c.body.PushBack(seg)
	}
	return c, nil
}

// PlaceOnGrid writes the creature's cells: CellHead for the head and
// CellBody for every other segment.
func (c *Creature) PlaceOnGrid(g *Grid) error {
	for i := 0; i < c.body.Len(); i++ {
		t := CellBody
		if i == 0 {
			t = CellHead
		}
		if err := g.Set(c.body.At(i), t); err != nil {
			return fmt.Errorf("place creature: %w", err)
		}
	}
	return nil
}

// Rotate changes the heading unless d is the exact reverse of the current
// heading. A rejected reversal is silently ignored.
func (c *Creature) Rotate(d Direction) {
	if d == c.heading.Opposite() {
		return
	}
	c.heading = d
}

// Advance slides the body one cell forward; the length is unchanged.
func (c *Creature) Advance(g *Grid) error {
	return c.move(g, false)
}

// GrowAndAdvance moves the head forward and keeps the tail, growing by one.
func (c *Creature) GrowAndAdvance(g *Grid) error {
	return c.move(g, true)
}

// move performs one step. On a collision nothing is mutated.
func (c *Creature) move(g *Grid, grow bool) error {
	head := c.body.Front()
	next := head.Step(c.heading)

	if !g.InBounds(next) {
		return fmt.Errorf("%w: %v moving %s", ErrCollisionWall, next, c.heading)
	}
	target, err := g.Get(next)
	if err != nil {
		return err
	}

	// The tail leaves its cell in the same step unless the creature grows.
	tail := c.body.Back()
	vacated := !grow && next == tail
	if target == CellBody && !vacated {
		return fmt.Errorf("%w: %v moving %s", ErrCollisionSelf, next, c.heading)
	}

	if grow {
		if err := g.Set(head, CellBody); err != nil {
			return err
		}
	} else {
		c.body.PopBack()
		if c.body.Len() > 0 {
			if err := g.Set(head, CellBody); err != nil {
				return err
			}
		}
		if err := g.Set(tail, CellEmpty); err != nil {
			return err
		}
	}

	if err := g.Set(next, CellHead); err != nil {
		return err
	}
	c.body.PushFront(next)
	c.onFood = target == CellFood
	return nil
}

// OccupiesFood reports whether the head is standing on food.
func (c *Creature) OccupiesFood(g *Grid) bool {
	if t, err := g.Get(c.Head()); err == nil && t == CellFood {
		return true
	}
	return c.onFood
}

// Head returns the first segment.
func (c *Creature) Head() Coord {
	return c.body.Front()
}

// Tail returns the last segment.
func (c *Creature) Tail() Coord {
	return c.body.Back()
}

// Len returns the number of segments.
func (c *Creature) Len() int {
	return c.body.Len()
}

// Heading returns the current direction of travel.
func (c *Creature) Heading() Direction {
	return c.heading
}

// Body returns a copy of the segments, head first.
func (c *Creature) Body() []Coord {
	out := make([]Coord, c.body.Len())
	for i := range out {
		out[i] = c.body.At(i)
	}
	return out
}
