package game

import "fmt"

// Direction is a single-cell move on the grid. Up decreases y.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ParseDirection accepts exactly "up", "down", "left" or "right".
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return d, nil
	}
	return "", fmt.Errorf("%w: invalid direction %q (use up, down, left or right)", ErrInvalidArgument, s)
}

// Delta returns the coordinate offset for d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	return 0, 0
}
