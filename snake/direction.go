package snake

import (
	"fmt"
	"strings"
)

// Direction is one of the four grid headings. The zero value is Right,
// the heading every new snake starts with.
type Direction uint8

const (
	Right Direction = iota
	Up
	Left
	Down
)

// Opposite returns the other half of the reversal pair
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Step is the displacement of one move of size cell in direction d.
func (d Direction) Step(cell int) Point {
	switch d {
	case Up:
		return Point{Y: cell}
	case Down:
		return Point{Y: -cell}
	case Left:
		return Point{X: -cell}
	default:
		return Point{X: cell}
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

func (d Direction) valid() bool {
	return d <= Down
}

// ParseDirection accepts full names and vi keys (hjkl).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "k":
		return Up, nil
	case "down", "j":
		return Down, nil
	case "left", "h":
		return Left, nil
	case "right", "l":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Status is the session state; Over is terminal.
type Status uint8

const (
	Running Status = iota
	Over
)

func (s Status) String() string {
	if s == Over {
		return "over"
	}
	return "running"
}

// Reason records what ended a session
type Reason uint8

const (
	NoReason Reason = iota
	SelfCollision
	OutOfBounds
)

func (r Reason) String() string {
	switch r {
	case SelfCollision:
		return "self-collision"
	case OutOfBounds:
		return "out-of-bounds"
	}
	return "none"
}
