package snake

// Snake is the player's body on the grid
type Snake struct {
	Segments  []Point // index 0 = head
	Direction Direction
}

// Head returns the head segment of the snake
func (s *Snake) Head() Point {
	return s.Segments[0]
}

// Tail returns the last segment of the snake
func (s *Snake) Tail() Point {
	return s.Segments[len(s.Segments)-1]
}

// Move advances the snake one cell in its current direction.
// Segments shift tail-to-head so no position is overwritten before it is read.
func (s *Snake) Move(cell int) {
	for i := len(s.Segments) - 1; i > 0; i-- {
		s.Segments[i] = s.Segments[i-1]
	}
	s.Segments[0] = s.Segments[0].Add(s.Direction.Step(cell))
}

// Grow appends one segment: the tail pushed a further cell along the
// current direction of travel.
func (s *Snake) Grow(cell int) {
	s.Segments = append(s.Segments, s.Tail().Add(s.Direction.Step(cell)))
}

// contiguous reports whether each segment sits exactly one cell from the next
func contiguous(segs []Point, cell int) bool {
	for i := 1; i < len(segs); i++ {
		dx := abs(segs[i].X - segs[i-1].X)
		dy := abs(segs[i].Y - segs[i-1].Y)
		if dx+dy != cell || (dx != 0 && dy != 0) {
			return false
		}
	}
	return true
}
