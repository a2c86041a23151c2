package snake

// Occupancy is a cell-keyed set of grid positions used for collision and
// food placement queries.
type Occupancy struct {
	cells    map[Point]struct{}
	cellSize int
}

// NewOccupancy creates an empty occupancy set
func NewOccupancy(cellSize int) *Occupancy {
	return &Occupancy{
		cells:    make(map[Point]struct{}),
		cellSize: cellSize,
	}
}

// Clear resets all cells
func (o *Occupancy) Clear() {
	clear(o.cells)
}

func (o *Occupancy) keyFor(p Point) Point {
	return Point{X: floorDiv(p.X, o.cellSize), Y: floorDiv(p.Y, o.cellSize)}
}

// Insert marks the cell holding p
func (o *Occupancy) Insert(p Point) {
	o.cells[o.keyFor(p)] = struct{}{}
}

// InsertBody adds snake body segments, skipping the head
func (o *Occupancy) InsertBody(s *Snake) {
	for i := 1; i < len(s.Segments); i++ {
		o.Insert(s.Segments[i])
	}
}

// Contains reports whether the cell holding p is marked
func (o *Occupancy) Contains(p Point) bool {
	_, ok := o.cells[o.keyFor(p)]
	return ok
}

// Len returns the number of marked cells
func (o *Occupancy) Len() int {
	return len(o.cells)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
