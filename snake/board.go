package snake

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

var (
	ErrInvalidCellSize = errors.New("cell size must be positive")
	ErrInvalidExtent   = errors.New("playfield extents must be positive")
)

// Point is a position on the playfield, origin at the centre, Y pointing up.
type Point struct {
	X, Y int
}

// Add returns p moved by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Board is the fixed playfield geometry for one session.
// Positions it hands out are always multiples of CellSize.
type Board struct {
	HalfWidth  int
	HalfHeight int
	CellSize   int

	rng *rand.Rand
}

// NewBoard builds a board for a width x height playfield measured in the
// same unit as cellSize. A nil src seeds from the clock.
func NewBoard(width, height, cellSize int, src rand.Source) (*Board, error) {
	if cellSize <= 0 {
		return nil, ErrInvalidCellSize
	}
	if width/2 <= 0 || height/2 <= 0 {
		return nil, ErrInvalidExtent
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Board{
		HalfWidth:  width / 2,
		HalfHeight: height / 2,
		CellSize:   cellSize,
		rng:        rand.New(src),
	}, nil
}

// Contains reports whether p lies strictly inside the playfield.
// A head sitting exactly on the edge is out.
func (b *Board) Contains(p Point) bool {
	return abs(p.X) < b.HalfWidth && abs(p.Y) < b.HalfHeight
}

// Aligned reports whether both coordinates are multiples of the cell size
func (b *Board) Aligned(p Point) bool {
	return p.X%b.CellSize == 0 && p.Y%b.CellSize == 0
}

// RandomGridPosition draws a contained, grid-aligned position from the
// interior shrunk by margin on every side. It does not look at what is
// already on the board; callers re-roll when they need a free cell.
func (b *Board) RandomGridPosition(margin int) Point {
	return Point{
		X: b.randomAxis(b.HalfWidth, margin),
		Y: b.randomAxis(b.HalfHeight, margin),
	}
}

// randomAxis picks v in (-(half-margin), half-margin-cell] so that rounding
// up to the grid can never leave the open interval (-half, half).
func (b *Board) randomAxis(half, margin int) int {
	if margin < 0 {
		margin = 0
	}
	lo := -(half - margin) + 1
	hi := half - margin - b.CellSize
	if hi < lo {
		return 0
	}
	v := lo + b.rng.Intn(hi-lo+1)
	return ceilToCell(v, b.CellSize)
}

// ceilToCell rounds v toward +inf to a multiple of cell.
// Integer division truncates toward zero, which is already the ceiling for
// negative values.
func ceilToCell(v, cell int) int {
	q := v / cell
	if v%cell != 0 && v > 0 {
		q++
	}
	return q * cell
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
