package snake

import (
	"errors"
	"fmt"
)

// DefaultFoodAttempts bounds the food re-roll loop so a nearly full board
// still terminates.
const DefaultFoodAttempts = 64

var (
	ErrNilBoard     = errors.New("board is nil")
	ErrInvalidBody  = errors.New("invalid snake body")
	ErrInvalidFood  = errors.New("invalid food position")
	ErrInvalidInput = errors.New("invalid direction")
)

// Config tunes a new Engine. The zero value is a single segment at the
// origin heading right with randomly placed food.
type Config struct {
	Body         []Point   // head first; empty means {0,0}
	Direction    Direction // initial heading
	Food         *Point    // fixed initial food; nil rolls one
	FoodMargin   int       // keep food this far from the edges
	FoodAttempts int       // re-rolls before accepting an occupied cell
}

// Snapshot is a read-only copy of the engine state for renderers.
type Snapshot struct {
	Segments  []Point
	Food      Point
	Status    Status
	Reason    Reason
	Direction Direction
	Tick      int
}

// Engine owns one snake session. It is not safe for concurrent use; hosts
// serialize SetDirection and Advance.
type Engine struct {
	board *Board
	snake Snake
	food  Point

	pending    Direction
	hasPending bool

	status Status
	reason Reason
	tick   int

	foodMargin   int
	foodAttempts int
	occupied     *Occupancy
}

// NewEngine validates cfg against board and starts a Running session.
func NewEngine(board *Board, cfg Config) (*Engine, error) {
	if board == nil {
		return nil, ErrNilBoard
	}
	if !cfg.Direction.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInput, cfg.Direction)
	}
	body := cfg.Body
	if len(body) == 0 {
		body = []Point{{}}
	}
	for _, p := range body {
		if !board.Aligned(p) || !board.Contains(p) {
			return nil, fmt.Errorf("%w: segment %v", ErrInvalidBody, p)
		}
	}
	if !contiguous(body, board.CellSize) {
		return nil, fmt.Errorf("%w: segments not contiguous", ErrInvalidBody)
	}

	attempts := cfg.FoodAttempts
	if attempts <= 0 {
		attempts = DefaultFoodAttempts
	}
	e := &Engine{
		board: board,
		snake: Snake{
			Segments:  append([]Point(nil), body...),
			Direction: cfg.Direction,
		},
		foodMargin:   cfg.FoodMargin,
		foodAttempts: attempts,
		occupied:     NewOccupancy(board.CellSize),
	}
	if cfg.Food != nil {
		if err := e.SetFood(*cfg.Food); err != nil {
			return nil, err
		}
	} else {
		e.placeFood()
	}
	return e, nil
}

// SetDirection buffers d for the next tick. A reversal of the active heading
// is dropped while the snake has a body; the latest accepted call wins.
func (e *Engine) SetDirection(d Direction) {
	if e.status == Over || !d.valid() {
		return
	}
	if len(e.snake.Segments) > 1 && d == e.snake.Direction.Opposite() {
		return
	}
	e.pending = d
	e.hasPending = true
}

// Advance runs one logic tick and returns the resulting status.
func (e *Engine) Advance() Status {
	if e.status == Over {
		return Over
	}
	e.tick++

	if e.hasPending {
		e.snake.Direction = e.pending
		e.hasPending = false
	}
	e.snake.Move(e.board.CellSize)
	head := e.snake.Head()

	e.rebuildOccupancy()
	if e.occupied.Contains(head) {
		return e.finish(SelfCollision)
	}
	if !e.board.Contains(head) {
		return e.finish(OutOfBounds)
	}

	if head == e.food {
		e.snake.Grow(e.board.CellSize)
		e.placeFood()
	}
	return Running
}

func (e *Engine) finish(r Reason) Status {
	e.status = Over
	e.reason = r
	e.hasPending = false
	return Over
}

func (e *Engine) rebuildOccupancy() {
	e.occupied.Clear()
	e.occupied.InsertBody(&e.snake)
}

// placeFood rolls until it finds a cell off the snake or runs out of
// attempts, in which case the last roll is kept.
func (e *Engine) placeFood() {
	e.rebuildOccupancy()
	e.occupied.Insert(e.snake.Head())

	var p Point
	for i := 0; i < e.foodAttempts; i++ {
		p = e.board.RandomGridPosition(e.foodMargin)
		if !e.occupied.Contains(p) {
			break
		}
	}
	e.food = p
}

// SetFood moves the food to p, which must be an aligned cell on the board.
func (e *Engine) SetFood(p Point) error {
	if !e.board.Aligned(p) || !e.board.Contains(p) {
		return fmt.Errorf("%w: %v", ErrInvalidFood, p)
	}
	e.food = p
	return nil
}

// State returns a copy of the current state
func (e *Engine) State() Snapshot {
	return Snapshot{
		Segments:  append([]Point(nil), e.snake.Segments...),
		Food:      e.food,
		Status:    e.status,
		Reason:    e.reason,
		Direction: e.snake.Direction,
		Tick:      e.tick,
	}
}

// Status reports whether the session is still running
func (e *Engine) Status() Status { return e.status }

// Len is the segment count, the only score the game keeps
func (e *Engine) Len() int { return len(e.snake.Segments) }

// Board returns the geometry the engine was built on
func (e *Engine) Board() *Board { return e.board }
