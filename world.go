package main

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"gridsnake/snake"
)

// Session is one player's game
type Session struct {
	ID     string
	Name   string
	Engine *snake.Engine

	// notified is set once the Over message has gone out
	notified bool
}

// World holds every running session. Sessions never interact.
type World struct {
	mu       sync.RWMutex
	cfg      Config
	sessions map[string]*Session
	seeds    *rand.Rand
}

// NewWorld creates an empty world. A zero cfg.Seed seeds from the clock.
func NewWorld(cfg Config) *World {
	var src rand.Source
	if cfg.Seed != 0 {
		src = rand.NewSource(cfg.Seed)
	} else {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &World{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		seeds:    rand.New(src),
	}
}

// newEngine builds a fresh engine on its own board.
// Caller must hold mu.Lock (the seed RNG is shared).
func (w *World) newEngine() (*snake.Engine, error) {
	board, err := snake.NewBoard(w.cfg.BoardWidth, w.cfg.BoardHeight, w.cfg.CellSize,
		rand.NewSource(w.seeds.Uint64()))
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	eng, err := snake.NewEngine(board, snake.Config{
		Direction:  snake.Right,
		FoodMargin: w.cfg.FoodMargin,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return eng, nil
}

// Join starts a new session for id, replacing any previous one
func (w *World) Join(id, name string) (*Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	eng, err := w.newEngine()
	if err != nil {
		return nil, err
	}
	s := &Session{ID: id, Name: name, Engine: eng}
	w.sessions[id] = s
	return s, nil
}

// Leave drops the session for id
func (w *World) Leave(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, id)
}

// SetDirection forwards a direction command to the session, if any.
func (w *World) SetDirection(id string, d snake.Direction) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.sessions[id]
	if !ok {
		return false
	}
	s.Engine.SetDirection(d)
	return true
}

// Count returns the number of sessions
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.sessions)
}

// TickResult is the outcome of one session's logic tick
type TickResult struct {
	ID       string
	Name     string
	State    snake.Snapshot
	Finished bool // true only on the tick the session went Over
}

// Advance runs one logic tick on every session, sorted by id so that
// results come back in a stable order.
func (w *World) Advance() []TickResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := make([]string, 0, len(w.sessions))
	for id := range w.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]TickResult, 0, len(ids))
	for _, id := range ids {
		s := w.sessions[id]
		st := s.Engine.Advance()
		r := TickResult{ID: id, Name: s.Name, State: s.Engine.State()}
		if st == snake.Over && !s.notified {
			s.notified = true
			r.Finished = true
		}
		results = append(results, r)
	}
	return results
}

// Snapshot returns the state of one session
func (w *World) Snapshot(id string) (snake.Snapshot, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.sessions[id]
	if !ok {
		return snake.Snapshot{}, false
	}
	return s.Engine.State(), true
}
