package main

import (
	"context"
	"log"
	"time"

	"gridsnake/snake"
)

// TickGate turns a render clock into a slower logic clock: every n-th frame
// is a logic tick.
type TickGate struct {
	every int
	frame int
}

// NewTickGate returns a gate that fires once per every frames (minimum 1)
func NewTickGate(every int) *TickGate {
	if every < 1 {
		every = 1
	}
	return &TickGate{every: every}
}

// Frame records one rendered frame and reports whether it is a logic tick.
func (g *TickGate) Frame() bool {
	g.frame++
	if g.frame < g.every {
		return false
	}
	g.frame = 0
	return true
}

// tickInterval is the wall-clock length of one logic tick
func tickInterval(cfg Config) time.Duration {
	return time.Second / time.Duration(cfg.FrameRate) * time.Duration(cfg.FramesPerTick)
}

// Sender is the subset of Conn the loop needs to push updates
type Sender interface {
	Send(msg interface{}) error
}

// GameLoop drives every session at a fixed frame rate
type GameLoop struct {
	world     *World
	conns     *ConnManager
	gate      *TickGate
	frameRate int
	tickCount int // logic ticks run so far
}

// NewGameLoop creates a game loop bound to world and conn manager.
func NewGameLoop(world *World, conns *ConnManager, cfg Config) *GameLoop {
	return &GameLoop{
		world:     world,
		conns:     conns,
		gate:      NewTickGate(cfg.FramesPerTick),
		frameRate: cfg.FrameRate,
	}
}

// Run starts the fixed-timestep loop and blocks until ctx is cancelled.
func (gl *GameLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(gl.frameRate))
	defer ticker.Stop()
	log.Printf("game loop started at %d frames/sec, one tick every %d frames", gl.frameRate, gl.gate.every)

	for {
		select {
		case <-ctx.Done():
			log.Printf("game loop stopped after %d ticks", gl.tickCount)
			return
		case <-ticker.C:
			gl.frame()
		}
	}
}

// frame runs one render frame; only gated frames touch the engines.
func (gl *GameLoop) frame() {
	if !gl.gate.Frame() {
		return
	}
	gl.tick()
}

// tick executes a single logic update and broadcasts the results
func (gl *GameLoop) tick() {
	gl.tickCount++
	results := gl.world.Advance()

	for _, r := range results {
		if r.Finished {
			log.Printf("session %s (%s) over: %s at length %d", r.Name, r.ID, r.State.Reason, len(r.State.Segments))
		}
		// Finished sessions stay put until the player resets or leaves.
		if r.State.Status == snake.Over && !r.Finished {
			continue
		}
		conn, ok := gl.conns.Get(r.ID)
		if !ok {
			continue
		}
		gl.deliver(conn, r)
	}
}

// deliver sends the state message and, on the finishing tick, the over message.
func (gl *GameLoop) deliver(s Sender, r TickResult) {
	if err := s.Send(NewStateMsg(r.State)); err != nil {
		log.Printf("send error to %s: %v", r.ID, err)
		return
	}
	if r.Finished {
		if err := s.Send(NewOverMsg(r.State)); err != nil {
			log.Printf("send error to %s: %v", r.ID, err)
		}
	}
}
