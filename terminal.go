package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"

	"gridsnake/snake"
)

const (
	glyphBody = '#'
	glyphHead = '@'
	glyphFood = '*'
)

// termGame is a local single-player host rendering into a tcell screen.
// Row 0 holds the status line; the playfield fills the rest.
type termGame struct {
	screen tcell.Screen
	cfg    Config
	seeds  *rand.Rand
	engine *snake.Engine
	gate   *TickGate

	cols, rows int
	defStyle   tcell.Style
	foodStyle  tcell.Style
}

func newTermGame(screen tcell.Screen, cfg Config) *termGame {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	def := tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorDefault)
	return &termGame{
		screen:    screen,
		cfg:       cfg,
		seeds:     rand.New(rand.NewSource(seed)),
		gate:      NewTickGate(cfg.FramesPerTick),
		defStyle:  def,
		foodStyle: def.Foreground(tcell.ColorRed),
	}
}

// reset starts a fresh session sized to the current screen
func (g *termGame) reset() error {
	g.cols, g.rows = g.screen.Size()
	cell := g.cfg.CellSize
	board, err := snake.NewBoard(g.cols*cell, (g.rows-1)*cell, cell, rand.NewSource(g.seeds.Uint64()))
	if err != nil {
		return fmt.Errorf("screen %dx%d too small: %w", g.cols, g.rows, err)
	}
	eng, err := snake.NewEngine(board, snake.Config{Direction: snake.Right, FoodMargin: cell})
	if err != nil {
		return err
	}
	g.engine = eng
	g.gate = NewTickGate(g.cfg.FramesPerTick)
	return nil
}

// toScreen maps a board position to a terminal cell
func (g *termGame) toScreen(p snake.Point) (int, int) {
	cell := g.cfg.CellSize
	x := g.cols/2 + p.X/cell
	y := 1 + (g.rows-1)/2 - p.Y/cell
	return x, y
}

func (g *termGame) drawAt(p snake.Point, r rune, style tcell.Style) {
	x, y := g.toScreen(p)
	if x < 0 || x >= g.cols || y < 1 || y >= g.rows {
		return
	}
	g.screen.SetContent(x, y, r, nil, style)
}

func (g *termGame) text(x, y int, msg string) {
	for i, c := range msg {
		g.screen.SetContent(x+i, y, c, nil, g.defStyle)
	}
}

// draw renders the current snapshot
func (g *termGame) draw() {
	g.screen.Clear()
	s := g.engine.State()
	if s.Status == snake.Over {
		msg := "GAME OVER!"
		g.text((g.cols-len(msg))/2, g.rows/2, msg)
		g.text(0, 0, fmt.Sprintf(" length %d, %s. r to restart, q to quit ", len(s.Segments), s.Reason))
		g.screen.Show()
		return
	}

	g.drawAt(s.Food, glyphFood, g.foodStyle)
	for i := len(s.Segments) - 1; i >= 0; i-- {
		r := glyphBody
		if i == 0 {
			r = glyphHead
		}
		g.drawAt(s.Segments[i], r, g.defStyle)
	}
	g.text(0, 0, fmt.Sprintf(" length %d ", len(s.Segments)))
	g.screen.Show()
}

// keyDirection maps arrow keys and hjkl to a direction
func keyDirection(ev *tcell.EventKey) (snake.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return snake.Up, true
	case tcell.KeyDown:
		return snake.Down, true
	case tcell.KeyLeft:
		return snake.Left, true
	case tcell.KeyRight:
		return snake.Right, true
	case tcell.KeyRune:
		d, err := snake.ParseDirection(string(ev.Rune()))
		return d, err == nil
	}
	return 0, false
}

// handleKey applies one key event; it returns false when the player quits.
func (g *termGame) handleKey(ev *tcell.EventKey) (bool, error) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false, nil
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'q':
			return false, nil
		case 'r':
			return true, g.reset()
		}
	}
	if d, ok := keyDirection(ev); ok {
		g.engine.SetDirection(d)
	}
	return true, nil
}

// frame renders once and advances the engine on gated frames
func (g *termGame) frame() {
	if g.gate.Frame() {
		g.engine.Advance()
	}
	g.draw()
}

func runTerminal(ctx context.Context, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	g := newTermGame(screen, cfg)
	screen.SetStyle(g.defStyle)
	if err := g.reset(); err != nil {
		return err
	}

	evChan := make(chan tcell.Event, 100)
	quitChan := make(chan struct{})
	go screen.ChannelEvents(evChan, quitChan)
	defer close(quitChan)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g.frame()
		case ev := <-evChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				if err := g.reset(); err != nil {
					return err
				}
			case *tcell.EventKey:
				more, err := g.handleKey(ev)
				if err != nil {
					return err
				}
				if !more {
					return nil
				}
			}
		}
	}
}
