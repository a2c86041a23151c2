package main

import (
	"errors"
	"testing"

	"gridsnake/snake"
)

func TestConnHandleJoinResetAndDirection(t *testing.T) {
	w := NewWorld(testConfig())
	c := &Conn{ID: "a"}

	var joins []string
	onJoin := func(conn *Conn, name string) {
		joins = append(joins, name)
		if _, err := w.Join(conn.ID, name); err != nil {
			t.Fatalf("Join: %v", err)
		}
	}

	c.handle([]byte(`{"t":"j"}`), w, onJoin)
	c.handle([]byte(`{"t":"d","d":"k"}`), w, onJoin)
	w.Advance()
	s, ok := w.Snapshot("a")
	if !ok {
		t.Fatal("expected a session after join")
	}
	if s.Direction != snake.Up || s.Segments[0] != (snake.Point{X: 0, Y: 8}) {
		t.Errorf("expected to move up to (0,8), got %v at %v", s.Direction, s.Segments[0])
	}

	c.handle([]byte(`{"t":"r"}`), w, onJoin)
	if len(joins) != 2 || joins[0] != "Player" || joins[1] != "Player" {
		t.Errorf("unexpected joins %v", joins)
	}
	if s, _ := w.Snapshot("a"); s.Tick != 0 {
		t.Errorf("expected reset session, got tick %d", s.Tick)
	}
}

func TestConnHandleIgnoresGarbage(t *testing.T) {
	w := NewWorld(testConfig())
	c := &Conn{ID: "a"}
	called := false
	onJoin := func(*Conn, string) { called = true }

	c.handle([]byte(`not json`), w, onJoin)
	c.handle([]byte(`{"t":"d","d":"sideways"}`), w, onJoin)
	c.handle([]byte(`{"t":"x"}`), w, onJoin)
	if called {
		t.Error("onJoin should not run for garbage")
	}
}

func TestConnManagerEnforcesLimit(t *testing.T) {
	m := NewConnManager(2)
	for _, id := range []string{"a", "b"} {
		if err := m.Add(&Conn{ID: id}); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}
	if err := m.Add(&Conn{ID: "c"}); !errors.Is(err, ErrServerFull) {
		t.Errorf("expected ErrServerFull, got %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("expected 2 conns, got %d", m.Count())
	}
	if _, ok := m.Get("a"); !ok {
		t.Error("expected to find a")
	}
	m.Remove("a")
	if _, ok := m.Get("a"); ok {
		t.Error("expected a to be gone")
	}
	if err := m.Add(&Conn{ID: "c"}); err != nil {
		t.Errorf("expected a free seat after Remove, got %v", err)
	}
}

func TestConnSendAfterClose(t *testing.T) {
	c := &Conn{ID: "a"}
	c.Close()
	c.Close()
	if err := c.Send(NewOverMsg(snake.Snapshot{})); !errors.Is(err, ErrConnClosed) {
		t.Errorf("expected ErrConnClosed, got %v", err)
	}
}
