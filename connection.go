package main

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gridsnake/snake"
)

var (
	ErrServerFull = errors.New("server full")
	ErrConnClosed = errors.New("connection closed")
)

// Conn is one player's WebSocket. Its ID doubles as the session id in World.
type Conn struct {
	ID   string
	Name string
	ws   *websocket.Conn

	// writeTimeout bounds each frame write; a client slower than one logic
	// tick is dropped rather than stalling the loop.
	writeTimeout time.Duration

	mu     sync.Mutex // protects ws writes and closed
	closed bool
}

// NewConn wraps ws with a fresh session id
func NewConn(ws *websocket.Conn, writeTimeout time.Duration) *Conn {
	return &Conn{
		ID:           uuid.New().String(),
		ws:           ws,
		writeTimeout: writeTimeout,
	}
}

// Send writes one protocol message as a JSON text frame.
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	if c.writeTimeout > 0 {
		_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close is idempotent
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.ws != nil {
		c.ws.Close()
	}
}

// ConnManager tracks live connections up to a fixed player limit
type ConnManager struct {
	mu    sync.RWMutex
	limit int
	conns map[string]*Conn
}

// NewConnManager admits at most limit connections; limit <= 0 means no cap.
func NewConnManager(limit int) *ConnManager {
	return &ConnManager{limit: limit, conns: make(map[string]*Conn)}
}

// Add registers c, or returns ErrServerFull when every seat is taken.
// The check and insert happen under one lock so concurrent upgrades cannot
// overshoot the limit.
func (m *ConnManager) Add(c *Conn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit > 0 && len(m.conns) >= m.limit {
		return ErrServerFull
	}
	m.conns[c.ID] = c
	return nil
}

// Remove unregisters a connection
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Get returns the connection for a session id
func (m *ConnManager) Get(id string) (*Conn, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conns[id]
	return c, ok
}

// Count returns the number of live connections
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// ReadLoop handles incoming messages until the client goes away.
// onJoin runs for join and reset; direction commands go straight to the
// world, which buffers them until the next tick.
func (c *Conn) ReadLoop(
	world *World,
	onJoin func(conn *Conn, name string),
	onDisconnect func(conn *Conn),
) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}
		c.handle(raw, world, onJoin)
	}
}

func (c *Conn) handle(raw []byte, world *World, onJoin func(conn *Conn, name string)) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("bad message from %s: %v", c.ID, err)
		return
	}

	switch msg.Type {
	case MsgJoin:
		name := msg.Name
		if name == "" {
			name = "Player"
		}
		c.Name = name
		onJoin(c, name)

	case MsgReset:
		if c.Name == "" {
			c.Name = "Player"
		}
		onJoin(c, c.Name)

	case MsgDirection:
		d, err := snake.ParseDirection(msg.Direction)
		if err != nil {
			log.Printf("bad direction from %s: %v", c.ID, err)
			return
		}
		world.SetDirection(c.ID, d)
	}
}
