package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	times    map[string]time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{cooldown: cooldown, times: make(map[string]time.Time)}
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok {
		if now.Sub(last) < rl.cooldown {
			return false
		}
	}
	rl.times[ip] = now
	return true
}

// sweep drops entries older than the cooldown
func (rl *ipRateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := now.Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}

func (rl *ipRateLimiter) sweepEvery(ctx context.Context, d time.Duration) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			rl.sweep(now)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

func main() {
	cfg, err := LoadConfig(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case "term":
		if err := runTerminal(ctx, cfg); err != nil {
			log.Fatalf("terminal: %v", err)
		}
	default:
		if err := runServer(ctx, cfg); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

func runServer(ctx context.Context, cfg Config) error {
	world := NewWorld(cfg)
	conns := NewConnManager(cfg.MaxPlayers)
	loop := NewGameLoop(world, conns, cfg)
	rateLimiter := newIPRateLimiter(cfg.IPCooldown)

	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip, _, _ = net.SplitHostPort(r.RemoteAddr)
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		// Check limits after upgrade so client can receive error messages
		if !rateLimiter.allow(ip, time.Now()) {
			sendErrorAndClose(ws, "Too many connections. Please wait a moment.")
			return
		}

		conn := NewConn(ws, tickInterval(cfg))
		if err := conns.Add(conn); err != nil {
			sendErrorAndClose(ws, "Server full. Please try again later.")
			return
		}
		log.Printf("player connected: %s", conn.ID)

		_ = conn.Send(WelcomeMsg{
			Type:       MsgWelcome,
			ID:         conn.ID,
			HalfWidth:  cfg.BoardWidth / 2,
			HalfHeight: cfg.BoardHeight / 2,
			CellSize:   cfg.CellSize,
		})

		onJoin := func(c *Conn, name string) {
			s, err := world.Join(c.ID, name)
			if err != nil {
				log.Printf("join failed for %s: %v", c.ID, err)
				_ = c.Send(ErrorMsg{Type: MsgError, Message: "could not start a game"})
				return
			}
			_ = c.Send(NewStateMsg(s.Engine.State()))
			log.Printf("session started: %s (%s)", name, c.ID)
		}

		onDisconnect := func(c *Conn) {
			conns.Remove(c.ID)
			world.Leave(c.ID)
			log.Printf("player disconnected: %s", c.ID)
		}

		// Blocking read loop, runs until client disconnects
		conn.ReadLoop(world, onJoin, onDisconnect)
	})
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go loop.Run(ctx)
	go rateLimiter.sweepEvery(ctx, time.Minute)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("server listening on %s (board %dx%d, cell %d)", cfg.Addr, cfg.BoardWidth, cfg.BoardHeight, cfg.CellSize)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
