package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"
)

// Defaults, overridable by flags and GRIDSNAKE_* environment variables
const (
	// Server
	ServerPort    = ":8080"
	StaticDir     = "./client"
	WebSocketPath = "/ws"

	// Playfield, in pixels. Origin at the centre; bounds are +/- half.
	BoardWidth  = 800
	BoardHeight = 800
	CellSize    = 8
	// FoodMargin keeps food away from the edges on spawn
	FoodMargin = 50

	// Render clock and logic clock. One logic tick every FramesPerTick frames.
	FrameRate     = 60
	FramesPerTick = 10
	MaxFrameRate  = 1000

	// Connection limits
	MaxPlayers    = 100
	IPCooldownSec = 5
)

// Config is the resolved runtime configuration
type Config struct {
	Mode          string
	Addr          string
	StaticDir     string
	BoardWidth    int
	BoardHeight   int
	CellSize      int
	FoodMargin    int
	FrameRate     int
	FramesPerTick int
	MaxPlayers    int
	IPCooldown    time.Duration
	Seed          uint64
}

// DefaultConfig returns the compiled-in defaults
func DefaultConfig() Config {
	return Config{
		Mode:          "server",
		Addr:          ServerPort,
		StaticDir:     StaticDir,
		BoardWidth:    BoardWidth,
		BoardHeight:   BoardHeight,
		CellSize:      CellSize,
		FoodMargin:    FoodMargin,
		FrameRate:     FrameRate,
		FramesPerTick: FramesPerTick,
		MaxPlayers:    MaxPlayers,
		IPCooldown:    IPCooldownSec * time.Second,
	}
}

// LoadConfig applies environment overrides to the defaults, then flags.
func LoadConfig(fs *flag.FlagSet, args []string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "server or term")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for server mode")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "directory of client files to serve")
	fs.IntVar(&cfg.BoardWidth, "width", cfg.BoardWidth, "playfield width")
	fs.IntVar(&cfg.BoardHeight, "height", cfg.BoardHeight, "playfield height")
	fs.IntVar(&cfg.CellSize, "cell", cfg.CellSize, "grid cell size")
	fs.IntVar(&cfg.FoodMargin, "food-margin", cfg.FoodMargin, "keep food this far from the edges")
	fs.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "render frames per second")
	fs.IntVar(&cfg.FramesPerTick, "frames-per-tick", cfg.FramesPerTick, "render frames per logic tick")
	fs.IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "maximum concurrent sessions")
	fs.DurationVar(&cfg.IPCooldown, "ip-cooldown", cfg.IPCooldown, "minimum delay between connections from one IP")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed, 0 seeds from the clock")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("GRIDSNAKE_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := getenv("GRIDSNAKE_ADDR"); v != "" {
		c.Addr = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"GRIDSNAKE_CELL_SIZE", &c.CellSize},
		{"GRIDSNAKE_FPS", &c.FrameRate},
		{"GRIDSNAKE_FRAMES_PER_TICK", &c.FramesPerTick},
		{"GRIDSNAKE_MAX_PLAYERS", &c.MaxPlayers},
		{"GRIDSNAKE_WIDTH", &c.BoardWidth},
		{"GRIDSNAKE_HEIGHT", &c.BoardHeight},
		{"GRIDSNAKE_FOOD_MARGIN", &c.FoodMargin},
	}
	for _, e := range ints {
		v := getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v := getenv("GRIDSNAKE_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GRIDSNAKE_SEED: %w", err)
		}
		c.Seed = n
	}
	return nil
}

// Validate rejects settings no session could run with
func (c Config) Validate() error {
	switch {
	case c.Mode != "server" && c.Mode != "term":
		return fmt.Errorf("unknown mode %q", c.Mode)
	case c.CellSize <= 0:
		return errors.New("cell size must be positive")
	case c.BoardWidth < 2*c.CellSize || c.BoardHeight < 2*c.CellSize:
		return errors.New("board must be at least two cells on each axis")
	case c.FrameRate <= 0:
		return errors.New("frame rate must be positive")
	case c.FrameRate > MaxFrameRate:
		return fmt.Errorf("frame rate above %d", MaxFrameRate)
	case c.FramesPerTick <= 0:
		return errors.New("frames per tick must be positive")
	case c.MaxPlayers <= 0:
		return errors.New("max players must be positive")
	}
	return nil
}
