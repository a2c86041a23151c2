package main

import (
	"flag"
	"io"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func loadTestConfig(t *testing.T, args []string, env map[string]string) (Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("gridsnake", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return LoadConfig(fs, args, envMap(env))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadTestConfig(t, nil, nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.IPCooldown != IPCooldownSec*time.Second {
		t.Errorf("expected cooldown %ds, got %v", IPCooldownSec, cfg.IPCooldown)
	}
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	env := map[string]string{
		"GRIDSNAKE_CELL_SIZE":  "16",
		"GRIDSNAKE_STATIC_DIR": "/srv/client",
		"GRIDSNAKE_FPS":        "30",
	}
	cfg, err := loadTestConfig(t, []string{"-cell", "4", "-mode", "term", "-seed", "9"}, env)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CellSize != 4 {
		t.Errorf("expected flag cell size 4, got %d", cfg.CellSize)
	}
	if cfg.StaticDir != "/srv/client" {
		t.Errorf("expected env static dir, got %q", cfg.StaticDir)
	}
	if cfg.FrameRate != 30 {
		t.Errorf("expected env frame rate 30, got %d", cfg.FrameRate)
	}
	if cfg.Mode != "term" || cfg.Seed != 9 {
		t.Errorf("unexpected mode/seed %q/%d", cfg.Mode, cfg.Seed)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad env int", nil, map[string]string{"GRIDSNAKE_FPS": "fast"}},
		{"zero cell", []string{"-cell", "0"}, nil},
		{"tiny board", []string{"-width", "8"}, nil},
		{"zero frames per tick", []string{"-frames-per-tick", "0"}, nil},
		{"frame rate too high", []string{"-fps", "2000000000"}, nil},
		{"bad env seed", nil, map[string]string{"GRIDSNAKE_SEED": "-1"}},
		{"unknown mode", []string{"-mode", "gui"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := loadTestConfig(t, c.args, c.env); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadConfigBoardFromEnv(t *testing.T) {
	env := map[string]string{
		"GRIDSNAKE_WIDTH":       "640",
		"GRIDSNAKE_HEIGHT":      "480",
		"GRIDSNAKE_FOOD_MARGIN": "16",
		"GRIDSNAKE_SEED":        "12345",
	}
	cfg, err := loadTestConfig(t, nil, env)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BoardWidth != 640 || cfg.BoardHeight != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.BoardWidth, cfg.BoardHeight)
	}
	if cfg.FoodMargin != 16 || cfg.Seed != 12345 {
		t.Errorf("unexpected margin/seed %d/%d", cfg.FoodMargin, cfg.Seed)
	}
}

func TestFrameRateLimitKeepsTickerPositive(t *testing.T) {
	if time.Second/time.Duration(MaxFrameRate) <= 0 {
		t.Errorf("frame interval at %d fps is not positive", MaxFrameRate)
	}
	cfg := DefaultConfig()
	cfg.FrameRate = MaxFrameRate
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected %d fps to be accepted: %v", MaxFrameRate, err)
	}
}
