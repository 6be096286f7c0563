package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Loot    LootConfig    `toml:"loot"`
	Logging LoggingConfig `toml:"logging"`
	Window  WindowConfig  `toml:"window"`
	Debug   DebugConfig   `toml:"debug"`
}

type SimConfig struct {
	TPS        int     `toml:"tps"`
	Seed       uint64  `toml:"seed"`
	Iterations int     `toml:"iterations"` // cp solver iterations per step
	Damping    float64 `toml:"damping"`    // fraction of velocity kept per second
	Asteroids  int     `toml:"asteroids"`
	Freighters int     `toml:"freighters"`
	Debris     int     `toml:"debris"` // non-entity wreck fragments
	ArenaSize  float64 `toml:"arena_size"`
}

type LootConfig struct {
	Prefab string `toml:"prefab"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type DebugConfig struct {
	DrawContacts bool `toml:"draw_contacts"`
	HUD          bool `toml:"hud"`
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in settings.
func Default() *Config { return defaults() }

// DT is the fixed simulation step in seconds.
func (c *Config) DT() float64 {
	return 1 / float64(c.Sim.TPS)
}

func (c *Config) validate() error {
	var errs []error
	if c.Sim.TPS <= 0 {
		errs = append(errs, fmt.Errorf("sim.tps must be positive, got %d", c.Sim.TPS))
	}
	if c.Sim.Damping < 0 || c.Sim.Damping > 1 {
		errs = append(errs, fmt.Errorf("sim.damping must be in [0,1], got %v", c.Sim.Damping))
	}
	if c.Sim.Asteroids < 0 || c.Sim.Freighters < 0 || c.Sim.Debris < 0 {
		errs = append(errs, fmt.Errorf("sim spawn counts must not be negative"))
	}
	if c.Sim.ArenaSize <= 0 {
		errs = append(errs, fmt.Errorf("sim.arena_size must be positive, got %v", c.Sim.ArenaSize))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TPS:        60,
			Seed:       1,
			Iterations: 10,
			Damping:    0.9,
			Asteroids:  12,
			Freighters: 2,
			Debris:     6,
			ArenaSize:  30,
		},
		Loot: LootConfig{
			Prefab: "loot.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "spacecombat",
		},
		Debug: DebugConfig{
			HUD: true,
		},
	}
}
