package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spacecombat.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "overrides_keep_defaults",
			body: "[sim]\ntps = 30\nseed = 99\n[logging]\nformat = \"json\"\n",
			check: func(t *testing.T, c *Config) {
				if c.Sim.TPS != 30 || c.Sim.Seed != 99 {
					t.Fatalf("sim overrides not applied: %+v", c.Sim)
				}
				if c.Sim.Iterations != 10 || c.Window.Width != 1280 {
					t.Fatalf("defaults lost: %+v %+v", c.Sim, c.Window)
				}
				if c.Logging.Format != "json" || c.Logging.Level != "info" {
					t.Fatalf("unexpected logging %+v", c.Logging)
				}
				if got := c.DT(); got != 1.0/30 {
					t.Fatalf("DT() = %v", got)
				}
			},
		},
		{name: "bad_tps", body: "[sim]\ntps = 0\n", wantErr: true},
		{name: "bad_damping", body: "[sim]\ndamping = 1.5\n", wantErr: true},
		{name: "malformed", body: "[sim\n", wantErr: true},
		{name: "negative_debris", body: "[sim]\ndebris = -1\n", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.body))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tc.check(t, cfg)
		})
	}
}

func TestLoadEmptyPathAndMissingFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.TPS != 60 {
		t.Fatalf("expected default tps, got %d", cfg.Sim.TPS)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewLogger(t *testing.T) {
	for _, lc := range []LoggingConfig{
		{Level: "debug", Format: "console"},
		{Level: "warn", Format: "json"},
		{Level: "nonsense", Format: "console"},
	} {
		log, err := NewLogger(lc)
		if err != nil {
			t.Fatalf("NewLogger(%+v): %v", lc, err)
		}
		if lc.Level == "nonsense" && !log.Core().Enabled(0) {
			t.Fatalf("unknown level should fall back to info")
		}
	}
}
