package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultArenaConfigIsValid(t *testing.T) {
	cfg := DefaultArenaConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.State.StartAmmo != 50 {
		t.Errorf("expected startAmmo = 50, got %d", cfg.State.StartAmmo)
	}
	if cfg.State.StartHealth != 100 {
		t.Errorf("expected startHealth = 100, got %f", cfg.State.StartHealth)
	}
	if cfg.Bullet.MaxAge != 2.0 {
		t.Errorf("expected bullet maxAge = 2.0, got %f", cfg.Bullet.MaxAge)
	}
	if len(cfg.Obstacles) != 4 {
		t.Errorf("expected 4 obstacles, got %d", len(cfg.Obstacles))
	}
}

func TestWaveEnemyCount(t *testing.T) {
	cfg := DefaultArenaConfig()
	tests := []struct {
		wave int
		want int
	}{
		{1, 5},
		{2, 7},
		{3, 9},
		{8, 19},
		{9, 20},
		{10, 20},
		{50, 20},
	}

	prev := 0
	for _, tt := range tests {
		got := cfg.WaveEnemyCount(tt.wave)
		if got != tt.want {
			t.Errorf("WaveEnemyCount(%d) = %d, want %d", tt.wave, got, tt.want)
		}
		if got < prev {
			t.Errorf("WaveEnemyCount should be non-decreasing: wave %d gave %d after %d", tt.wave, got, prev)
		}
		prev = got
	}
}

func TestParseArenaConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *ArenaConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
state:
  startAmmo: 10
enemy:
  deltaNormalized: true
`,
			validate: func(t *testing.T, cfg *ArenaConfig) {
				if cfg.State.StartAmmo != 10 {
					t.Errorf("expected startAmmo = 10, got %d", cfg.State.StartAmmo)
				}
				if cfg.State.StartHealth != 100 {
					t.Errorf("expected default startHealth = 100, got %f", cfg.State.StartHealth)
				}
				if !cfg.Enemy.DeltaNormalized {
					t.Error("expected deltaNormalized = true")
				}
				if cfg.Enemy.ReferenceFPS != 60 {
					t.Errorf("expected default referenceFPS = 60, got %f", cfg.Enemy.ReferenceFPS)
				}
			},
		},
		{
			name: "obstacle list replaces defaults",
			yamlContent: `
obstacles:
  - { x: 1, y: 1, z: 1 }
`,
			validate: func(t *testing.T, cfg *ArenaConfig) {
				if len(cfg.Obstacles) != 1 || cfg.Obstacles[0].X != 1 {
					t.Errorf("expected single obstacle at x=1, got %+v", cfg.Obstacles)
				}
			},
		},
		{
			name: "inverted spawn annulus",
			yamlContent: `
waves:
  spawnInnerRadius: 30
  spawnOuterRadius: 20
`,
			wantErr:     true,
			errContains: "spawn annulus",
		},
		{
			name: "inverted particle count range",
			yamlContent: `
particles:
  countMin: 40
  countMax: 30
`,
			wantErr:     true,
			errContains: "particles count range",
		},
		{
			name: "start health above max",
			yamlContent: `
state:
  startHealth: 150
`,
			wantErr:     true,
			errContains: "startHealth",
		},
		{
			name: "share message without score verb",
			yamlContent: `
share:
  message: "Beat my score!"
`,
			wantErr:     true,
			errContains: "exactly one %d",
		},
		{
			name: "share notice with extra verb",
			yamlContent: `
share:
  fallbackNotice: "%s scored %d"
`,
			wantErr:     true,
			errContains: "share fallbackNotice may only use %d",
		},
		{
			name: "share message with escaped percent",
			yamlContent: `
share:
  message: "100%% sure: %d points"
`,
			validate: func(t *testing.T, cfg *ArenaConfig) {
				if cfg.Share.Message != "100%% sure: %d points" {
					t.Errorf("unexpected share message %q", cfg.Share.Message)
				}
			},
		},
		{
			name:        "malformed yaml",
			yamlContent: "state: [1, 2",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseArenaConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadArenaConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "arena.yaml")
	if err := os.WriteFile(path, []byte("bullet:\n  speed: 0.75\n"), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadArenaConfig(path)
	if err != nil {
		t.Fatalf("LoadArenaConfig() error: %v", err)
	}
	if cfg.Bullet.Speed != 0.75 {
		t.Errorf("expected bullet speed = 0.75, got %f", cfg.Bullet.Speed)
	}
}

func TestLoadArenaConfigMissingFile(t *testing.T) {
	_, err := LoadArenaConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error in chain, got %v", err)
	}
}

// TestShippedArenaConfig 验证仓库自带的 data/arena.yaml 可以加载
func TestShippedArenaConfig(t *testing.T) {
	path := filepath.Join("..", "..", DefaultArenaConfigPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("config file not found: %s", path)
	}

	cfg, err := LoadArenaConfig(path)
	if err != nil {
		t.Fatalf("failed to load shipped config: %v", err)
	}

	def := DefaultArenaConfig()
	if cfg.WaveEnemyCount(1) != def.WaveEnemyCount(1) {
		t.Errorf("shipped config wave 1 count = %d, default = %d", cfg.WaveEnemyCount(1), def.WaveEnemyCount(1))
	}
	if cfg.State.NextWaveDelay != def.State.NextWaveDelay {
		t.Errorf("shipped nextWaveDelay = %f, default = %f", cfg.State.NextWaveDelay, def.State.NextWaveDelay)
	}
}
