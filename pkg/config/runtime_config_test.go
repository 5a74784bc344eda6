package config

import (
	"os"
	"testing"
)

func TestLoadRuntimeConfigDefaults(t *testing.T) {
	for _, key := range []string{"ARENA_CONFIG", "ARENA_SEED", "ARENA_VERBOSE", "ARENA_APP_NAME"} {
		// t.Setenv 负责在测试结束后恢复原值
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadRuntimeConfig()
	if err != nil {
		t.Fatalf("LoadRuntimeConfig() error: %v", err)
	}
	if cfg.ConfigPath != DefaultArenaConfigPath {
		t.Errorf("ConfigPath: got %q, want %q", cfg.ConfigPath, DefaultArenaConfigPath)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed: got %d, want 0", cfg.Seed)
	}
	if cfg.Verbose {
		t.Error("Verbose: got true, want false")
	}
	if cfg.AppName != "arena_blaster" {
		t.Errorf("AppName: got %q, want arena_blaster", cfg.AppName)
	}
}

func TestLoadRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("ARENA_CONFIG", "/tmp/custom.yaml")
	t.Setenv("ARENA_SEED", "42")
	t.Setenv("ARENA_VERBOSE", "true")
	t.Setenv("ARENA_APP_NAME", "arena_test")

	cfg, err := LoadRuntimeConfig()
	if err != nil {
		t.Fatalf("LoadRuntimeConfig() error: %v", err)
	}
	if cfg.ConfigPath != "/tmp/custom.yaml" {
		t.Errorf("ConfigPath: got %q", cfg.ConfigPath)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed: got %d, want 42", cfg.Seed)
	}
	if !cfg.Verbose {
		t.Error("Verbose: got false, want true")
	}
	if cfg.AppName != "arena_test" {
		t.Errorf("AppName: got %q", cfg.AppName)
	}
}

func TestLoadRuntimeConfigBadSeed(t *testing.T) {
	t.Setenv("ARENA_SEED", "not-a-number")

	if _, err := LoadRuntimeConfig(); err == nil {
		t.Fatal("expected error for non-numeric ARENA_SEED")
	}
}
