package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithNoFileOrEnv(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Heuristic != DriverDefaults.Heuristic {
		t.Errorf("Heuristic = %d, want default %d", cfg.Heuristic, DriverDefaults.Heuristic)
	}
	if cfg.Patience != DriverDefaults.Patience {
		t.Errorf("Patience = %v, want default %v", cfg.Patience, DriverDefaults.Patience)
	}
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	t.Setenv("WAVEPICK_HEURISTIC", "3")
	t.Setenv("WAVEPICK_SEED", "42")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Heuristic != 3 {
		t.Errorf("Heuristic = %d, want 3 (from WAVEPICK_HEURISTIC)", cfg.Heuristic)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42 (from WAVEPICK_SEED)", cfg.Seed)
	}
}

func TestLoadConfigFileOverridesDefaultButNotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavepick.yaml")
	body := "heuristic: 2\npatience: 10s\nworkers: 4\nseed: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("WAVEPICK_WORKERS", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Heuristic != 2 {
		t.Errorf("Heuristic = %d, want 2 (from file)", cfg.Heuristic)
	}
	if cfg.Patience != 10*time.Second {
		t.Errorf("Patience = %v, want 10s (from file)", cfg.Patience)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8 (env should win over file)", cfg.Workers)
	}
}

func TestWriteDefaultConfigProducesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavepick.yaml")
	if err := WriteDefaultConfig(path); err != nil {
		t.Fatalf("WriteDefaultConfig: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load generated file: %v", err)
	}
	if cfg.Heuristic != DriverDefaults.Heuristic {
		t.Errorf("Heuristic = %d, want %d", cfg.Heuristic, DriverDefaults.Heuristic)
	}
}
