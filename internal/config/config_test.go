package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Output != "both" {
		t.Errorf("logging defaults not applied: %+v", cfg.Logging)
	}
	if cfg.Scheduler.Enabled == nil || !*cfg.Scheduler.Enabled {
		t.Error("scheduler should default to enabled")
	}
	if cfg.Scheduler.TickSec != 15 {
		t.Errorf("tick_sec default = %d, want 15", cfg.Scheduler.TickSec)
	}
}

func TestValidate_Providers(t *testing.T) {
	cfg := Config{Providers: map[string]ProviderConfig{
		" Google ": {BaseURL: " https://example.com "},
	}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got, ok := cfg.Providers["google"]
	if !ok || got.ID != "google" || got.BaseURL != "https://example.com" {
		t.Fatalf("provider not normalized: %+v", cfg.Providers)
	}

	bad := Config{Providers: map[string]ProviderConfig{"acme": {}}}
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown provider should fail validation")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Config{Logging: LoggingConfig{Level: "verbose"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid level should fail validation")
	}
}

func TestInstanceManager_LoadMissingFile(t *testing.T) {
	ins := &InstanceManager{}
	cfg, err := ins.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file should default: %v", err)
	}
	if cfg.Scheduler.TickSec != 15 {
		t.Errorf("defaults not applied on missing file: %+v", cfg.Scheduler)
	}
}

func TestInstanceManager_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	ins := &InstanceManager{}
	if _, err := ins.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := ins.Apply("scheduler", &SchedulerConfig{TickSec: 30}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := ins.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other := &InstanceManager{}
	cfg, err := other.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Scheduler.TickSec != 30 {
		t.Errorf("tick_sec lost across save/load: %d", cfg.Scheduler.TickSec)
	}
}

func TestInstanceManager_SaveKeepsOneBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	ins := &InstanceManager{}
	if _, err := ins.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := ins.Save(); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatal("first save has no previous revision to back up")
	}

	if err := ins.Apply("scheduler", &SchedulerConfig{TickSec: 45}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := ins.Save(); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("second save should leave a .bak: %v", err)
	}
}

func TestInstanceManager_ApplyWithCAS(t *testing.T) {
	ins := &InstanceManager{}
	if _, err := ins.Load(filepath.Join(t.TempDir(), "config.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}

	hash, err := ins.Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := ins.ApplyWithCAS("scheduler", &SchedulerConfig{TickSec: 60}, hash); err != nil {
		t.Fatalf("ApplyWithCAS with matching hash: %v", err)
	}
	err = ins.ApplyWithCAS("scheduler", &SchedulerConfig{TickSec: 90}, hash)
	if !errors.Is(err, ErrConfigConflict) {
		t.Fatalf("stale hash should conflict, got %v", err)
	}
}
