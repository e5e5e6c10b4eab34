package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := mgr.Get()
	cfg.MaxRounds = 3
	cfg.FundamentalsAddr = "localhost:9000"

	data, _ := json.Marshal(cfg)
	if err := mgr.UpdateFromJSON(string(data)); err != nil {
		t.Fatalf("UpdateFromJSON: %v", err)
	}

	updated := mgr.Get()
	if updated.MaxRounds != 3 {
		t.Fatalf("expected max rounds 3, got %d", updated.MaxRounds)
	}
	if updated.FundamentalsAddr != "localhost:9000" {
		t.Fatalf("expected fundamentals addr localhost:9000, got %s", updated.FundamentalsAddr)
	}
}

func TestManagerRejectsInvalidUpdate(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.MaxRounds = 0
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("expected validation error for max_rounds 0")
	}
	if mgr.Get().MaxRounds != 1 {
		t.Fatalf("invalid update must not be applied, got max rounds %d", mgr.Get().MaxRounds)
	}
}

func TestManagerWatchReloads(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 1)
	if err := mgr.Watch(ctx, func(cfg Config) {
		reloaded <- cfg
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := mgr.Get()
	cfg.ChatModel = "deepseek-reasoner"
	if err := writeConfigFile(mgr.Path(), cfg); err != nil {
		t.Fatalf("writeConfigFile: %v", err)
	}

	select {
	case got := <-reloaded:
		if got.ChatModel != "deepseek-reasoner" {
			t.Fatalf("expected reloaded chat model deepseek-reasoner, got %s", got.ChatModel)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not fire on config change")
	}
}

func TestLoadSeedsConfigFile(t *testing.T) {
	dir := t.TempDir()
	mgr, err := Load(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if got := mgr.Get().MaxRounds; got != 1 {
		t.Fatalf("expected default max rounds 1, got %d", got)
	}
}

func TestEffectiveLayersEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	seed := DefaultConfigWithRoot(dir)
	seed.MaxRounds = 3
	seed.ChatModel = "deepseek-reasoner"
	if err := writeConfigFile(filepath.Join(dir, "config.json"), *seed); err != nil {
		t.Fatalf("writeConfigFile: %v", err)
	}

	t.Setenv("MAX_ROUNDS", "2")

	mgr, err := Load(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	eff := mgr.Effective()
	if eff.MaxRounds != 2 {
		t.Fatalf("environment must win over the file, got max rounds %d", eff.MaxRounds)
	}
	if eff.ChatModel != "deepseek-reasoner" {
		t.Fatalf("file value must survive where no env is set, got %s", eff.ChatModel)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	bad := *cfg
	bad.LLMProvider = "anthropic"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}

	bad = *cfg
	bad.MarketDataAddr = " "
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for blank market data address")
	}
}

func TestEndpointURLs(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())
	if got := cfg.FundamentalsURL(); got != "http://localhost:8000/mcp" {
		t.Fatalf("unexpected fundamentals URL %s", got)
	}
	if got := cfg.MarketDataURL(); got != "http://localhost:8001/mcp" {
		t.Fatalf("unexpected market data URL %s", got)
	}
}
