package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path := filepath.Join(home, ".unvault", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written on first run: %v", err)
	}

	var onDisk Config
	if _, err := toml.DecodeFile(path, &onDisk); err != nil {
		t.Fatalf("written config is not valid toml: %v", err)
	}
	if onDisk.MaxParallel != cfg.MaxParallel || onDisk.CacheDir != cfg.CacheDir {
		t.Errorf("persisted config %+v does not match loaded config %+v", onDisk, *cfg)
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".unvault")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("max_parallel = 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxParallel != 9 {
		t.Errorf("MaxParallel = %d, want 9 from the config file", cfg.MaxParallel)
	}
	// unset fields keep their defaults
	if cfg.CacheDir != filepath.Join(dir, "cache") {
		t.Errorf("CacheDir = %q, want default under %s", cfg.CacheDir, dir)
	}
}
