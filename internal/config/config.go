package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	RuntimeDir  string `toml:"runtime_dir"`
	CacheDir    string `toml:"cache_dir"`
	StateDB     string `toml:"state_db"`
	HistoryFile string `toml:"history_file"`
	MaxParallel int    `toml:"max_parallel"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".unvault")

	return &Config{
		RuntimeDir:  filepath.Join(base, "runtime"),
		CacheDir:    filepath.Join(base, "cache"),
		StateDB:     filepath.Join(base, "history.db"),
		HistoryFile: filepath.Join(base, "history.json"),
		MaxParallel: 4,
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	configPath := filepath.Join(home, ".unvault", "config.toml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// first run: persist the defaults so they can be edited
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".unvault", "config.toml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
