package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds settings read from the lootdex config file. Every field has a
// matching command-line flag; flags win over the file.
type Config struct {
	Prefabs  string `toml:"prefabs"`  // prefab export root
	Gamedata string `toml:"gamedata"` // auxiliary JSON item directory
	Out      string `toml:"out"`      // output directory
	Workers  int    `toml:"workers"`  // extraction pool size

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the optional shared parse cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the publish target.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// configPath returns the default config file location using XDG standard
// (~/.config/lootdex/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path means the default
// location. A missing file is not an error; a malformed one is.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return &Config{}, nil
		}
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
