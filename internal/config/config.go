// Package config handles client configuration loading and defaults.
//
// Precedence, lowest to highest: built-in defaults, ~/.taskdeck/config.toml,
// environment (TASKDECK_API_URL, TASKDECK_DATA_DIR), command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"taskdeck-cli/internal/api"
)

const (
	EnvAPIURL  = "TASKDECK_API_URL"
	EnvDataDir = "TASKDECK_DATA_DIR"
)

type Config struct {
	// APIURL is the backend base URL.
	APIURL string `toml:"api_url"`
	// DataDir holds the local SQLite database (persisted session).
	DataDir string `toml:"data_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:  api.DefaultBaseURL,
		DataDir: defaultDataDir(),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck"
	}
	return filepath.Join(home, ".taskdeck")
}

// ConfigPath returns the user config file location.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskdeck", "config.toml")
	}
	return filepath.Join(home, ".taskdeck", "config.toml")
}

// Load resolves the effective configuration from defaults, the user config
// file (if present), and the environment. Flag overrides are applied by the
// caller on top of the result.
func Load() (Config, error) {
	return load(ConfigPath(), os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if b, err := os.ReadFile(path); err == nil {
		var fileCfg Config
		if err := toml.Unmarshal(b, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		if strings.TrimSpace(fileCfg.APIURL) != "" {
			cfg.APIURL = strings.TrimSpace(fileCfg.APIURL)
		}
		if strings.TrimSpace(fileCfg.DataDir) != "" {
			cfg.DataDir = expandHome(strings.TrimSpace(fileCfg.DataDir))
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(getenv(EnvDataDir)); v != "" {
		cfg.DataDir = expandHome(v)
	}
	return cfg, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(p, "~"), "/"))
		}
	}
	return p
}
