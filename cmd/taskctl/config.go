// ABOUTME: Configuration loading for the taskctl CLI client
// ABOUTME: Loads TOML config from XDG path with environment variable expansion

package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server ServerConfig `toml:"server"`
}

type ServerConfig struct {
	URL string `toml:"url"`
}

// configPath returns the taskctl config location.
// Priority: TASKCTL_CONFIG env var > XDG_CONFIG_HOME/taskd/ctl.toml > ~/.config/taskd/ctl.toml
func configPath() string {
	if envPath := os.Getenv("TASKCTL_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "ctl.toml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "taskd", "ctl.toml")
}

// tokenPath returns where the bearer token from login is persisted.
func tokenPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "token"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "taskd", "token")
}

// loadConfig reads config from disk, expanding environment variables. A
// missing file is not an error: TASKD_URL or the default server URL applies.
func loadConfig() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(configPath())
	if err == nil {
		expanded := expandEnvVars(string(data))
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if envURL := os.Getenv("TASKD_URL"); envURL != "" {
		cfg.Server.URL = envURL
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = "http://127.0.0.1:4000"
	}

	if _, err := url.Parse(cfg.Server.URL); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", cfg.Server.URL, err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
