// Package config loads the TOML configuration file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// API is the base URL of the song library service.
	API APIConfig `koanf:"api"`

	// Engine configures the external playback engine connection.
	Engine EngineConfig `koanf:"engine"`

	// Player holds playback defaults applied when no saved session exists.
	Player PlayerConfig `koanf:"player"`
}

// APIConfig holds the library service connection settings.
type APIConfig struct {
	BaseURL string `koanf:"base_url"` // e.g., "http://localhost:8080/api"
	Token   string `koanf:"token"`    // optional; keyring wins when both exist
}

// EngineConfig holds the playback engine connection settings.
type EngineConfig struct {
	SocketPath string `koanf:"socket_path"` // unix socket of the engine process
}

// PlayerConfig holds playback defaults.
type PlayerConfig struct {
	Volume int `koanf:"volume"` // 0-100, default: 100
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		API:    APIConfig{BaseURL: "http://localhost:8080/api"},
		Engine: EngineConfig{SocketPath: defaultSocketPath()},
		Player: PlayerConfig{Volume: 100},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	cfg.Engine.SocketPath = expandPath(cfg.Engine.SocketPath)

	if cfg.Player.Volume < 0 {
		cfg.Player.Volume = 0
	}
	if cfg.Player.Volume > 100 {
		cfg.Player.Volume = 100
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{
		filepath.Join(xdg.ConfigHome, "reverb", "config.toml"),
	}

	// ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func defaultSocketPath() string {
	return filepath.Join(xdg.RuntimeDir, "reverb", "engine.sock")
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
