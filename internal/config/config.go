package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the desktop shell settings that are not launch arguments.
type Config struct {
	Title  string
	Width  int
	Height int

	// DevServerURL replaces devserver.DefaultURL when set. The environment still wins.
	DevServerURL string
	// Probe forces the dev server check on or off; nil follows the build mode.
	Probe *bool
}

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "MARGINALIA_CONFIG"

const (
	defaultConfigPath = "~/.config/marginalia/config.toml"
	defaultTitle      = "Marginalia"
	defaultWidth      = 1280
	defaultHeight     = 860
	minDimension      = 400
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{Title: defaultTitle, Width: defaultWidth, Height: defaultHeight}
}

// Load reads the config at path, or at $MARGINALIA_CONFIG, or the default
// location. A missing file is not an error.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvConfigPath)
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Window struct {
			Title  string `toml:"title"`
			Width  int    `toml:"width"`
			Height int    `toml:"height"`
		} `toml:"window"`
		DevServer struct {
			URL   string `toml:"url"`
			Probe *bool  `toml:"probe"`
		} `toml:"dev_server"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if title := strings.TrimSpace(raw.Window.Title); title != "" {
		cfg.Title = title
	}
	if raw.Window.Width >= minDimension {
		cfg.Width = raw.Window.Width
	}
	if raw.Window.Height >= minDimension {
		cfg.Height = raw.Window.Height
	}
	cfg.DevServerURL = strings.TrimSpace(raw.DevServer.URL)
	cfg.Probe = raw.DevServer.Probe

	return cfg, nil
}

// ProbeEnabled reports whether the dev server check should run for a build
// whose default is devBuild.
func (c Config) ProbeEnabled(devBuild bool) bool {
	if c.Probe != nil {
		return *c.Probe
	}
	return devBuild
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
