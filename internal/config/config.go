package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAppID names the per-user application data folder.
	DefaultAppID = "com.scribe.app"

	defaultConfigPath = "~/.config/scribe/config.toml"
)

// Player overrides the platform audio player.
type Player struct {
	Command string   `toml:"command" yaml:"command"`
	Args    []string `toml:"args" yaml:"args"`
}

// Config is the full set of user-tunable settings.
type Config struct {
	AppID    string `toml:"app_id" yaml:"app_id"`
	DataDir  string `toml:"data_dir" yaml:"data_dir"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	Player   Player `toml:"player" yaml:"player"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		AppID:    DefaultAppID,
		LogLevel: "info",
	}
}

// DefaultConfigPath returns the absolute path of the default configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. An empty path
// means the default location. A missing file is not an error: defaults are
// returned and exists is false.
func Load(path string) (cfg *Config, resolvedPath string, exists bool, err error) {
	c := Default()

	if path == "" {
		path = defaultConfigPath
	}
	resolvedPath, err = expandPath(path)
	if err != nil {
		return nil, "", false, err
	}

	file, err := os.Open(resolvedPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		exists = true
		if err := decode(file, filepath.Ext(resolvedPath), &c); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}
	return &c, resolvedPath, exists, nil
}

func decode(r io.Reader, ext string, c *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml", "":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	default:
		return fmt.Errorf("unsupported config format %q (use .toml or .yaml)", ext)
	}
}

func (c *Config) normalize() error {
	c.AppID = strings.TrimSpace(c.AppID)
	if c.AppID == "" {
		c.AppID = DefaultAppID
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "warning":
		c.LogLevel = "warn"
	}

	var err error
	if c.DataDir, err = expandPath(strings.TrimSpace(c.DataDir)); err != nil {
		return fmt.Errorf("data_dir: %w", err)
	}

	c.Player.Command = strings.TrimSpace(c.Player.Command)
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.AppID, `/\`) || c.AppID == "." || c.AppID == ".." {
		return fmt.Errorf("app_id %q must be a single path segment", c.AppID)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Player.Command == "" && len(c.Player.Args) > 0 {
		return errors.New("player.args requires player.command")
	}
	return nil
}

// Level converts LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel)
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
