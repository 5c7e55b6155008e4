package scribe

import (
	"log/slog"

	"github.com/aretw0/scribe/internal/config"
	"github.com/aretw0/scribe/internal/platform"
	"github.com/aretw0/scribe/pkg/audio"
	"github.com/aretw0/scribe/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for configuring the backend.
type Option = platform.Option

// Config is the on-disk configuration file.
type Config = config.Config

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAppID sets the application identifier that names the data folder.
func WithAppID(id string) Option {
	return platform.WithAppID(id)
}

// WithDataDir overrides the platform application data directory.
func WithDataDir(dir string) Option {
	return platform.WithDataDir(dir)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety toggles the temp sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithMustExist refuses to create a missing storage directory.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithEventBuffer sets the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler receives runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithPlayer replaces the platform audio player.
func WithPlayer(p audio.Player) Option {
	return platform.WithPlayer(p)
}

// WithSpawner replaces the process launcher used for playback.
func WithSpawner(s audio.Spawner) Option {
	return platform.WithSpawner(s)
}

// LoadConfig reads a configuration file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg, _, _, err := config.Load(path)
	return cfg, err
}

// ConfigOptions turns a configuration into options.
func ConfigOptions(cfg *Config) []Option {
	return platform.ConfigOptions(cfg)
}

// --- Factory ---

// New creates the document service over the resolved storage directory.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// NewAudio creates an idle audio controller for the running platform.
func NewAudio(opts ...Option) *audio.Controller {
	return platform.NewAudio(opts...)
}

// UserFolder resolves (and creates) the document storage directory.
func UserFolder(opts ...Option) (string, error) {
	return platform.ResolveStorageDir(opts...)
}
