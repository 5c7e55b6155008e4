package platform

import (
	"log/slog"

	"github.com/aretw0/scribe/internal/config"
	"github.com/aretw0/scribe/pkg/audio"
	"github.com/aretw0/scribe/pkg/core"
)

// StorageSubdir is the fixed folder under the application data directory
// that holds the documents.
const StorageSubdir = "user_data"

// options holds the internal configuration for the backend.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	appID        string
	dataDir      string
	forceTemp    bool
	devSafety    bool
	mustExist    bool
	eventBuffer  int
	errorHandler func(error)
	player       *audio.Player
	spawner      audio.Spawner
}

// Option defines a functional option for configuring the backend.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		appID:     config.DefaultAppID,
		devSafety: true,
	}
}

func parseOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAppID sets the application identifier used to name the data folder.
func WithAppID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.appID = id
		}
	}
}

// WithDataDir overrides platform detection of the application data directory.
// Documents are still stored under its user_data subfolder.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithForceTemp forces the application data directory into the sandbox
// under the system temp dir (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test` without an explicit data directory. Enabled by default.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithMustExist refuses to create the storage directory.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithRepository injects a custom storage adapter; path options are then ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithEventBuffer sets the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithPlayer replaces the platform audio player.
func WithPlayer(p audio.Player) Option {
	return func(o *options) {
		o.player = &p
	}
}

// WithSpawner replaces the process launcher of the audio controller.
func WithSpawner(s audio.Spawner) Option {
	return func(o *options) {
		o.spawner = s
	}
}

// ConfigOptions translates a loaded configuration file into options.
func ConfigOptions(cfg *config.Config) []Option {
	if cfg == nil {
		return nil
	}
	opts := []Option{WithAppID(cfg.AppID)}
	if cfg.DataDir != "" {
		opts = append(opts, WithDataDir(cfg.DataDir))
	}
	if cfg.Player.Command != "" {
		args := cfg.Player.Args
		if len(args) == 0 {
			args = []string{audio.PathPlaceholder}
		}
		opts = append(opts, WithPlayer(audio.Player{
			Name:    cfg.Player.Command,
			Command: cfg.Player.Command,
			Args:    args,
		}))
	}
	return opts
}
