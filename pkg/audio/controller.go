package audio

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

// ErrPlaybackStart matches errors returned when the player cannot be spawned.
var ErrPlaybackStart = errors.New("failed to start playback")

// StartError wraps the spawn failure of a Play call.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string { return "Failed to play audio: " + e.Err.Error() }

func (e *StartError) Unwrap() error { return e.Err }

func (e *StartError) Is(target error) bool { return target == ErrPlaybackStart }

// Controller owns the single playback session. All methods serialize on one
// mutex held for their full duration.
type Controller struct {
	player  Player
	spawner Spawner
	logger  *slog.Logger

	mu   sync.Mutex
	proc Process
	path string
}

// Option configures a Controller.
type Option func(*Controller)

// WithSpawner replaces the process launcher (used by tests).
func WithSpawner(s Spawner) Option {
	return func(c *Controller) {
		if s != nil {
			c.spawner = s
		}
	}
}

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates an idle controller that launches player.
func NewController(player Player, opts ...Option) *Controller {
	c := &Controller{
		player:  player,
		spawner: ExecSpawner{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play terminates any tracked player and starts a new one for path.
// If the spawn fails the controller is left idle.
func (c *Controller) Play(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.killLocked()

	command, args := c.player.CommandLine(path)
	proc, err := c.spawner.Spawn(command, args)
	if err != nil {
		c.logger.Warn("player spawn failed", "cmd", command, "path", path, "error", err)
		return &StartError{Path: path, Err: err}
	}

	c.proc = proc
	c.path = path
	c.logger.Debug("playback started", "cmd", command, "path", path, "pid", proc.Pid())
	return nil
}

// IsPlaying reports whether the tracked player is still running. Once the
// player is seen to have exited (or cannot be polled) the session is
// cleared, so later calls and the next Play do not touch a dead process.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.proc == nil {
		return false
	}

	exited, err := c.proc.Exited()
	switch {
	case err != nil:
		c.logger.Warn("player poll failed", "pid", c.proc.Pid(), "error", err)
	case !exited:
		return true
	default:
		c.logger.Debug("playback finished", "pid", c.proc.Pid(), "path", c.path)
	}
	c.proc = nil
	c.path = ""
	return false
}

// Stop terminates the tracked player, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.killLocked()
}

// Current returns the path of the tracked session.
func (c *Controller) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path, c.proc != nil
}

// Player returns the player chosen at construction.
func (c *Controller) Player() Player {
	return c.player
}

// Close stops playback so no player outlives the backend.
func (c *Controller) Close() error {
	c.Stop()
	return nil
}

// killLocked signals the tracked process and clears the session.
// Kill failures are logged and otherwise ignored.
func (c *Controller) killLocked() {
	if c.proc == nil {
		return
	}
	if err := c.proc.Kill(); err != nil {
		c.logger.Debug("player kill failed", "pid", c.proc.Pid(), "error", err)
	} else {
		c.logger.Debug("playback stopped", "pid", c.proc.Pid(), "path", c.path)
	}
	c.proc = nil
	c.path = ""
}
