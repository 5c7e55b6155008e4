package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/scribe/pkg/core"
)

const watchDebounce = 50 * time.Millisecond

// Watch reports documents created, modified or deleted in the storage
// directory, including changes made by other processes. An empty pattern
// uses the repository's document pattern. The channel closes when ctx ends.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = r.config.Pattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	dir, err := r.ensureDir()
	if err != nil {
		return nil, err
	}

	known, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event)
	w := &watchWorker{
		repo:      r,
		pattern:   pattern,
		events:    events,
		watcher:   watcher,
		debouncer: newDebouncer(watchDebounce),
		known:     make(map[string]bool, len(known)),
	}
	for _, name := range known {
		w.known[name] = true
	}

	r.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.reportWatchError(fmt.Errorf("watcher panic: %w", err))
	}))
	return events, nil
}

type watchWorker struct {
	repo      *Repository
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer

	// known tracks names present on disk so a rename onto an existing file
	// (how atomic saves land) is reported as MODIFY rather than CREATE.
	known map[string]bool
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.repo.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)

	// Drain timers before the deferred close so no delivery hits a closed channel.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case werr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.reportWatchError(werr)
		}
	}
}

func (w *watchWorker) handle(ctx context.Context, event fsnotify.Event) {
	base := filepath.Base(event.Name)
	name, ok := w.repo.documentName(base)
	if !ok {
		return
	}
	if matched, err := doublestar.Match(w.pattern, base); err != nil || !matched {
		return
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if !w.known[name] {
			return
		}
		delete(w.known, name)
		eType = core.EventDelete
	case event.Has(fsnotify.Create):
		if w.known[name] {
			eType = core.EventModify
		} else {
			eType = core.EventCreate
		}
		w.known[name] = true
	case event.Has(fsnotify.Write):
		eType = core.EventModify
		w.known[name] = true
	default:
		return
	}

	w.repo.config.Logger.Debug("document changed", "name", name, "type", eType)
	w.repo.recordEvent()

	w.debouncer.add(core.Event{
		Type:      eType,
		Name:      name,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		// the channel may already be closed if the drain timed out
		defer func() { _ = recover() }()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (r *Repository) reportWatchError(err error) {
	r.config.Logger.Error("watch error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
