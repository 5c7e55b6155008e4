package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Pattern       string     `json:"pattern"`
	MustExist     bool       `json:"must_exist"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:          r.Path,
		Pattern:       r.config.Pattern,
		MustExist:     r.config.MustExist,
		WatcherActive: r.watcherActive,
		LastEvent:     r.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordEvent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastEvent = &now
}
