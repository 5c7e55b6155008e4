package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/scribe/pkg/core"
)

const (
	// Ext is the suffix of every stored document.
	Ext = ".json"

	// DefaultPattern selects document files inside the storage directory.
	DefaultPattern = "*" + Ext
)

// Repository implements core.Repository as one JSON file per document inside
// a single directory.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	MustExist    bool
	Logger       *slog.Logger
	Pattern      string      // doublestar pattern for document files; defaults to DefaultPattern
	ErrorHandler func(error) // receives watcher failures; optional
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize prepares the storage directory.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if err != nil {
			return core.Tag(core.ErrStorageUnavailable, fmt.Errorf("storage path does not exist: %s", r.Path))
		}
		if !info.IsDir() {
			return core.Tag(core.ErrStorageUnavailable, fmt.Errorf("storage path is not a directory: %s", r.Path))
		}
		return nil
	}
	_, err := r.ensureDir()
	return err
}

// Location returns the absolute storage directory, creating it when missing.
func (r *Repository) Location(ctx context.Context) (string, error) {
	return r.ensureDir()
}

// ensureDir is called by every operation so a directory removed while the
// application runs is recreated instead of failing later writes.
func (r *Repository) ensureDir() (string, error) {
	if r.Path == "" {
		return "", core.Tag(core.ErrStorageUnavailable, errors.New("storage path is not configured"))
	}
	abs, err := filepath.Abs(r.Path)
	if err != nil {
		return "", core.Tag(core.ErrStorageUnavailable, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", core.Tag(core.ErrStorageUnavailable, err)
	}
	return abs, nil
}

func (r *Repository) filename(dir, name string) string {
	return filepath.Join(dir, name+Ext)
}

// Save encodes the document as JSON and atomically replaces <dir>/<name>.json.
func (r *Repository) Save(ctx context.Context, doc core.WritingDocument) error {
	if err := core.ValidateName(doc.Name); err != nil {
		return err
	}
	dir, err := r.ensureDir()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return core.Tag(core.ErrSerialization, err)
	}

	path := r.filename(dir, doc.Name)
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return core.Tag(core.ErrWrite, err)
	}
	r.config.Logger.Debug("wrote document", "name", doc.Name, "path", path, "bytes", len(data))
	return nil
}

// Get reads and decodes a document. Anything core.DecodeDocument rejects is
// reported as ErrDeserialization.
func (r *Repository) Get(ctx context.Context, name string) (core.WritingDocument, error) {
	if err := core.ValidateName(name); err != nil {
		return core.WritingDocument{}, err
	}
	dir, err := r.ensureDir()
	if err != nil {
		return core.WritingDocument{}, err
	}

	data, err := os.ReadFile(r.filename(dir, name))
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return core.WritingDocument{}, core.ErrNotFound
		}
		return core.WritingDocument{}, core.Tag(core.ErrRead, err)
	}

	doc, err := core.DecodeDocument(data)
	if err != nil {
		return core.WritingDocument{}, core.Tag(core.ErrDeserialization, err)
	}
	return doc, nil
}

// List returns the sorted names of every document file in the directory.
// Entries not matching the document pattern are ignored.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	dir, err := r.ensureDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, core.Tag(core.ErrRead, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := r.documentName(entry.Name()); ok && entry.Type().IsRegular() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// documentName maps a directory entry to a document name.
func (r *Repository) documentName(base string) (string, bool) {
	matched, err := doublestar.Match(r.config.Pattern, base)
	if err != nil || !matched {
		return "", false
	}
	name := strings.TrimSuffix(base, Ext)
	if name == "" || name == base {
		return "", false
	}
	return name, true
}

// Delete removes a document file.
func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := core.ValidateName(name); err != nil {
		return err
	}
	dir, err := r.ensureDir()
	if err != nil {
		return err
	}

	if err := os.Remove(r.filename(dir, name)); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return core.ErrNotFound
		}
		return core.Tag(core.ErrDelete, err)
	}
	r.config.Logger.Debug("removed document", "name", name)
	return nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
