package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

const defaultEventBuffer = 100

// Service handles the business logic for writing documents.
type Service struct {
	repo            Repository
	logger          *slog.Logger
	mu              sync.RWMutex
	eventBufferSize int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBuffer sets the size of the buffer placed between the repository
// watcher and Watch consumers. Non-positive values keep the default.
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserFolder returns the absolute storage directory, creating it if needed.
func (s *Service) UserFolder(ctx context.Context) (string, error) {
	return s.repo.Location(ctx)
}

// SaveDocument stores doc, replacing any previous document with the same name.
func (s *Service) SaveDocument(ctx context.Context, doc WritingDocument) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		s.logger.Debug("save failed", "name", doc.Name, "error", err)
		return "", err
	}
	s.logger.Debug("document saved", "name", doc.Name)
	return fmt.Sprintf("File '%s' saved successfully!", doc.Name), nil
}

// GetDocument retrieves a document.
func (s *Service) GetDocument(ctx context.Context, name string) (WritingDocument, error) {
	if err := ValidateName(name); err != nil {
		return WritingDocument{}, err
	}
	return s.repo.Get(ctx, name)
}

// ListDocuments returns the names of every stored document.
func (s *Service) ListDocuments(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// DeleteDocument removes a document.
func (s *Service) DeleteDocument(ctx context.Context, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return "", err
	}
	s.logger.Debug("document deleted", "name", name)
	return fmt.Sprintf("File '%s' deleted successfully!", name), nil
}

// Watch observes document changes if the repository supports it.
// Events are buffered so a slow consumer does not stall the watcher.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	size := s.eventBufferSize
	s.mu.RUnlock()

	out := make(chan Event, size)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
