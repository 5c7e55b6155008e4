package core

import "context"

// Repository defines the contract for storing and retrieving writing documents.
// Every call goes to the backing store; implementations must not cache.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g. the directory exists).
	Initialize(ctx context.Context) error

	// Location resolves (and lazily creates) the storage location.
	Location(ctx context.Context) (string, error)

	// Save persists a document, replacing any document with the same name.
	Save(ctx context.Context, doc WritingDocument) error

	// Get retrieves a document by name.
	Get(ctx context.Context, name string) (WritingDocument, error)

	// List returns the names of all stored documents.
	List(ctx context.Context) ([]string, error)

	// Delete removes a document by name.
	Delete(ctx context.Context, name string) error
}

// Watchable defines an interface for repositories that can report changes
// made to stored documents, including changes made outside the process.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
