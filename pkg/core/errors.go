package core

import "errors"

// Failure kinds. Adapters tag underlying errors with one of these so callers
// can branch with errors.Is while the message stays the original cause.
var (
	ErrNotFound           = errors.New("File not found")
	ErrInvalidName        = errors.New("invalid document name")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrStorageUnavailable = errors.New("storage directory unavailable")
	ErrSerialization      = errors.New("document serialization failed")
	ErrDeserialization    = errors.New("document deserialization failed")
	ErrRead               = errors.New("document read failed")
	ErrWrite              = errors.New("document write failed")
	ErrDelete             = errors.New("document delete failed")
)

type taggedError struct {
	kind error
	err  error
}

func (e *taggedError) Error() string   { return e.err.Error() }
func (e *taggedError) Unwrap() []error { return []error{e.kind, e.err} }

// Tag marks err as being of the given kind without changing its message.
// A nil err yields nil.
func Tag(kind, err error) error {
	if err == nil {
		return nil
	}
	return &taggedError{kind: kind, err: err}
}
