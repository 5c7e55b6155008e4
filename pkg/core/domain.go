// Package core holds the writing domain: documents, their storage port and
// the use cases the front end invokes.
package core

import (
	"fmt"
	"time"
)

// WritingDocument is the only persisted entity.
// Name doubles as the storage key and the filename stem.
type WritingDocument struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Font     string `json:"font"`
	FontSize uint32 `json:"font_size"`
	Theme    string `json:"theme"`
}

// EventType represents the type of change observed in the storage directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a stored document.
type Event struct {
	Type      EventType
	Name      string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s @ %s", e.Type, e.Name, time.Unix(e.Timestamp, 0).Format(time.RFC3339))
}
