// Package lifecycle exposes the document change stream as a lifecycle.Source
// so hosts that supervise their components with aretw0/lifecycle can consume it.
package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/scribe/pkg/core"
)

type documentSource struct {
	events <-chan core.Event
	only   map[core.EventType]bool
	out    chan lifecycle.Event
}

// NewSource wraps a document event channel (typically from core.Service.Watch).
// When types are given, only events of those types are emitted.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	s := &documentSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	if len(types) > 0 {
		s.only = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.only[t] = true
		}
	}
	return s
}

// ParseEventTypes turns names such as "create" or "DELETE" into event types.
func ParseEventTypes(names []string) ([]core.EventType, error) {
	types := make([]core.EventType, 0, len(names))
	for _, name := range names {
		t := core.EventType(strings.ToUpper(strings.TrimSpace(name)))
		switch t {
		case core.EventCreate, core.EventModify, core.EventDelete:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("unknown event type %q (want create, modify or delete)", name)
		}
	}
	return types, nil
}

func (s *documentSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *documentSource) wants(e core.Event) bool {
	return s.only == nil || s.only[e.Type]
}

// Start forwards matching events until ctx ends or the upstream channel
// closes, then closes the output channel.
func (s *documentSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *documentSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-s.events:
			if !ok {
				return nil
			}
			e = next
		}
		if !s.wants(e) {
			continue
		}
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
