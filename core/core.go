// Package core implements the metric computation engine: calculators,
// z-score normalization, interval partitioning, composite scoring and
// cross-metric correlation.
package core

import (
	"context"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// Engine computes metrics against an event store. It holds no mutable
// state; each request gets its own session.
type Engine struct {
	store contract.EventStore
}

// NewEngine creates an engine backed by the given store.
func NewEngine(store contract.EventStore) *Engine {
	return &Engine{store: store}
}

// session carries per-request state. Population baselines span all history
// and dominate query cost, so full-history reads are cached for the life of
// one request. The cache never outlives the request: the store is
// append-only and growing, and there is no invalidation signal.
type session struct {
	store     contract.EventStore
	histories map[schema.EventCategory][]schema.Event
}

func newSession(store contract.EventStore) *session {
	return &session{
		store:     store,
		histories: make(map[schema.EventCategory][]schema.Event),
	}
}

// history returns the full recorded history of a category, cached.
func (s *session) history(ctx context.Context, category schema.EventCategory) ([]schema.Event, error) {
	if events, ok := s.histories[category]; ok {
		return events, nil
	}
	events, err := s.store.QueryEvents(ctx, category, nil)
	if err != nil {
		return nil, err
	}
	s.histories[category] = events
	return events, nil
}

// inWindow returns the events of a category inside an inclusive window.
func (s *session) inWindow(ctx context.Context, category schema.EventCategory, window schema.TimeRange) ([]schema.Event, error) {
	return s.store.QueryEvents(ctx, category, &window)
}
