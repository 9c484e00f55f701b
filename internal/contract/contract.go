// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/devpulse/devpulse/schema"
)

// EventStore defines the operations the engine needs from event storage.
// This allows the computation logic to be tested without a real database.
type EventStore interface {
	// QueryEvents returns events of one category ordered by timestamp
	// ascending. A nil timeRange returns the category's full history;
	// otherwise both bounds are inclusive.
	QueryEvents(ctx context.Context, category schema.EventCategory, timeRange *schema.TimeRange) ([]schema.Event, error)

	// InsertEvent appends a single event and returns its assigned ID.
	InsertEvent(ctx context.Context, event schema.Event) (int64, error)

	// Status returns summary information about the stored events.
	Status(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
