package schema

import "time"

// StoreStatus summarizes the contents of the event store.
type StoreStatus struct {
	TotalEvents    int64                   `json:"total_events"`
	CategoryCounts map[EventCategory]int64 `json:"category_counts"`
	FirstEvent     *time.Time              `json:"first_event,omitempty"`
	LastEvent      *time.Time              `json:"last_event,omitempty"`
}
